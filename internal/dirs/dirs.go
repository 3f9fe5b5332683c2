// Package dirs provides XDG Base Directory Specification compliant paths
// for stageplay.
package dirs

import (
	"os"
	"path/filepath"
)

// LocalDirName is the per-project override directory looked up in the cwd.
const LocalDirName = ".stageplay"

// ConfigDir returns the stageplay configuration directory.
// Resolution order: STAGEPLAY_CONFIG_DIR > XDG_CONFIG_HOME/stageplay > ~/.config/stageplay.
func ConfigDir() string {
	if dir := os.Getenv("STAGEPLAY_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stageplay")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "stageplay")
	}
	return filepath.Join(home, ".config", "stageplay")
}

// LocalDir returns the .stageplay directory under dir if it exists.
func LocalDir(dir string) string {
	candidate := filepath.Join(dir, LocalDirName)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate
	}
	return ""
}
