// Package config provides unified configuration management for stageplay.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → env vars → local file → CLI flags
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/stageplay/internal/dirs"
	"github.com/alexander-akhmetov/stageplay/internal/playback"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// Config holds all configuration settings for stageplay.
// Fields ending in *Set track whether that field was explicitly set in config.
// This allows distinguishing explicit false/0 from "not set", enabling proper
// merge behavior where local config can override global config with zero values.
type Config struct {
	Interval      time.Duration `yaml:"interval"`
	RestartPolicy string        `yaml:"restart_policy"`
	Catalog       string        `yaml:"catalog"` // empty means the built-in demo
	HideStats     bool          `yaml:"hide_stats"`
	Autoplay      bool          `yaml:"autoplay"`

	// Set tracking for merge behavior
	IntervalSet  bool `yaml:"-"`
	HideStatsSet bool `yaml:"-"`
	AutoplaySet  bool `yaml:"-"`

	configDir string
	localDir  string
	sources   []string // ordered list of sources that contributed to this config
}

// Overrides carries CLI flag values. Zero values and nil pointers mean the
// flag was not given.
type Overrides struct {
	Interval      time.Duration
	RestartPolicy string
	Catalog       string
	HideStats     *bool
	Autoplay      *bool
}

// Sources returns the ordered list of sources that contributed to this config.
func (c *Config) Sources() []string {
	return c.sources
}

// LocalDir returns the local project config directory if one was detected.
func (c *Config) LocalDir() string {
	return c.localDir
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Load loads all configuration from the default locations.
// It auto-detects .stageplay/ in the current working directory for local overrides.
func Load() (*Config, error) {
	var localDir string
	if cwd, err := os.Getwd(); err == nil {
		localDir = dirs.LocalDir(cwd)
	}
	return LoadWithDirs(dirs.ConfigDir(), localDir)
}

// LoadWithDirs loads configuration with explicit global and local directories.
// Local config overrides global config per-field. If localDir is empty, only
// global config is used.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	globalPath := filepath.Join(globalDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	cfg.configDir = globalDir
	cfg.localDir = localDir
	return cfg, nil
}

// loadEmbedded loads config from the embedded defaults.
func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	return parseConfig(data)
}

// loadFile loads config from a file path.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfigWithTracking(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// A relative catalog path is relative to the file that names it.
	if cfg.Catalog != "" && !filepath.IsAbs(cfg.Catalog) {
		cfg.Catalog = filepath.Join(filepath.Dir(path), cfg.Catalog)
	}
	return cfg, nil
}

// parseConfig parses YAML config data into a Config struct.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which fields were set.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if _, ok := raw["interval"]; ok {
		cfg.IntervalSet = true
	}
	if _, ok := raw["hide_stats"]; ok {
		cfg.HideStatsSet = true
	}
	if _, ok := raw["autoplay"]; ok {
		cfg.AutoplaySet = true
	}

	return cfg, nil
}

// applyEnv applies environment variables to the config.
// Env vars sit between global and local config in precedence.
func (c *Config) applyEnv() error {
	if v := os.Getenv("STAGEPLAY_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("STAGEPLAY_INTERVAL: %w", err)
		}
		c.Interval = d
		c.IntervalSet = true
		c.sources = append(c.sources, "env:STAGEPLAY_INTERVAL")
	}

	if v := os.Getenv("STAGEPLAY_RESTART_POLICY"); v != "" {
		c.RestartPolicy = v
		c.sources = append(c.sources, "env:STAGEPLAY_RESTART_POLICY")
	}

	if v := os.Getenv("STAGEPLAY_CATALOG"); v != "" {
		c.Catalog = v
		c.sources = append(c.sources, "env:STAGEPLAY_CATALOG")
	}

	if v := os.Getenv("STAGEPLAY_HIDE_STATS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STAGEPLAY_HIDE_STATS: %w", err)
		}
		c.HideStats = b
		c.HideStatsSet = true
		c.sources = append(c.sources, "env:STAGEPLAY_HIDE_STATS")
	}

	if v := os.Getenv("STAGEPLAY_AUTOPLAY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STAGEPLAY_AUTOPLAY: %w", err)
		}
		c.Autoplay = b
		c.AutoplaySet = true
		c.sources = append(c.sources, "env:STAGEPLAY_AUTOPLAY")
	}

	return nil
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.IntervalSet {
		c.Interval = src.Interval
		c.IntervalSet = true
	}
	if src.RestartPolicy != "" {
		c.RestartPolicy = src.RestartPolicy
	}
	if src.Catalog != "" {
		c.Catalog = src.Catalog
	}
	if src.HideStatsSet {
		c.HideStats = src.HideStats
		c.HideStatsSet = true
	}
	if src.AutoplaySet {
		c.Autoplay = src.Autoplay
		c.AutoplaySet = true
	}
}

// ApplyCLIFlags applies CLI flag overrides to the config.
// CLI flags have the highest precedence.
func (c *Config) ApplyCLIFlags(o Overrides) {
	if o.Interval > 0 {
		c.Interval = o.Interval
		c.IntervalSet = true
		c.sources = append(c.sources, "cli:interval")
	}
	if o.RestartPolicy != "" {
		c.RestartPolicy = o.RestartPolicy
		c.sources = append(c.sources, "cli:restart-policy")
	}
	if o.Catalog != "" {
		c.Catalog = o.Catalog
		c.sources = append(c.sources, "cli:catalog")
	}
	if o.HideStats != nil {
		c.HideStats = *o.HideStats
		c.HideStatsSet = true
		c.sources = append(c.sources, "cli:hide-stats")
	}
	if o.Autoplay != nil {
		c.Autoplay = *o.Autoplay
		c.AutoplaySet = true
		c.sources = append(c.sources, "cli:autoplay")
	}
}

// Validate checks the resolved configuration for values the player cannot use.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if _, err := playback.ParseRestartPolicy(c.RestartPolicy); err != nil {
		return err
	}
	return nil
}

// PlaybackOptions converts the config into controller options.
// Call Validate first; an invalid restart policy falls back to ignore.
func (c *Config) PlaybackOptions() []playback.Option {
	policy, err := playback.ParseRestartPolicy(c.RestartPolicy)
	if err != nil {
		policy = playback.RestartIgnore
	}
	return []playback.Option{
		playback.WithInterval(c.Interval),
		playback.WithRestartPolicy(policy),
	}
}
