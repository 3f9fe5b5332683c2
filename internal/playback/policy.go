package playback

import "fmt"

// RestartPolicy decides what Start does while a run is already in progress.
type RestartPolicy string

const (
	// RestartIgnore leaves the active run untouched.
	RestartIgnore RestartPolicy = "ignore"
	// RestartRestart abandons the active run and begins a new one.
	RestartRestart RestartPolicy = "restart"
)

// ParseRestartPolicy converts a config value into a RestartPolicy. An empty
// string yields RestartIgnore.
func ParseRestartPolicy(s string) (RestartPolicy, error) {
	switch RestartPolicy(s) {
	case "", RestartIgnore:
		return RestartIgnore, nil
	case RestartRestart:
		return RestartRestart, nil
	}
	return "", fmt.Errorf("unknown restart policy %q (want %q or %q)", s, RestartIgnore, RestartRestart)
}
