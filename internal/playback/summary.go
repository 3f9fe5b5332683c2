package playback

import (
	"fmt"
	"time"

	"github.com/tidwall/sjson"

	"github.com/alexander-akhmetov/stageplay/internal/stage"
)

// Summary aggregates a run for display once it ends. Stats are only
// populated after the run has completed.
type Summary struct {
	RunID     string
	Phase     Phase
	Stages    int
	Completed int
	Elapsed   time.Duration
	Stats     []stage.Stat
}

// Done reports whether the run reached its last stage.
func (s Summary) Done() bool {
	return s.Phase == PhaseCompleted
}

// Summary returns the aggregate view of the current run.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := Summary{
		RunID:     c.runID,
		Phase:     c.state.Phase,
		Stages:    c.catalog.Size(),
		Completed: c.state.Index + 1,
	}
	switch {
	case c.state.Phase == PhaseCompleted:
		sum.Elapsed = c.endedAt.Sub(c.startedAt)
		sum.Stats = c.catalog.Stats()
	case !c.startedAt.IsZero():
		sum.Elapsed = c.clock.Now().Sub(c.startedAt)
	}
	return sum
}

// JSON renders the summary as a compact JSON object.
func (s Summary) JSON() (string, error) {
	doc := `{}`
	fields := []struct {
		path  string
		value any
	}{
		{"run_id", s.RunID},
		{"phase", s.Phase.String()},
		{"stages", s.Stages},
		{"completed", s.Completed},
		{"elapsed_ms", s.Elapsed.Milliseconds()},
	}
	var err error
	for _, f := range fields {
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", fmt.Errorf("summary %s: %w", f.path, err)
		}
	}
	for _, st := range s.Stats {
		if doc, err = sjson.Set(doc, "stats."+sjsonKey(st.Label), st.Value); err != nil {
			return "", fmt.Errorf("summary stat %q: %w", st.Label, err)
		}
	}
	return doc, nil
}

// sjsonKey escapes characters that sjson treats as path syntax.
func sjsonKey(k string) string {
	out := make([]byte, 0, len(k))
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			out = append(out, '\\')
		}
		out = append(out, k[i])
	}
	return string(out)
}
