// Package playback implements the staged playback engine: a pure run state
// machine (State) and a Controller that advances it on a fixed interval,
// answers status queries and notifies observers on every tick.
package playback

import "fmt"

// Phase is the coarse lifecycle position of a run.
type Phase int

const (
	// PhaseNotStarted means no run has begun since construction or the last reset.
	PhaseNotStarted Phase = iota
	// PhaseRunning means a run is in progress and more ticks will follow.
	PhaseRunning
	// PhaseCompleted means the last stage has been reached.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Status is the derived per-stage status.
type Status int

const (
	// StatusIdle means no run has been started.
	StatusIdle Status = iota
	// StatusPending means the run has not reached the stage yet.
	StatusPending
	// StatusCompleted means the run has reached or passed the stage.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is a value snapshot of a run. Transitions return new values and
// never mutate the receiver.
//
// Epoch increases on every Begin and Reset. A tick scheduled under one epoch
// must be discarded once the epoch has moved on.
type State struct {
	Phase Phase
	Index int
	Epoch uint64
}

// Initial returns the not-started state.
func Initial() State {
	return State{Phase: PhaseNotStarted, Index: -1}
}

// Running reports whether more ticks are expected.
func (s State) Running() bool {
	return s.Phase == PhaseRunning
}

// Begin starts a fresh run from index -1 under a new epoch.
func (s State) Begin() State {
	return State{Phase: PhaseRunning, Index: -1, Epoch: s.Epoch + 1}
}

// Advance applies one tick for a catalog of n stages. Advancing a state that
// is not running returns it unchanged.
func (s State) Advance(n int) State {
	if s.Phase != PhaseRunning {
		return s
	}
	s.Index++
	if s.Index >= n-1 {
		s.Index = n - 1
		s.Phase = PhaseCompleted
	}
	return s
}

// Reset returns to the not-started state under a new epoch.
func (s State) Reset() State {
	return State{Phase: PhaseNotStarted, Index: -1, Epoch: s.Epoch + 1}
}

// StatusOf derives the status of stage i. Bounds are checked by the caller.
func (s State) StatusOf(i int) Status {
	if s.Phase == PhaseNotStarted {
		return StatusIdle
	}
	if i <= s.Index {
		return StatusCompleted
	}
	return StatusPending
}
