package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateTransitions(t *testing.T) {
	s := Initial()
	assert.Equal(t, PhaseNotStarted, s.Phase)
	assert.Equal(t, -1, s.Index)
	assert.False(t, s.Running())

	// Advancing a run that never started is a no-op.
	assert.Equal(t, s, s.Advance(3))

	s = s.Begin()
	assert.True(t, s.Running())
	assert.Equal(t, -1, s.Index)
	assert.Equal(t, uint64(1), s.Epoch)

	s = s.Advance(3)
	assert.Equal(t, 0, s.Index)
	assert.True(t, s.Running())

	s = s.Advance(3)
	s = s.Advance(3)
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, PhaseCompleted, s.Phase)
	assert.Equal(t, uint64(1), s.Epoch, "ticks never change the epoch")

	// Terminal state is stable.
	assert.Equal(t, s, s.Advance(3))

	r := s.Reset()
	assert.Equal(t, PhaseNotStarted, r.Phase)
	assert.Equal(t, -1, r.Index)
	assert.Equal(t, uint64(2), r.Epoch)
}

func TestStateSingleStageCompletesOnFirstTick(t *testing.T) {
	s := Initial().Begin().Advance(1)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, PhaseCompleted, s.Phase)
}

func TestStateStatusOf(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  []Status
	}{
		{
			name:  "not started",
			state: Initial(),
			want:  []Status{StatusIdle, StatusIdle, StatusIdle},
		},
		{
			name:  "started, nothing completed",
			state: Initial().Begin(),
			want:  []Status{StatusPending, StatusPending, StatusPending},
		},
		{
			name:  "first tick",
			state: Initial().Begin().Advance(3),
			want:  []Status{StatusCompleted, StatusPending, StatusPending},
		},
		{
			name:  "completed",
			state: Initial().Begin().Advance(3).Advance(3).Advance(3),
			want:  []Status{StatusCompleted, StatusCompleted, StatusCompleted},
		},
		{
			name:  "reset after run",
			state: Initial().Begin().Advance(3).Reset(),
			want:  []Status{StatusIdle, StatusIdle, StatusIdle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]Status, len(tt.want))
			for i := range got {
				got[i] = tt.state.StatusOf(i)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhaseAndStatusStrings(t *testing.T) {
	assert.Equal(t, "not_started", PhaseNotStarted.String())
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "completed", PhaseCompleted.String())
	assert.Equal(t, "phase(9)", Phase(9).String())

	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "completed", StatusCompleted.String())
	assert.Equal(t, "status(7)", Status(7).String())
}

func TestParseRestartPolicy(t *testing.T) {
	p, err := ParseRestartPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, RestartIgnore, p)

	p, err = ParseRestartPolicy("restart")
	assert.NoError(t, err)
	assert.Equal(t, RestartRestart, p)

	_, err = ParseRestartPolicy("accelerate")
	assert.ErrorContains(t, err, "unknown restart policy")
}
