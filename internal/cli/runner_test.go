package cli

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/stageplay/internal/playback"
	"github.com/alexander-akhmetov/stageplay/internal/stage"
)

func testCatalog(t *testing.T) *stage.Catalog {
	t.Helper()
	cat, err := stage.NewCatalog([]stage.Stage{
		{Title: "Input", Payload: "deploy a token"},
		{Title: "Parse", Format: stage.FormatJSON, Payload: `{"action":"deploy"}`},
		{Title: "Record", Description: "write the result"},
	}, stage.WithName("Demo"), stage.WithStats([]stage.Stat{{Label: "Gas Used", Value: "0.001 SOL"}}))
	require.NoError(t, err)
	return cat
}

func TestRunToCompletion(t *testing.T) {
	ctrl, err := playback.New(testCatalog(t), playback.WithInterval(time.Millisecond))
	require.NoError(t, err)

	var buf bytes.Buffer
	sum, err := Run(context.Background(), ctrl, Options{Out: &buf})
	require.NoError(t, err)

	assert.True(t, sum.Done())
	assert.Equal(t, 3, sum.Completed)
	assert.False(t, ctrl.IsRunning())

	out := buf.String()
	assert.Contains(t, out, "stageplay: Demo (3 stages, every 1ms)")
	assert.Contains(t, out, "[1] Input")
	assert.Contains(t, out, `"action": "deploy"`)
	assert.Contains(t, out, "write the result")
	assert.Contains(t, out, "✓ completed 3/3 stages")
	assert.Contains(t, out, "0.001 SOL")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("[1] Input")), bytes.Index(buf.Bytes(), []byte("[2] Parse")))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("[2] Parse")), bytes.Index(buf.Bytes(), []byte("[3] Record")))
}

func TestRunHideStats(t *testing.T) {
	ctrl, err := playback.New(testCatalog(t), playback.WithInterval(time.Millisecond))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = Run(context.Background(), ctrl, Options{Out: &buf, HideStats: true})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "0.001 SOL")
}

func TestRunInterruptedResets(t *testing.T) {
	ctrl, err := playback.New(testCatalog(t), playback.WithInterval(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	sum, err := Run(ctx, ctrl, Options{Out: &buf})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, playback.PhaseRunning, sum.Phase)
	assert.Equal(t, 0, sum.Completed)
	assert.Equal(t, playback.PhaseNotStarted, ctrl.State().Phase)
	assert.Contains(t, buf.String(), "interrupted, run reset")
	assert.NotContains(t, buf.String(), "0.001 SOL")
}

// slowWriter stands in for a congested pipe.
type slowWriter struct {
	mu    sync.Mutex
	delay time.Duration
	buf   bytes.Buffer
}

func (w *slowWriter) Write(p []byte) (int, error) {
	time.Sleep(w.delay)
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *slowWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestRunWithSlowOutput(t *testing.T) {
	ctrl, err := playback.New(testCatalog(t), playback.WithInterval(time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := &slowWriter{delay: 3 * time.Millisecond}
	sum, err := Run(ctx, ctrl, Options{Out: out})
	require.NoError(t, err)
	assert.True(t, sum.Done())
	assert.Contains(t, out.String(), "✓ completed 3/3 stages")
}

func TestRunWithSlowOutputCancelled(t *testing.T) {
	stages := make([]stage.Stage, 50)
	for i := range stages {
		stages[i] = stage.Stage{Title: fmt.Sprintf("S%d", i), Payload: "p"}
	}
	cat, err := stage.NewCatalog(stages)
	require.NoError(t, err)
	ctrl, err := playback.New(cat, playback.WithInterval(time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	finished := make(chan error, 1)
	go func() {
		_, err := Run(ctx, ctrl, Options{Out: &slowWriter{delay: 3 * time.Millisecond}})
		finished <- err
	}()

	select {
	case err := <-finished:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Equal(t, playback.PhaseNotStarted, ctrl.State().Phase)
}
