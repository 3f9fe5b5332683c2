// Package cli streams a playback run to a plain terminal, for non-interactive
// use and pipes.
package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/alexander-akhmetov/stageplay/internal/debug"
	"github.com/alexander-akhmetov/stageplay/internal/event"
	"github.com/alexander-akhmetov/stageplay/internal/playback"
)

// Options configures a print-mode run.
type Options struct {
	Out       io.Writer
	IsTTY     bool
	Width     int
	HideStats bool
}

// Run plays the controller's catalog until it completes, printing each stage
// as it is reached. Cancelling ctx resets the run and returns ctx.Err(). The
// returned summary reflects the run at the moment it ended.
func Run(ctx context.Context, ctrl *playback.Controller, opts Options) (playback.Summary, error) {
	w := NewWriter(opts.Out, opts.IsTTY, opts.Width)
	cat := ctrl.Catalog()

	started := make(chan struct{})
	done := make(chan struct{})
	var once sync.Once

	unsubscribe := ctrl.Subscribe(func(index int) {
		<-started
		s, err := cat.Get(index)
		if err != nil {
			debug.Logf("cli: dropping tick: %v", err)
			return
		}
		for _, ev := range event.ForStage(s) {
			w.WriteEvent(ev)
		}
		if index == cat.Size()-1 {
			w.ClearFooter()
			once.Do(func() { close(done) })
			return
		}
		w.UpdateFooter(statuses(ctrl), s.Title)
	})
	defer unsubscribe()

	if name := cat.Name(); name != "" {
		w.WriteEvent(event.Info(fmt.Sprintf("%s (%d stages, every %s)", name, cat.Size(), ctrl.Interval())))
	}
	ctrl.Start()
	w.WriteEvent(event.RunStarted(ctrl.Summary().RunID))
	w.UpdateFooter(statuses(ctrl), "")
	close(started)

	select {
	case <-done:
		sum := ctrl.Summary()
		w.WriteEvent(event.RunCompleted(fmt.Sprintf("completed %d/%d stages", sum.Completed, sum.Stages)))
		w.WriteSummary(sum, opts.HideStats)
		return sum, nil
	case <-ctx.Done():
		sum := ctrl.Summary()
		ctrl.Reset()
		w.WriteEvent(event.RunReset("interrupted, run reset"))
		w.WriteSummary(sum, true)
		return sum, ctx.Err()
	}
}

func statuses(ctrl *playback.Controller) []playback.Status {
	n := ctrl.Catalog().Size()
	out := make([]playback.Status, 0, n)
	for i := range n {
		st, err := ctrl.StatusOf(i)
		if err != nil {
			break
		}
		out = append(out, st)
	}
	return out
}
