// Package tui implements the interactive viewer using bubbletea.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexander-akhmetov/stageplay/internal/debug"
	"github.com/alexander-akhmetov/stageplay/internal/playback"
	"github.com/alexander-akhmetov/stageplay/internal/timing"
)

// Run opens the viewer for ctrl and blocks until the user quits. Any run in
// progress is reset on exit.
func Run(ctrl *playback.Controller, opts Options) error {
	timing.Log("tui.Run: start")

	p := tea.NewProgram(NewModel(ctrl, opts), tea.WithAltScreen())

	// Send blocks until the event loop takes the message. The model reads the
	// index back from the controller, so delivery order does not matter.
	unsubscribe := ctrl.Subscribe(func(index int) {
		go p.Send(StageAdvancedMsg{Index: index})
	})
	defer unsubscribe()

	_, err := p.Run()
	ctrl.Reset()
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	debug.Logf("tui: viewer closed")
	return nil
}
