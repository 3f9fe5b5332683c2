package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/stageplay/internal/playback"
)

// Options controls viewer behavior that is not part of playback itself.
type Options struct {
	Autoplay  bool
	HideStats bool
}

// Model is the bubbletea model for the viewer. Playback state lives in the
// controller; the model only renders it.
type Model struct {
	ctrl            *playback.Controller
	opts            Options
	payloadViewport viewport.Model
	spinner         spinner.Model
	width           int
	height          int
	ready           bool
	renderer        *glamour.TermRenderer
	shownIndex      int // stage index rendered into the viewport, -1 for the placeholder
}

// NewModel creates a Model that drives ctrl.
func NewModel(ctrl *playback.Controller, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctrl:       ctrl,
		opts:       opts,
		spinner:    s,
		shownIndex: -1,
	}
}

// StageAdvancedMsg reports that the controller reached the stage at Index.
type StageAdvancedMsg struct {
	Index int
}

// autoplayMsg asks the model to start a run as soon as the program is up.
type autoplayMsg struct{}

type rendererReadyMsg struct {
	renderer *glamour.TermRenderer
}
