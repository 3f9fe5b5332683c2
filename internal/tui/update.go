package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/alexander-akhmetov/stageplay/internal/debug"
	"github.com/alexander-akhmetov/stageplay/internal/timing"
)

func createRendererCmd(width int) tea.Cmd {
	return func() tea.Msg {
		viewportWidth := max(width-6, 40)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(viewportWidth),
		)
		if err != nil {
			debug.Logf("tui: failed to create glamour renderer: %v", err)
		}
		return rendererReadyMsg{renderer: renderer}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tea.WindowSize()}
	if m.opts.Autoplay {
		cmds = append(cmds, func() tea.Msg { return autoplayMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Reset()
		return m, tea.Quit

	case "enter", " ":
		m.play()

	case "r":
		m.ctrl.Reset()
		m.refreshPayload()

	case "up", "k", "down", "j", "pgup", "ctrl+u", "pgdown", "ctrl+d":
		var cmd tea.Cmd
		m.payloadViewport, cmd = m.payloadViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// play starts a run. Under the ignore policy a press during a run does
// nothing; the controller decides.
func (m *Model) play() {
	if m.ctrl.Start() {
		m.refreshPayload()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case autoplayMsg:
		m.play()

	case tea.WindowSizeMsg:
		timing.Log("Update: WindowSizeMsg received")
		m.width = msg.Width
		m.height = msg.Height

		sidebarWidth := sidebarWidthFor(m.width)
		mainWidth := m.width - sidebarWidth - 4
		contentHeight := m.height - 3

		viewportWidth := mainWidth - 4
		payloadHeight := max(1, contentHeight-6)

		if !m.ready {
			m.payloadViewport = viewport.New(viewportWidth, payloadHeight)
			m.ready = true
			cmds = append(cmds, createRendererCmd(mainWidth))
		} else {
			m.payloadViewport.Width = viewportWidth
			m.payloadViewport.Height = payloadHeight
		}
		m.payloadViewport.SetContent(m.renderPayload())

	case rendererReadyMsg:
		timing.Log("Update: rendererReadyMsg received")
		m.renderer = msg.renderer
		m.payloadViewport.SetContent(m.renderPayload())

	case StageAdvancedMsg:
		debug.Logf("tui: stage %d reached", msg.Index)
		m.refreshPayload()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refreshPayload re-renders the payload pane when the current stage changed.
func (m *Model) refreshPayload() {
	idx := m.ctrl.CurrentIndex()
	if idx == m.shownIndex {
		return
	}
	m.shownIndex = idx
	m.payloadViewport.SetContent(m.renderPayload())
	m.payloadViewport.GotoTop()
}

func sidebarWidthFor(width int) int {
	return max(34, min(48, width*35/100))
}
