package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexander-akhmetov/stageplay/internal/playback"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sidebarWidth := sidebarWidthFor(m.width)
	mainWidth := m.width - sidebarWidth - 4
	contentHeight := m.height - 3

	sidebar := m.renderSidebar(sidebarWidth - 4)
	sidebarBox := sidebarBoxStyle.Width(sidebarWidth).Height(contentHeight).Render(sidebar)

	mainBox := payloadBoxStyle.Width(mainWidth).Height(contentHeight).Render(m.renderMain())

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, mainBox)
	return main + "\n" + m.renderHelp()
}

// renderSidebar composes the header, the stage list and, once the run has
// completed, the stats.
func (m Model) renderSidebar(width int) string {
	var b strings.Builder

	b.WriteString(m.renderSidebarHeader(width))
	b.WriteString(m.renderSidebarStages(width))
	b.WriteString(m.renderSidebarStats(width))

	return b.String()
}

func (m Model) renderSidebarHeader(width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("▶ STAGEPLAY"))
	b.WriteString("\n")

	if name := m.ctrl.Catalog().Name(); name != "" {
		b.WriteString(valueStyle.Render(wrapText(name, width, "", 2)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	stateIndicator := m.getStateIndicator()
	sum := m.ctrl.Summary()
	if sum.RunID != "" {
		elapsed := formatDuration(sum.Elapsed)
		padding := max(2, width-lipgloss.Width(stateIndicator)-len(elapsed))
		b.WriteString(stateIndicator)
		b.WriteString(strings.Repeat(" ", padding))
		b.WriteString(valueStyle.Render(elapsed))
	} else {
		b.WriteString(stateIndicator)
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("every %s", m.ctrl.Interval())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) getStateIndicator() string {
	switch m.ctrl.State().Phase {
	case playback.PhaseRunning:
		return completedStyle.Render(m.spinner.View() + " Running")
	case playback.PhaseCompleted:
		return completedStyle.Render("✓ Completed")
	default:
		return labelStyle.Render("○ Idle")
	}
}

func (m Model) renderSidebarStages(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sectionHeader("Stages", width))
	b.WriteString("\n")

	for i, s := range m.ctrl.Catalog().Stages() {
		b.WriteString(m.renderStageLine(i, s.Title, width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderStageLine draws one stage with its status mark. The stage the run is
// currently on is shown as running rather than completed.
func (m Model) renderStageLine(i int, title string, width int) string {
	name := wrapText(title, width-4, "    ", 2)
	state := m.ctrl.State()

	if state.Running() && i == state.Index {
		return currentStyle.Render("  → "+name) + labelStyle.Render(" running")
	}

	status, err := m.ctrl.StatusOf(i)
	if err != nil {
		return ""
	}
	switch status {
	case playback.StatusCompleted:
		return completedStyle.Render("  ✓ ") + labelStyle.Render(name)
	case playback.StatusPending:
		return pendingStyle.Render("  ○ " + name)
	default:
		return labelStyle.Render("  · " + name)
	}
}

func (m Model) renderSidebarStats(width int) string {
	if m.opts.HideStats {
		return ""
	}
	sum := m.ctrl.Summary()
	if !sum.Done() || len(sum.Stats) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(sum.Stats))
	for _, st := range sum.Stats {
		rows = append(rows, []string{st.Label, st.Value})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(labelStyle).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 1 {
				return statValueStyle
			}
			return labelStyle
		}).
		Rows(rows...)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sectionHeader("Results", width))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// renderMain draws the play control, the current stage heading and the
// payload viewport.
func (m Model) renderMain() string {
	var b strings.Builder

	if m.ctrl.IsRunning() {
		b.WriteString(busyButtonStyle.Render(m.spinner.View() + " Running Demo..."))
	} else {
		b.WriteString(buttonStyle.Render("▶ Play Demo"))
	}
	b.WriteString("\n\n")

	if s, ok := m.ctrl.CurrentStage(); ok {
		b.WriteString(headerStyle.Render(fmt.Sprintf("[%d/%d] %s", s.Index+1, m.ctrl.Catalog().Size(), s.Title)))
	} else {
		b.WriteString(labelStyle.Render(placeholderHeader))
	}
	b.WriteString("\n\n")

	b.WriteString(m.payloadViewport.View())
	return b.String()
}

func (m Model) renderHelp() string {
	var parts []string

	if !m.ctrl.IsRunning() {
		parts = append(parts, "enter: play demo")
	}

	parts = append(parts, "r: reset", "↑/↓: scroll", "q: quit")

	return helpStyle.Render(strings.Join(parts, " • "))
}
