package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"

	"github.com/alexander-akhmetov/stageplay/internal/event"
)

const (
	placeholderHeader  = "Ready to start..."
	placeholderPayload = `Click "Play Demo" to start...`
)

// renderPayload renders the viewport content for the current stage, or the
// placeholder when no stage is current.
func (m Model) renderPayload() string {
	s, ok := m.ctrl.CurrentStage()
	if !ok {
		return labelStyle.Render(placeholderPayload)
	}

	width := max(m.payloadViewport.Width, 20)
	var processed []string
	// The heading is drawn above the viewport.
	evs := event.ForStage(s)[1:]
	if s.Description != "" {
		processed = append(processed, descriptionStyle.Render(wrapText(s.Description, width, "", 0)))
		evs = evs[1:]
	}
	for _, ev := range evs {
		processed = append(processed, m.renderEvent(ev, width))
	}
	return strings.Join(processed, "\n\n")
}

func (m Model) renderEvent(ev event.Event, width int) string {
	switch ev.Kind {
	case event.KindJSON:
		out := pretty.Pretty([]byte(ev.Text))
		return strings.TrimRight(string(pretty.Color(out, nil)), "\n")
	case event.KindMarkdown:
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(ev.Text); err == nil {
				return strings.Trim(rendered, "\n")
			}
		}
		return ev.Text
	case event.KindPayload:
		return lipgloss.NewStyle().Width(width).Render(strings.Trim(ev.Text, "\n"))
	default:
		return ev.Text
	}
}
