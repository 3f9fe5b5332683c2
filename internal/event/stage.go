package event

import "github.com/alexander-akhmetov/stageplay/internal/stage"

// ForStage expands a stage into the events that present it: its heading, its
// description and its payload in the stage's format.
func ForStage(s stage.Stage) []Event {
	evs := []Event{Stage(s.Index, s.Title)}
	if s.Description != "" {
		evs = append(evs, Payload(s.Index, s.Description))
	}
	if s.Payload == "" {
		return evs
	}
	switch s.Format {
	case stage.FormatJSON:
		evs = append(evs, JSON(s.Index, s.Payload))
	case stage.FormatMarkdown:
		evs = append(evs, Markdown(s.Index, s.Payload))
	default:
		evs = append(evs, Payload(s.Index, s.Payload))
	}
	return evs
}
