// Package event defines typed events describing a playback run, produced
// from controller notifications and consumed by the plain-output writer and
// the viewer.
package event

// Kind identifies the type of event.
type Kind int

const (
	// KindInfo is a general progress message.
	KindInfo Kind = iota
	// KindRunStarted marks the beginning of a run; Text is the run ID.
	KindRunStarted
	// KindStage is a stage becoming current; Text is its title.
	KindStage
	// KindPayload is plain-text stage payload.
	KindPayload
	// KindJSON is a JSON stage payload.
	KindJSON
	// KindMarkdown is a markdown stage payload (rendered via glamour).
	KindMarkdown
	// KindRunCompleted marks the terminal tick.
	KindRunCompleted
	// KindRunReset marks a cancelled run.
	KindRunReset
)

func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindRunStarted:
		return "run_started"
	case KindStage:
		return "stage"
	case KindPayload:
		return "payload"
	case KindJSON:
		return "json"
	case KindMarkdown:
		return "markdown"
	case KindRunCompleted:
		return "run_completed"
	case KindRunReset:
		return "run_reset"
	default:
		return "unknown"
	}
}

// Event is a single typed event emitted during playback.
type Event struct {
	Kind  Kind
	Index int    // stage index for stage and payload events, -1 otherwise
	Text  string // the payload text (meaning depends on Kind)
}

// Handler is a callback that receives typed events.
type Handler func(Event)

// Info creates a KindInfo event.
func Info(text string) Event { return Event{Kind: KindInfo, Index: -1, Text: text} }

// RunStarted creates a KindRunStarted event.
func RunStarted(runID string) Event { return Event{Kind: KindRunStarted, Index: -1, Text: runID} }

// Stage creates a KindStage event.
func Stage(index int, title string) Event { return Event{Kind: KindStage, Index: index, Text: title} }

// Payload creates a KindPayload event.
func Payload(index int, text string) Event { return Event{Kind: KindPayload, Index: index, Text: text} }

// JSON creates a KindJSON event.
func JSON(index int, text string) Event { return Event{Kind: KindJSON, Index: index, Text: text} }

// Markdown creates a KindMarkdown event.
func Markdown(index int, text string) Event {
	return Event{Kind: KindMarkdown, Index: index, Text: text}
}

// RunCompleted creates a KindRunCompleted event.
func RunCompleted(text string) Event { return Event{Kind: KindRunCompleted, Index: -1, Text: text} }

// RunReset creates a KindRunReset event.
func RunReset(text string) Event { return Event{Kind: KindRunReset, Index: -1, Text: text} }
