package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/tidwall/pretty"

	"github.com/alexander-akhmetov/stageplay/internal/event"
	"github.com/alexander-akhmetov/stageplay/internal/playback"
)

// Writer prints events to stdout and redraws a sticky progress footer in TTY
// mode. In non-TTY mode, it prints plain text without ANSI escapes or footer.
type Writer struct {
	out         io.Writer
	isTTY       bool
	width       int
	mu          sync.Mutex
	renderer    *glamour.TermRenderer
	footerLines int
	lastFooter  []string // last rendered footer lines for redraw
}

// NewWriter creates a Writer. If width is <= 0, defaults to 80.
func NewWriter(out io.Writer, isTTY bool, width int) *Writer {
	if width <= 0 {
		width = 80
	}

	w := &Writer{
		out:   out,
		isTTY: isTTY,
		width: width,
	}

	if isTTY {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(width-6, 40)),
		)
		if err == nil {
			w.renderer = r
		}
	}

	return w
}

// Handler adapts the writer to an event.Handler.
func (w *Writer) Handler() event.Handler {
	return w.WriteEvent
}

// WriteEvent prints a single event to the output stream.
func (w *Writer) WriteEvent(ev event.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()

	var line string
	switch ev.Kind {
	case event.KindInfo:
		line = w.formatInfo(ev.Text)
	case event.KindRunStarted:
		line = w.formatInfo("run " + ev.Text + " started")
	case event.KindStage:
		line = w.formatStage(ev.Index, ev.Text)
	case event.KindPayload:
		line = indent(ev.Text)
	case event.KindJSON:
		line = w.formatJSON(ev.Text)
	case event.KindMarkdown:
		line = w.formatMarkdown(ev.Text)
	case event.KindRunCompleted:
		line = w.styleBold(colorGreen, "✓ "+ev.Text)
	case event.KindRunReset:
		line = w.styleBold(colorRed, "⏹ "+ev.Text)
	}

	fmt.Fprintln(w.out, line)
	w.redrawFooter()
}

// UpdateFooter redraws the sticky footer with the per-stage statuses.
func (w *Writer) UpdateFooter(statuses []playback.Status, current string) {
	if !w.isTTY {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()

	lines := w.buildFooter(statuses, current)
	w.lastFooter = lines
	w.footerLines = len(lines)

	for _, line := range lines {
		fmt.Fprintln(w.out, line)
	}
}

// ClearFooter erases the sticky footer from the terminal.
func (w *Writer) ClearFooter() {
	if !w.isTTY {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()
	w.footerLines = 0
	w.lastFooter = nil
}

// WriteSummary prints the end-of-run summary and, for completed runs, the
// stats table.
func (w *Writer) WriteSummary(sum playback.Summary, hideStats bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseFooter()
	w.footerLines = 0
	w.lastFooter = nil

	fmt.Fprintf(w.out, "%s %d/%d stages in %s\n",
		w.style(colorDim, "summary:"), sum.Completed, sum.Stages, sum.Elapsed.Round(time.Millisecond))

	if hideStats || !sum.Done() || len(sum.Stats) == 0 {
		return
	}
	rows := make([][]string, 0, len(sum.Stats))
	for _, st := range sum.Stats {
		rows = append(rows, []string{st.Label, st.Value})
	}
	fmt.Fprintln(w.out, renderTable([]string{"Stat", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}

// eraseFooter moves cursor up and clears the footer lines. Must be called with mu held.
func (w *Writer) eraseFooter() {
	if w.footerLines == 0 || !w.isTTY {
		return
	}
	for range w.footerLines {
		fmt.Fprint(w.out, eraseUp)
	}
}

// redrawFooter redraws the last-known footer after an event line was printed.
// Must be called with mu held.
func (w *Writer) redrawFooter() {
	if len(w.lastFooter) == 0 || !w.isTTY {
		return
	}
	for _, line := range w.lastFooter {
		fmt.Fprintln(w.out, line)
	}
	w.footerLines = len(w.lastFooter)
}

// buildFooter composes the footer lines: a separator, one marker per stage
// and the current stage title.
func (w *Writer) buildFooter(statuses []playback.Status, current string) []string {
	sep := strings.Repeat("─", min(w.width, 80))
	lines := []string{w.style(colorDim, sep)}

	done := 0
	var markers strings.Builder
	for _, s := range statuses {
		switch s {
		case playback.StatusCompleted:
			done++
			markers.WriteString(w.style(colorGreen, "●"))
		default:
			markers.WriteString(w.style(colorDim, "○"))
		}
	}
	status := fmt.Sprintf("%s %s", markers.String(), w.style(colorWhite, fmt.Sprintf("%d/%d", done, len(statuses))))
	if current != "" {
		status += w.style(colorDim, " | ") + w.styleBold(colorMagenta, current)
	}
	return append(lines, status)
}

func (w *Writer) formatInfo(text string) string {
	prefix := "stageplay: "
	if w.isTTY {
		return fgBold(colorOrange, "▶ "+prefix) + text
	}
	return prefix + text
}

func (w *Writer) formatStage(index int, title string) string {
	label := fmt.Sprintf("[%d] %s", index+1, title)
	if w.isTTY {
		return bold(fg(colorMagenta, label))
	}
	return label
}

func (w *Writer) formatJSON(text string) string {
	out := pretty.Pretty([]byte(text))
	if w.isTTY {
		out = pretty.Color(out, nil)
	}
	return indent(strings.TrimRight(string(out), "\n"))
}

func (w *Writer) formatMarkdown(text string) string {
	if w.renderer != nil {
		if rendered, err := w.renderer.Render(text); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return indent(text)
}

// style wraps text with 256-color foreground in TTY mode, plain in non-TTY.
func (w *Writer) style(color int, text string) string {
	if w.isTTY {
		return fg(color, text)
	}
	return text
}

// styleBold wraps text with 256-color foreground and bold in TTY mode.
func (w *Writer) styleBold(color int, text string) string {
	if w.isTTY {
		return fgBold(color, text)
	}
	return text
}

func indent(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
