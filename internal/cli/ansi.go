package cli

import "fmt"

// ANSI 256-color codes shared with the viewer's lipgloss palette.
const (
	colorOrange  = 208 // prefix
	colorGreen   = 42  // completed
	colorRed     = 196 // reset
	colorDim     = 241 // labels, pending
	colorWhite   = 255 // values
	colorMagenta = 205 // title, current stage
)

// bold renders text in bold.
func bold(text string) string {
	return fmt.Sprintf("\033[1m%s\033[0m", text)
}

// fg wraps text with a 256-color foreground escape.
func fg(color int, text string) string {
	return fmt.Sprintf("\033[38;5;%dm%s\033[0m", color, text)
}

// fgBold wraps text with a 256-color foreground and bold.
func fgBold(color int, text string) string {
	return fmt.Sprintf("\033[1;38;5;%dm%s\033[0m", color, text)
}

// eraseUp moves the cursor up one line and clears it.
const eraseUp = "\033[A\033[2K"
