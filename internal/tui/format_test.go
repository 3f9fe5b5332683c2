package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		indent   string
		maxLines int
		want     string
	}{
		{name: "fits", text: "short text", width: 20, want: "short text"},
		{name: "wraps", text: "one two three", width: 8, want: "one two\nthree"},
		{name: "indents continuation", text: "one two three", width: 8, indent: "  ", want: "one two\n  three"},
		{name: "truncates", text: "aaaa bbbb cccc dddd", width: 5, maxLines: 2, want: "aaaa\nb..."},
		{name: "empty", text: "   ", width: 10, want: ""},
		{name: "no width", text: "as is", width: 0, want: "as is"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width, tt.indent, tt.maxLines))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00.0"},
		{2300 * time.Millisecond, "00:02.3"},
		{8 * time.Second, "00:08.0"},
		{3*time.Minute + 25*time.Second, "03:25.0"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.d))
		})
	}
}
