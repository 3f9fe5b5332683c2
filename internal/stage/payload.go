package stage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrNoMatch is returned when a query path matches nothing in a payload.
var ErrNoMatch = errors.New("no match")

// FormattedPayload returns the payload normalized for display: JSON payloads
// are pretty-printed with two-space indentation, other formats are returned
// with surrounding blank lines trimmed.
func (s Stage) FormattedPayload() string {
	if s.Format == FormatJSON {
		return strings.TrimRight(string(pretty.Pretty([]byte(s.Payload))), "\n")
	}
	return strings.Trim(s.Payload, "\n")
}

// Query extracts a value from a JSON payload using a gjson path.
func (s Stage) Query(path string) (string, error) {
	if s.Format != FormatJSON {
		return "", fmt.Errorf("stage %d (%s): %w: query needs a json payload, got %s", s.Index, s.Title, ErrInvalidPayload, s.Format)
	}
	res := gjson.Get(s.Payload, path)
	if !res.Exists() {
		return "", fmt.Errorf("stage %d: %q: %w", s.Index, path, ErrNoMatch)
	}
	return res.String(), nil
}
