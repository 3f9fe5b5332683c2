package stage

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ExportJSON renders the catalog as a JSON document. JSON payloads are
// embedded as raw JSON values rather than strings.
func ExportJSON(c *Catalog) (string, error) {
	doc := `{}`
	var err error

	if c.name != "" {
		if doc, err = sjson.Set(doc, "name", c.name); err != nil {
			return "", fmt.Errorf("export name: %w", err)
		}
	}
	if doc, err = sjson.SetRaw(doc, "stages", "[]"); err != nil {
		return "", fmt.Errorf("export stages: %w", err)
	}

	for i, s := range c.stages {
		prefix := fmt.Sprintf("stages.%d.", i)
		fields := []struct {
			path  string
			value any
		}{
			{"index", s.Index},
			{"title", s.Title},
			{"description", s.Description},
			{"format", string(s.Format)},
		}
		for _, f := range fields {
			if doc, err = sjson.Set(doc, prefix+f.path, f.value); err != nil {
				return "", fmt.Errorf("export stage %d: %w", i, err)
			}
		}
		if s.Format == FormatJSON {
			doc, err = sjson.SetRaw(doc, prefix+"payload", s.Payload)
		} else {
			doc, err = sjson.Set(doc, prefix+"payload", s.Payload)
		}
		if err != nil {
			return "", fmt.Errorf("export stage %d payload: %w", i, err)
		}
	}

	if len(c.stats) > 0 {
		if doc, err = sjson.SetRaw(doc, "stats", "[]"); err != nil {
			return "", fmt.Errorf("export stats: %w", err)
		}
	}
	for i, st := range c.stats {
		if doc, err = sjson.Set(doc, fmt.Sprintf("stats.%d", i), st); err != nil {
			return "", fmt.Errorf("export stat %d: %w", i, err)
		}
	}

	return string(pretty.Pretty([]byte(doc))), nil
}
