package stage

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/stageplay/internal/debug"
)

// fileStage is the on-disk form of a stage.
type fileStage struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Format      Format `yaml:"format,omitempty"`
	Payload     string `yaml:"payload,omitempty"`
}

// fileCatalog is the on-disk form of a catalog.
type fileCatalog struct {
	Name   string      `yaml:"name,omitempty"`
	Stats  []Stat      `yaml:"stats,omitempty"`
	Stages []fileStage `yaml:"stages"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's catalog file
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	debug.Logf("stage: loaded %q from %s (%d stages, %d stats)", cat.Name(), path, cat.Size(), len(cat.stats))
	return cat, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	stages := make([]Stage, len(fc.Stages))
	for i, fs := range fc.Stages {
		stages[i] = Stage{
			Title:       fs.Title,
			Description: fs.Description,
			Payload:     fs.Payload,
			Format:      fs.Format,
		}
	}
	return NewCatalog(stages, WithName(fc.Name), WithStats(fc.Stats))
}

// Marshal encodes the catalog back to YAML. When normalize is true, payloads
// are written in their FormattedPayload form.
func Marshal(c *Catalog, normalize bool) ([]byte, error) {
	fc := fileCatalog{Name: c.name, Stats: c.stats}
	for _, s := range c.stages {
		payload := s.Payload
		if normalize {
			payload = s.FormattedPayload()
			if payload != "" {
				payload += "\n"
			}
		}
		format := s.Format
		if format == FormatText {
			format = ""
		}
		fc.Stages = append(fc.Stages, fileStage{
			Title:       s.Title,
			Description: s.Description,
			Format:      format,
			Payload:     payload,
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}
