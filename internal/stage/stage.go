// Package stage defines the immutable stage catalog that a playback run walks
// through: Stage, Stat and Catalog, plus loading catalogs from YAML files.
package stage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyCatalog is returned when a catalog is built without stages.
	ErrEmptyCatalog = errors.New("catalog has no stages")
	// ErrOutOfRange is returned for a stage index outside [0, N-1].
	ErrOutOfRange = errors.New("stage index out of range")
	// ErrInvalidPayload is returned when a payload does not match its format.
	ErrInvalidPayload = errors.New("invalid stage payload")
)

// Format describes how a stage payload should be rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Valid reports whether f is a known payload format.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatMarkdown:
		return true
	}
	return false
}

// Stage is one step of a scripted sequence.
type Stage struct {
	Index       int
	Title       string
	Description string
	Payload     string
	Format      Format
}

// Stat is an illustrative label/value pair revealed when a run completes.
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Catalog is an ordered, read-only list of stages.
type Catalog struct {
	name   string
	stages []Stage
	stats  []Stat
}

// Option configures a Catalog at construction.
type Option func(*Catalog)

// WithName sets the catalog's display name.
func WithName(name string) Option {
	return func(c *Catalog) { c.name = name }
}

// WithStats attaches the final aggregate stats shown after a completed run.
func WithStats(stats []Stat) Option {
	return func(c *Catalog) { c.stats = slices.Clone(stats) }
}

// NewCatalog builds a catalog from stages in order. Each stage's Index is
// assigned from its position and an empty Format defaults to FormatText.
func NewCatalog(stages []Stage, opts ...Option) (*Catalog, error) {
	if len(stages) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{stages: make([]Stage, len(stages))}
	for i, s := range stages {
		s.Index = i
		if s.Format == "" {
			s.Format = FormatText
		}
		if err := validate(s); err != nil {
			return nil, err
		}
		c.stages[i] = s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func validate(s Stage) error {
	if s.Title == "" {
		return fmt.Errorf("stage %d: title is required", s.Index)
	}
	if !s.Format.Valid() {
		return fmt.Errorf("stage %d (%s): unknown format %q", s.Index, s.Title, s.Format)
	}
	if s.Format == FormatJSON && !gjson.Valid(s.Payload) {
		return fmt.Errorf("stage %d (%s): %w: payload is not valid JSON", s.Index, s.Title, ErrInvalidPayload)
	}
	return nil
}

// Get returns the stage at index i.
func (c *Catalog) Get(i int) (Stage, error) {
	if i < 0 || i >= len(c.stages) {
		return Stage{}, fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, i, len(c.stages)-1)
	}
	return c.stages[i], nil
}

// Size returns the number of stages.
func (c *Catalog) Size() int {
	return len(c.stages)
}

// Name returns the catalog's display name, if any.
func (c *Catalog) Name() string {
	return c.name
}

// Stages returns a copy of all stages in order.
func (c *Catalog) Stages() []Stage {
	return slices.Clone(c.stages)
}

// Stats returns a copy of the catalog's final stats.
func (c *Catalog) Stats() []Stat {
	return slices.Clone(c.stats)
}
