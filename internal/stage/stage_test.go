package stage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcd(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Stage{
		{Title: "A"}, {Title: "B"}, {Title: "C"}, {Title: "D"},
	})
	require.NoError(t, err)
	return c
}

func TestNewCatalogEmpty(t *testing.T) {
	c, err := NewCatalog(nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewCatalog([]Stage{})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestNewCatalogAssignsIndexesAndDefaults(t *testing.T) {
	c := abcd(t)
	require.Equal(t, 4, c.Size())

	for i, s := range c.Stages() {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, FormatText, s.Format)
	}
}

func TestNewCatalogCopiesInput(t *testing.T) {
	in := []Stage{{Title: "A"}, {Title: "B"}}
	c, err := NewCatalog(in)
	require.NoError(t, err)

	in[0].Title = "mutated"
	s, err := c.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "A", s.Title)

	out := c.Stages()
	out[1].Title = "mutated"
	s, err = c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "B", s.Title)
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		stage   Stage
		wantErr string
		is      error
	}{
		{name: "missing title", stage: Stage{}, wantErr: "title is required"},
		{name: "unknown format", stage: Stage{Title: "x", Format: "yaml"}, wantErr: `unknown format "yaml"`},
		{name: "bad json", stage: Stage{Title: "x", Format: FormatJSON, Payload: "{nope"}, is: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog([]Stage{tt.stage})
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCatalogGet(t *testing.T) {
	c := abcd(t)

	s, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "C", s.Title)
	assert.Equal(t, 2, s.Index)

	for _, i := range []int{-1, 4, 100} {
		_, err := c.Get(i)
		assert.True(t, errors.Is(err, ErrOutOfRange), "index %d", i)
	}
}

func TestCatalogOptions(t *testing.T) {
	stats := []Stat{{Label: "Gas Used", Value: "0.001 SOL"}}
	c, err := NewCatalog([]Stage{{Title: "A"}}, WithName("demo"), WithStats(stats))
	require.NoError(t, err)

	assert.Equal(t, "demo", c.Name())
	assert.Equal(t, stats, c.Stats())

	stats[0].Value = "changed"
	assert.Equal(t, "0.001 SOL", c.Stats()[0].Value)
}

func TestFormatValid(t *testing.T) {
	assert.True(t, FormatText.Valid())
	assert.True(t, FormatJSON.Valid())
	assert.True(t, FormatMarkdown.Valid())
	assert.False(t, Format("").Valid())
	assert.False(t, Format("html").Valid())
}
