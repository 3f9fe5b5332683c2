package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexander-akhmetov/stageplay/internal/stage"
)

func mustDemo(t *testing.T) *stage.Catalog {
	t.Helper()
	c, err := stage.Demo()
	require.NoError(t, err)
	return c
}
