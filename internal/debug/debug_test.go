package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	prev := Enabled()
	defer SetEnabled(prev)

	SetEnabled(false)
	Logf("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetEnabled(true)
	assert.True(t, Enabled())
	Logf("tick %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG ")
	assert.Contains(t, buf.String(), "] tick 2\n")
}
