package style

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	s := For(&buf)

	tests := map[string]func(...string) string{
		"heading": s.Heading.Render,
		"label":   s.Label.Render,
		"success": s.Success.Render,
		"error":   s.Error.Render,
		"muted":   s.Muted.Render,
	}
	for name, render := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "text", render("text"))
		})
	}
}

func TestColorTerminal(t *testing.T) {
	assert.False(t, ColorTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if assert.NoError(t, err) {
		defer f.Close()
		assert.False(t, ColorTerminal(f))
	}
}

func TestColorTerminal_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorTerminal(os.Stdout))
}
