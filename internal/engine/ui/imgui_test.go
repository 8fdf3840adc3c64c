package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(font, []byte("x"), 0o644))

	assert.Equal(t, font, FirstExisting([]string{filepath.Join(dir, "missing.ttf"), font}))
	assert.Empty(t, FirstExisting([]string{filepath.Join(dir, "missing.ttf")}))
	assert.Empty(t, FirstExisting(nil))
}
