package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	path, err := WriteFile(dir, "fart-on-alice.jpg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fart-on-alice.jpg"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), got)
}
