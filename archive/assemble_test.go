package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStillsNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img10.png", "img2.png", "img1.png", "notes.txt", "IMG3.JPG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	paths, err := ListStills(dir)
	require.NoError(t, err)

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	// Archive numbering, not lexical order: img2 before img10.
	assert.Equal(t, []string{"IMG3.JPG", "img1.png", "img2.png", "img10.png"}, names)
}

func TestListStillsEmptyDir(t *testing.T) {
	paths, err := ListStills(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}
