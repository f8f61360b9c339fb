// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	for name, want := range map[string]bool{
		"a.jpg":   true,
		"a.JPEG":  true,
		"a.png":   true,
		"a.gif":   false,
		"a.pdf":   false,
		"png":     false,
		"a.png.x": false,
	} {
		assert.Equal(t, want, Supported(name), name)
	}
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt", "c.jpeg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	single := filepath.Join(t.TempDir(), "single.gif")

	images, err := CollectImages([]string{dir, single})
	require.NoError(t, err)

	var names []string
	for _, img := range images {
		names = append(names, img.Name)
	}
	assert.Equal(t, []string{"a.jpg", "b.png", "c.jpeg", "single.gif"}, names)
	assert.Equal(t, filepath.Join(dir, "a.jpg"), images[0].Path)
	assert.Equal(t, single, images[3].Path)
}
