package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsAndURLs(t *testing.T) {
	m := &Manager{root: "/srv/media"}

	assert.Equal(t, filepath.Join("/srv/media", "businesses", "42"), m.BusinessDir(42))
	assert.Equal(t, filepath.Join("/srv/media", "businesses", "42", "a.jpg"), m.OriginalPath(42, "a.jpg"))
	assert.Equal(t, filepath.Join("/srv/media", "businesses", "42", "thumbs", "a.jpg"), m.ThumbnailPath(42, "a.jpg"))
	assert.Equal(t, "/uploads/businesses/42/a.jpg", m.OriginalURL(42, "a.jpg"))
	assert.Equal(t, "/uploads/businesses/42/thumbs/a.jpg", m.ThumbnailURL(42, "a.jpg"))
}

func TestRemoveIsIdempotent(t *testing.T) {
	m := &Manager{root: t.TempDir()}

	require.NoError(t, os.MkdirAll(filepath.Join(m.BusinessDir(7), "thumbs"), 0755))
	require.NoError(t, os.WriteFile(m.OriginalPath(7, "x.png"), []byte("img"), 0644))
	require.NoError(t, os.WriteFile(m.ThumbnailPath(7, "x.png"), []byte("img"), 0644))

	require.NoError(t, m.Remove(7, "x.png"))
	assert.NoFileExists(t, m.OriginalPath(7, "x.png"))
	assert.NoFileExists(t, m.ThumbnailPath(7, "x.png"))

	// Second call finds nothing to delete and still succeeds
	require.NoError(t, m.Remove(7, "x.png"))
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "abc-123.jpg", SafeFileName("abc-123", "Foto Local.JPG"))
	assert.Equal(t, "abc-123.webp", SafeFileName("abc-123", "menu.webp"))
	assert.Equal(t, "abc-123", SafeFileName("abc-123", "sinextension"))
}
