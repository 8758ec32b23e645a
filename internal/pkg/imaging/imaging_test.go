package imaging

import (
	"image"
	"path/filepath"
	"testing"

	dimaging "github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "original.jpg")
	dst := filepath.Join(dir, "thumb", "original.jpg")

	img := dimaging.New(1600, 900, image.White.C)
	require.NoError(t, dimaging.Save(img, src))

	require.NoError(t, GenerateThumbnail(src, dst))

	thumb, err := dimaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, thumb.Bounds().Dx())
}

func TestGenerateThumbnailMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := GenerateThumbnail(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "thumb.jpg"))
	assert.Error(t, err)
}

func TestApplyOrientationDimensions(t *testing.T) {
	img := dimaging.New(40, 20, image.White.C)

	// Rotating orientations swap width and height
	for _, o := range []int{5, 6, 7, 8} {
		out := applyOrientation(img, o)
		assert.Equal(t, 20, out.Bounds().Dx(), "orientation %d", o)
		assert.Equal(t, 40, out.Bounds().Dy(), "orientation %d", o)
	}

	// Flip-only and normal orientations keep dimensions
	for _, o := range []int{1, 2, 3, 4, 99} {
		out := applyOrientation(img, o)
		assert.Equal(t, 40, out.Bounds().Dx(), "orientation %d", o)
	}
}

func TestReadOrientationWithoutExif(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.jpg")
	require.NoError(t, dimaging.Save(dimaging.New(10, 10, image.White.C), src))

	assert.Equal(t, 1, ReadOrientation(src))
	assert.Equal(t, 1, ReadOrientation(filepath.Join(dir, "missing.jpg")))
}
