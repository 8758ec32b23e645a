package imaging

import (
	"fmt"
	"os"
	"path/filepath"

	dimaging "github.com/disintegration/imaging"
)

// ThumbnailWidth is the target width for gallery thumbnails; height follows
// the aspect ratio.
const ThumbnailWidth = 480

// GenerateThumbnail opens the source image, corrects its EXIF orientation and
// writes a resized thumbnail next to it. The destination format follows the
// destination extension.
func GenerateThumbnail(srcPath, dstPath string) error {
	img, err := dimaging.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source image: %w", err)
	}

	img = applyOrientation(img, ReadOrientation(srcPath))

	thumb := dimaging.Resize(img, ThumbnailWidth, 0, dimaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	// Write to a temp file first so readers never see a partial thumbnail.
	// The extension is kept so the encoder picks the right format.
	tmpPath := dstPath + ".tmp" + filepath.Ext(dstPath)
	if err := dimaging.Save(thumb, tmpPath, dimaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	if err := os.Rename(tmpPath, dstPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move thumbnail into place: %w", err)
	}

	return nil
}
