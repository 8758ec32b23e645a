package imaging

import (
	"image"
	"os"

	dimaging "github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// ReadOrientation returns the EXIF orientation tag of the file, 1 (normal)
// when the file has no usable EXIF data.
func ReadOrientation(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 1
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil || orientation < 1 || orientation > 8 {
		return 1
	}
	return orientation
}

// applyOrientation normalizes an image according to the EXIF orientation
// values 1-8 so thumbnails always render upright.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return dimaging.FlipH(img)
	case 3:
		return dimaging.Rotate180(img)
	case 4:
		return dimaging.FlipV(img)
	case 5:
		return dimaging.Transpose(img)
	case 6:
		return dimaging.Rotate270(img)
	case 7:
		return dimaging.Transverse(img)
	case 8:
		return dimaging.Rotate90(img)
	default:
		return img
	}
}
