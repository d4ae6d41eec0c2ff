package grayscale

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// errUnsupportedFormat is returned when the destination extension has no encoder.
var errUnsupportedFormat = errors.New("unsupported image format")

// decodeImg decodes the image read from r and returns it as *image.NRGBA
// with the min point at (0, 0), honoring the EXIF orientation tag.
func decodeImg(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return imaging.Clone(src), nil
}

// encodeImg encodes an image to a destination of type io.Writer.
// The output format is inferred from the file extension; anything which
// is not a named file is encoded as JPEG.
func encodeImg(w io.Writer, img image.Image) error {
	f, ok := w.(*os.File)
	if !ok || filepath.Ext(f.Name()) == "" {
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(100))
	}

	format, err := imaging.FormatFromFilename(f.Name())
	if err != nil {
		return errUnsupportedFormat
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(100))
}
