package grayscale

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/voyis/grayscale/utils"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest number of pixels handed to a single goroutine.
// Below this the scheduling overhead outweighs the conversion itself.
const minChunk = 1 << 14

// RGBA converts an RGBA interleaved pixel buffer to grayscale in place.
// Every complete 4 byte group gets its R, G and B channels replaced with the
// truncated average of the three. The alpha channel and any trailing bytes
// which do not form a complete pixel are left untouched.
func RGBA(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		p := pix[i : i+3 : i+3]
		// Simple average.
		gray := uint8((uint32(p[0]) + uint32(p[1]) + uint32(p[2])) / 3)

		p[0] = gray
		p[1] = gray
		p[2] = gray
	}
}

// Parallel does the same as RGBA, but splits the buffer into pixel aligned
// chunks which are converted concurrently by at most workers goroutines.
func Parallel(pix []byte, workers int) {
	n := len(pix) / 4
	if workers <= 1 || n < 2*minChunk {
		RGBA(pix)
		return
	}

	chunk := utils.Max((n+workers-1)/workers, minChunk)

	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		part := pix[start*4 : end*4]
		g.Go(func() error {
			RGBA(part)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}

// NRGBA converts the image to grayscale in place. Only the pixels inside the
// image bounds are touched, so it is safe to call it on a sub image.
func NRGBA(img *image.NRGBA, workers int) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	rowSize := b.Dx() * 4

	// A contiguous pixel buffer can be processed in one go.
	if img.Stride == rowSize {
		off := img.PixOffset(b.Min.X, b.Min.Y)
		Parallel(img.Pix[off:off+rowSize*b.Dy()], workers)
		return
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		RGBA(img.Pix[off : off+rowSize])
	}
}

// Image returns a grayscale copy of src. The source image is not modified.
func Image(src image.Image, workers int) *image.NRGBA {
	dst := imaging.Clone(src)
	NRGBA(dst, workers)

	return dst
}

// IsGray reports whether every complete pixel of the buffer has equal R, G and B values.
func IsGray(pix []byte) bool {
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] != pix[i+1] || pix[i+1] != pix[i+2] {
			return false
		}
	}
	return true
}
