package grayscale

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyis/grayscale/utils"
)

func newTestProcessor() *Processor {
	s := utils.NewSpinner("", time.Millisecond, false)
	s.SetWriter(io.Discard)

	return &Processor{Workers: 2, Spinner: s}
}

func sampleImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	for x := 0; x < imgWidth; x++ {
		for y := 0; y < imgHeight; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 25), G: uint8(y * 25), B: 90, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
}

func assertGrayPNG(t *testing.T, path string, want *image.NRGBA) {
	t.Helper()

	got, err := imaging.Open(path)
	require.NoError(t, err)

	gray := imaging.Clone(got)
	assert.Equal(t, want.Bounds(), gray.Bounds())
	assert.Equal(t, want.Pix, gray.Pix)
}

func expectedGray(img *image.NRGBA) *image.NRGBA {
	want := imaging.Clone(img)
	RGBA(want.Pix)
	return want
}

func TestProcessor_ProcessToWriter(t *testing.T) {
	var src, dst bytes.Buffer
	require.NoError(t, png.Encode(&src, sampleImage()))

	p := newTestProcessor()
	require.NoError(t, p.Process(&src, &dst))

	// Anything which is not a named file gets a JPEG.
	_, format, err := image.Decode(&dst)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestProcessor_ProcessToFile(t *testing.T) {
	var src bytes.Buffer
	img := sampleImage()
	require.NoError(t, png.Encode(&src, img))

	out := filepath.Join(t.TempDir(), "gray.png")
	f, err := os.Create(out)
	require.NoError(t, err)

	p := newTestProcessor()
	require.NoError(t, p.Process(&src, f))
	require.NoError(t, f.Close())

	assertGrayPNG(t, out, expectedGray(img))
}

func TestProcessor_ProcessInvalidImage(t *testing.T) {
	p := newTestProcessor()
	err := p.Process(bytes.NewReader([]byte("not an image")), io.Discard)

	assert.Error(t, err)
}

func TestProcessor_UnsupportedDestination(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, sampleImage()))

	f, err := os.Create(filepath.Join(t.TempDir(), "gray.webp"))
	require.NoError(t, err)
	defer f.Close()

	p := newTestProcessor()
	assert.ErrorIs(t, p.Process(&src, f), errUnsupportedFormat)
}

func TestProcessor_Workers(t *testing.T) {
	assert.Equal(t, 3, (&Processor{Workers: 3}).workers())
	assert.Positive(t, (&Processor{}).workers())
}
