package grayscale

import (
	"io"
	"runtime"

	"github.com/voyis/grayscale/utils"
)

// Processor options
type Processor struct {
	// Workers is the number of goroutines converting the pixels of a single image.
	// Zero means one worker per CPU.
	Workers int
	Spinner *utils.Spinner
}

// Process decodes the image read from r, converts it to grayscale and
// encodes the result into w. The io package is used on both ends,
// so files, pipes and in-memory buffers are equally accepted.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	img, err := decodeImg(r)
	if err != nil {
		return err
	}
	NRGBA(img, p.workers())

	return encodeImg(w, img)
}

func (p *Processor) workers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}
