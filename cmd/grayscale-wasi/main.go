//go:build wasip1

// Command grayscale-wasi builds a WASI reactor module exposing the grayscale
// converter to any wasm host working on the module's linear memory:
//
//	$ GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o grayscale.wasm ./cmd/grayscale-wasi
//
// The host reserves room for the pixels with alloc, writes the RGBA bytes at
// the returned offset, calls grayscale_rgba and reads the bytes back from the
// same offset before releasing them with free.
package main

import (
	"unsafe"

	"github.com/voyis/grayscale"
	"github.com/voyis/grayscale/internal/linmem"
)

var mem = linmem.New()

func main() {}

//go:wasmexport alloc
func alloc(n uint32) unsafe.Pointer {
	return mem.Alloc(int(n))
}

//go:wasmexport free
func free(ptr unsafe.Pointer) {
	mem.Free(ptr)
}

//go:wasmexport grayscale_rgba
func grayscaleRGBA(ptr unsafe.Pointer, n uint32) {
	// Ranges outside of a live allocation are ignored.
	grayscale.RGBA(mem.Bytes(ptr, int(n)))
}
