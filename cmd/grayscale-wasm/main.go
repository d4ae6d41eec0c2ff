//go:build js && wasm

// Command grayscale-wasm builds a browser module registering a global
// grayscaleRGBA function which converts an ImageData buffer in place:
//
//	$ GOOS=js GOARCH=wasm go build -o grayscale.wasm ./cmd/grayscale-wasm
//
// From JavaScript:
//
//	const img = ctx.getImageData(0, 0, w, h);
//	grayscaleRGBA(img.data);
//	ctx.putImageData(img, 0, 0);
package main

import (
	"syscall/js"

	"github.com/voyis/grayscale"
)

func main() {
	fn := js.FuncOf(grayscaleRGBA)
	defer fn.Release()

	js.Global().Set("grayscaleRGBA", fn)

	// Keep the module alive for the host calls.
	select {}
}

// grayscaleRGBA accepts a Uint8Array or Uint8ClampedArray. The Go runtime
// cannot address the host array directly, so the pixels are copied in,
// converted, and copied back over the same array.
func grayscaleRGBA(this js.Value, args []js.Value) any {
	if len(args) == 0 {
		return nil
	}
	src := args[0]
	if !src.InstanceOf(js.Global().Get("Uint8Array")) &&
		!src.InstanceOf(js.Global().Get("Uint8ClampedArray")) {
		return nil
	}

	pix := make([]byte, src.Get("length").Int())
	js.CopyBytesToGo(pix, src)
	grayscale.RGBA(pix)
	js.CopyBytesToJS(src, pix)

	return nil
}
