//go:build js && wasm

package main

import (
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newArray(ctor string, pix []byte) js.Value {
	arr := js.Global().Get(ctor).New(len(pix))
	js.CopyBytesToJS(arr, pix)
	return arr
}

func readArray(arr js.Value) []byte {
	pix := make([]byte, arr.Get("length").Int())
	js.CopyBytesToGo(pix, arr)
	return pix
}

func TestGrayscaleRGBA_HostArrays(t *testing.T) {
	in := []byte{255, 0, 0, 255, 0, 255, 0, 200, 10, 20}
	want := []byte{85, 85, 85, 255, 85, 85, 85, 200, 10, 20}

	for _, ctor := range []string{"Uint8Array", "Uint8ClampedArray"} {
		arr := newArray(ctor, in)
		grayscaleRGBA(js.Undefined(), []js.Value{arr})

		assert.Equal(t, want, readArray(arr), ctor)
	}
}

func TestGrayscaleRGBA_IgnoresOtherValues(t *testing.T) {
	assert.NotPanics(t, func() {
		grayscaleRGBA(js.Undefined(), nil)
		grayscaleRGBA(js.Undefined(), []js.Value{js.ValueOf(42)})
		grayscaleRGBA(js.Undefined(), []js.Value{js.Global().Get("Float32Array").New(4)})
	})
}
