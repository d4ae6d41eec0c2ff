/*
Package grayscale converts RGBA pixel buffers to grayscale in place.

Each complete 4 byte pixel gets its red, green and blue channels replaced by
the truncated average (R+G+B)/3. The alpha channel is never read nor written,
and trailing bytes which do not make up a whole pixel are left as they are.
The buffer is borrowed for the duration of the call only: nothing is
allocated and nothing is returned.

	pix := []byte{255, 0, 0, 255, 0, 255, 0, 200}
	grayscale.RGBA(pix) // [85 85 85 255 85 85 85 200]

The same function is exported to wasm hosts by the commands under cmd/,
and the Processor type wraps it into a file pipeline used by the CLI:

	$ grayscale -in photo.jpg -out photo-gray.png
	$ grayscale -in ./album -out ./album-gray -conc 8
*/
package grayscale
