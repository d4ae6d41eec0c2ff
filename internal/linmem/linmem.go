// Package linmem keeps track of the buffers a wasm host allocates inside the
// module's linear memory. The Go garbage collector does not know that the host
// holds a pointer into such a buffer, so every allocation stays referenced
// from a table until the host releases it.
package linmem

import (
	"sync"
	"unsafe"
)

// Table holds the live host allocations keyed by the address of their first byte.
type Table struct {
	mu   sync.Mutex
	bufs map[uintptr][]byte
}

// New returns an empty allocation table.
func New() *Table {
	return &Table{bufs: make(map[uintptr][]byte)}
}

// Alloc returns a zeroed buffer of n bytes which stays alive until Free is
// called with its address. Zero or negative sizes return nil.
func (t *Table) Alloc(n int) unsafe.Pointer {
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	ptr := unsafe.Pointer(unsafe.SliceData(buf))

	t.mu.Lock()
	t.bufs[uintptr(ptr)] = buf
	t.mu.Unlock()

	return ptr
}

// Free releases the buffer starting at ptr. Unknown pointers are ignored.
func (t *Table) Free(ptr unsafe.Pointer) {
	t.mu.Lock()
	delete(t.bufs, uintptr(ptr))
	t.mu.Unlock()
}

// Bytes returns a view of n bytes starting at ptr. It returns nil when the
// range does not lie inside a live allocation, so a host passing a bad
// pointer or length never makes the module touch memory it does not own.
func (t *Table) Bytes(ptr unsafe.Pointer, n int) []byte {
	if ptr == nil || n <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	addr := uintptr(ptr)
	if buf, ok := t.bufs[addr]; ok {
		if n > len(buf) {
			return nil
		}
		return buf[:n:n]
	}
	for base, buf := range t.bufs {
		if addr > base && addr+uintptr(n) <= base+uintptr(len(buf)) {
			off := addr - base
			return buf[off : off+uintptr(n) : off+uintptr(n)]
		}
	}
	return nil
}

// Len returns the number of live allocations.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.bufs)
}
