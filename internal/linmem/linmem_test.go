package linmem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinmem_AllocFree(t *testing.T) {
	tbl := New()

	ptr := tbl.Alloc(8)
	require.NotNil(t, ptr)
	assert.Equal(t, 1, tbl.Len())

	buf := tbl.Bytes(ptr, 8)
	require.Len(t, buf, 8)
	assert.Equal(t, make([]byte, 8), buf)

	tbl.Free(ptr)
	assert.Equal(t, 0, tbl.Len())
	assert.Nil(t, tbl.Bytes(ptr, 8))

	// Freeing twice is harmless.
	tbl.Free(ptr)
}

func TestLinmem_AllocZero(t *testing.T) {
	tbl := New()

	assert.Nil(t, tbl.Alloc(0))
	assert.Nil(t, tbl.Alloc(-4))
	assert.Equal(t, 0, tbl.Len())
}

func TestLinmem_BytesSharesMemory(t *testing.T) {
	tbl := New()
	ptr := tbl.Alloc(6)

	buf := tbl.Bytes(ptr, 6)
	copy(buf, []byte{1, 2, 3, 4, 5, 6})

	again := tbl.Bytes(ptr, 6)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, again)
	assert.Equal(t, unsafe.SliceData(buf), unsafe.SliceData(again))
}

func TestLinmem_BytesInterior(t *testing.T) {
	tbl := New()
	ptr := tbl.Alloc(8)
	copy(tbl.Bytes(ptr, 8), []byte{0, 1, 2, 3, 4, 5, 6, 7})

	inner := unsafe.Add(ptr, 4)
	assert.Equal(t, []byte{4, 5, 6, 7}, tbl.Bytes(inner, 4))
	assert.Nil(t, tbl.Bytes(inner, 5))
}

func TestLinmem_BytesOutOfRange(t *testing.T) {
	tbl := New()
	ptr := tbl.Alloc(4)

	assert.Nil(t, tbl.Bytes(ptr, 5))
	assert.Nil(t, tbl.Bytes(ptr, 0))
	assert.Nil(t, tbl.Bytes(nil, 4))
}
