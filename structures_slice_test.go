package strffi_test

import (
	"unsafe"

	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmstephe/strffi"
)

func TestSliceRoundTripsEmbeddedZero(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('a', 0, 'b')
	o, err := strffi.NewOwnedFromUnits[strffi.Slice[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	assert.Equal(t, units, o.Borrow().Units())
}

func TestSliceFromForeignSlice(t *testing.T) {
	raw := []byte{'h', 'i'}
	cData := make([]byte, len(raw))
	copy(cData, raw)

	b, ok := strffi.FromForeignSlice[strffi.Slice[strffi.MbUnit], strffi.Mb, strffi.MbUnit](unsafe.Pointer(&cData[0]), len(cData))
	assert.True(t, ok)
	assert.Equal(t, 2, b.Len())
}

func TestSliceFromForeignSliceNilPtr(t *testing.T) {
	_, ok := strffi.FromForeignSlice[strffi.Slice[strffi.MbUnit], strffi.Mb, strffi.MbUnit](nil, 0)
	assert.False(t, ok)
}

func TestGoSliceRoundTrips(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('x', 'y', 'z')
	o, err := strffi.NewOwnedFromUnits[strffi.GoSlice[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	assert.Equal(t, units, o.Borrow().Units())
}

func TestPrefixLenRoundTrips(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('g', 0xAA, 'r', 0xE7, 'o', 'n')
	o, err := strffi.NewOwnedFromUnits[strffi.PrefixLen[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	assert.Equal(t, units, o.Borrow().Units())

	ptr := o.Borrow().IntoForeignPtr()
	var s strffi.PrefixLen[strffi.MbUnit]
	data, length, ok := s.BorrowPtr(ptr)
	assert.True(t, ok)
	assert.Equal(t, len(units), length)
	assert.Equal(t, ptr, data)
}

func TestDoubleZeroTermRoundTrips(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('a', 'b', 'c')
	o, err := strffi.NewOwnedFromUnits[strffi.DoubleZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	assert.Equal(t, units, o.Borrow().Units())

	var s strffi.DoubleZeroTerm[strffi.MbUnit]
	withTerm := s.UnitsWithTerminator(o.Borrow().IntoForeignPtr(), len(units))
	assert.Equal(t, len(units)+2, len(withTerm))
	assert.True(t, withTerm[len(withTerm)-1].IsZero())
	assert.True(t, withTerm[len(withTerm)-2].IsZero())
}

func TestDoubleZeroTermRejectsInteriorZero(t *testing.T) {
	var s strffi.DoubleZeroTerm[strffi.MbUnit]
	a := strffi.CAlloc{}

	units := mbUnits('a', 0, 'b')
	_, _, err := s.Alloc(a, units)
	assert.ErrorIs(t, err, strffi.ErrInvalidContents)
}
