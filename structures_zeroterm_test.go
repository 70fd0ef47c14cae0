package strffi_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/fmstephe/strffi"
)

func mbUnits(bs ...byte) []strffi.MbUnit {
	units := make([]strffi.MbUnit, len(bs))
	for i, b := range bs {
		units[i] = strffi.MbUnit{V: b}
	}
	return units
}

// The concrete WORD = "gªrçon" Linux/UTF-8 multibyte scenario (spec.md §8).
func TestZeroTermMbFromForeignPtr(t *testing.T) {
	mbBytes := []byte{0x67, 0xC2, 0xAA, 0x72, 0xC3, 0xA7, 0x6F, 0x6E, 0x00}
	cData := make([]byte, len(mbBytes))
	copy(cData, mbBytes)

	b, ok := strffi.FromForeignPtr[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb, strffi.MbUnit](unsafe.Pointer(&cData[0]))
	assert.True(t, ok)
	assert.Equal(t, len(mbBytes)-1, b.Len())

	units := b.Units()
	assert.Equal(t, len(mbBytes)-1, len(units))
	for i, u := range units {
		assert.Equal(t, mbBytes[i], u.V)
	}
}

func TestZeroTermAllocAppendsTerminator(t *testing.T) {
	var s strffi.ZeroTerm[strffi.MbUnit]
	a := strffi.CAlloc{}

	units := mbUnits('h', 'i')
	ptr, length, err := s.Alloc(a, units)
	assert.NoError(t, err)
	assert.Equal(t, 2, length)
	defer s.Free(a, ptr, length)

	withTerm := s.UnitsWithTerminator(ptr, length)
	assert.Equal(t, 3, len(withTerm))
	assert.True(t, withTerm[2].IsZero())
}

func TestZeroTermAllocDoesNotDoubleTerminate(t *testing.T) {
	var s strffi.ZeroTerm[strffi.MbUnit]
	a := strffi.CAlloc{}

	units := mbUnits('h', 'i', 0)
	ptr, length, err := s.Alloc(a, units)
	assert.NoError(t, err)
	assert.Equal(t, 2, length)
	defer s.Free(a, ptr, length)
}

func TestZeroTermRejectsInteriorZero(t *testing.T) {
	var s strffi.ZeroTerm[strffi.MbUnit]
	a := strffi.CAlloc{}

	units := mbUnits('h', 0, 'i')
	_, _, err := s.Alloc(a, units)
	assert.ErrorIs(t, err, strffi.ErrInvalidContents)
}

// Universal property 5: length monotonicity.
func TestZeroTermOwnedRoundTripsUnits(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('g', 0xAA, 'r', 0xE7, 'o', 'n')
	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	assert.Equal(t, units, o.Borrow().Units())
}

// Universal property 3: Default is empty.
func TestZeroTermDefaultIsEmpty(t *testing.T) {
	var s strffi.ZeroTerm[strffi.MbUnit]
	var e strffi.Mb
	_, length := s.Default(e)
	assert.Equal(t, 0, length)
}
