package strffi_test

import (
	"encoding/binary"
	"unsafe"

	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmstephe/strffi"
)

// Universal property 2: ownership transfer round trip. A pointer produced
// by IntoForeignPtr, handed to foreign code and handed back via
// FromForeignOwned, must report the same units and must free exactly once.
func TestBstrOwnershipTransferRoundTrip(t *testing.T) {
	units := mbUnits('h', 'i')
	byteLen := len(units)
	buf := make([]byte, 4+byteLen)
	binary.LittleEndian.PutUint32(buf, uint32(byteLen))
	for i, u := range units {
		buf[4+i] = u.V
	}

	ptr := unsafe.Pointer(&buf[4])
	wsa := &strffi.WsaAlloc{}

	o, ok := strffi.FromForeignOwned[strffi.Bstr[strffi.MbUnit], strffi.Mb, strffi.MbUnit](ptr, wsa)
	assert.True(t, ok)
	assert.Equal(t, units, o.Borrow().Units())

	leaked := strffi.IntoForeignPtr[strffi.Bstr[strffi.MbUnit], strffi.Mb, strffi.MbUnit](&o)
	assert.Equal(t, ptr, leaked)

	reclaimed, ok := strffi.FromForeignOwned[strffi.Bstr[strffi.MbUnit], strffi.Mb, strffi.MbUnit](leaked, wsa)
	assert.True(t, ok)
	assert.Equal(t, units, reclaimed.Borrow().Units())
	reclaimed.Destroy()

	// o was relinquished by IntoForeignPtr above; Destroy must be a no-op,
	// not a second free of the same bytes.
	o.Destroy()
}

// Universal property 6: mutation safety. Slice/GoSlice permit in-place
// mutation through UnitsMutChecked because no structural bookkeeping can be
// corrupted by it.
func TestSliceMutationSafety(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('a', 'b', 'c')
	o, err := strffi.NewOwnedFromUnits[strffi.Slice[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	mut := strffi.UnitsMutChecked[strffi.Slice[strffi.MbUnit], strffi.Mb](o.Borrow())
	mut[0] = strffi.MbUnit{V: 'z'}

	assert.Equal(t, mbUnits('z', 'b', 'c'), o.Borrow().Units())
}

// Universal property 8: bit-layout compatibility. A BorrowedStr obtained by
// re-borrowing the raw pointer an OwnedStr holds must see the same units as
// OwnedStr.Borrow() itself.
func TestOwnedBorrowBitLayoutCompatibility(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('g', 0xAA, 'r', 0xE7, 'o', 'n')
	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	ptr := o.Borrow().IntoForeignPtr()
	rebor, ok := strffi.FromForeignPtr[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb, strffi.MbUnit](ptr)
	assert.True(t, ok)
	assert.Equal(t, o.Borrow().Units(), rebor.Units())
}

func TestCloneAndEqual(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('x', 'y')
	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	c, err := o.Clone()
	assert.NoError(t, err)
	defer c.Destroy()

	assert.True(t, o.Equal(c))
}

func TestDefaultOwnedIsEmpty(t *testing.T) {
	o := strffi.DefaultOwned[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb, strffi.MbUnit](strffi.CAlloc{})
	assert.Equal(t, 0, o.Borrow().Len())
	// Default's pointer is never owned; Destroy must not attempt to free it.
	o.Destroy()
}
