package strffi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmstephe/strffi"
	"github.com/fmstephe/strffi/testpkg/testutil"
)

// Sweeps a range of random-content sizes through every pointer/slice
// structure, checking the round trip holds regardless of length.
func TestRandomSizesRoundTripAllStructures(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	rsm := testutil.NewRandomStringMaker()

	for _, n := range []int{0, 1, 2, 7, 31, 63, 200} {
		mb := rsm.MakeSizedMbUnits(n)

		zt, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](mb, a)
		assert.NoError(t, err)
		assert.Equal(t, mb, zt.Borrow().Units())
		zt.Destroy()

		sl, err := strffi.NewOwnedFromUnits[strffi.Slice[strffi.MbUnit], strffi.Mb](mb, a)
		assert.NoError(t, err)
		assert.Equal(t, mb, sl.Borrow().Units())
		sl.Destroy()

		pl, err := strffi.NewOwnedFromUnits[strffi.PrefixLen[strffi.MbUnit], strffi.Mb](mb, a)
		assert.NoError(t, err)
		assert.Equal(t, mb, pl.Borrow().Units())
		pl.Destroy()

		ascii := rsm.MakeSizedAsciiUnits(n)
		za, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.AsciiUnit], strffi.Ascii](ascii, a)
		assert.NoError(t, err)
		assert.Equal(t, ascii, za.Borrow().Units())
		za.Destroy()

		wide := rsm.MakeSizedWideUnits(n)
		zw, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.WideUnit], strffi.Wide](wide, a)
		assert.NoError(t, err)
		assert.Equal(t, wide, zw.Borrow().Units())
		zw.Destroy()
	}
}
