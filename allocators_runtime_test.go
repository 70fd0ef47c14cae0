package strffi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmstephe/strffi"
)

func TestRuntimeAllocRoundTrips(t *testing.T) {
	a := strffi.NewRuntimeAllocSized(1 << 10)
	defer a.Destroy()

	units := mbUnits('h', 'e', 'l', 'l', 'o')
	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)

	assert.Equal(t, units, o.Borrow().Units())
	o.Destroy()
}

// Universal property 2 supplement: freeing a RuntimeAlloc allocation a
// second time must panic rather than silently corrupt the free list.
func TestRuntimeAllocDoubleFreePanics(t *testing.T) {
	a := strffi.NewRuntimeAllocSized(1 << 10)
	defer a.Destroy()

	units := mbUnits('h', 'i')
	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)

	o.Destroy()
	assert.Panics(t, func() {
		var s strffi.ZeroTerm[strffi.MbUnit]
		s.Free(a, o.Borrow().IntoForeignPtr(), 2)
	})
}

func TestRuntimeAllocManySizeClasses(t *testing.T) {
	a := strffi.NewRuntimeAllocSized(1 << 8)
	defer a.Destroy()

	for _, n := range []int{0, 1, 7, 64, 1000} {
		units := make([]strffi.MbUnit, n)
		for i := range units {
			units[i] = strffi.MbUnit{V: 'a'}
		}
		o, err := strffi.NewOwnedFromUnits[strffi.Slice[strffi.MbUnit], strffi.Mb](units, a)
		assert.NoError(t, err)
		assert.Equal(t, units, o.Borrow().Units())
		o.Destroy()
	}
}
