package strffi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmstephe/strffi"
	"github.com/fmstephe/strffi/transcode"
)

func asciiToRune(u strffi.MbUnit) (rune, bool, int) {
	if u.V >= 0x80 {
		return 0, false, 1
	}
	return rune(u.V), true, 1
}

// Universal property 1: round trip through a host string for ASCII-clean
// content.
func TestIntoHostStringRoundTrip(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('h', 'e', 'l', 'l', 'o')
	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	assert.Equal(t, "hello", o.Borrow().IntoHostString(asciiToRune))
}

func TestIntoHostStringReplacesInvalid(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('h', 0xFF, 'i')
	o, err := strffi.NewOwnedFromUnits[strffi.Slice[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	assert.Equal(t, "h�i", o.Borrow().IntoHostString(asciiToRune))
}

// TranscodeTo drains a lazily-constructed Transcoder into a fresh OwnedStr
// of a different structure/encoding.
func TestTranscodeToWideUtf32ToUnicode(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	wide := []strffi.WideUnit{{V: 'g'}, {V: 0xAA}, {V: 'r'}, {V: 0xE7}, {V: 'o'}, {V: 'n'}}
	tc := transcode.NewWideUtf32ToUnicode(wide)

	o, err := strffi.TranscodeTo[strffi.Slice[strffi.UnicodeUnit], strffi.Unicode, strffi.UnicodeUnit](tc, a)
	assert.NoError(t, err)
	defer o.Destroy()

	units := o.Borrow().Units()
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = u.Rune()
	}
	assert.Equal(t, []rune("gªrçon"), runes)
}

func TestTranscodeToPropagatesFusedError(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	wide := []strffi.WideUnit{{V: 'g'}, {V: 0xD800}}
	tc := transcode.NewWideUtf32ToUnicode(wide)

	_, err := strffi.TranscodeTo[strffi.Slice[strffi.UnicodeUnit], strffi.Unicode, strffi.UnicodeUnit](tc, a)
	assert.Error(t, err)
}

// Universal property 4: the terminator invariant. The data units a
// ZeroTerm structure reports never include the terminator itself, but
// UnitsWithTerminator's prefix up to it equals Units() exactly.
func TestZeroTermTerminatorInvariant(t *testing.T) {
	a := strffi.NewRuntimeAlloc()
	defer a.Destroy()

	units := mbUnits('a', 'b', 'c')
	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, a)
	assert.NoError(t, err)
	defer o.Destroy()

	withTerm := strffi.UnitsWithTerminator[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](o.Borrow())
	assert.Equal(t, units, withTerm[:len(withTerm)-1])
	assert.True(t, withTerm[len(withTerm)-1].IsZero())
}
