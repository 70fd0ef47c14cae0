package transcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmstephe/strffi"
	"github.com/fmstephe/strffi/transcode"
)

func wideUnits(vs ...int32) []strffi.WideUnit {
	units := make([]strffi.WideUnit, len(vs))
	for i, v := range vs {
		units[i] = strffi.WideUnit{V: v}
	}
	return units
}

func drain(t *testing.T, next func() (strffi.UnicodeUnit, strffi.TranscodeError, bool)) ([]rune, strffi.TranscodeError) {
	t.Helper()
	var out []rune
	for {
		u, err, more := next()
		if err != nil {
			return out, err
		}
		if !more {
			return out, nil
		}
		out = append(out, u.Rune())
	}
}

// Linux/UTF-8, wide source scenario (spec.md §8): WORD = "gªrçon".
func TestWideUtf32ToUnicodeWord(t *testing.T) {
	src := wideUnits(0x67, 0xAA, 0x72, 0xE7, 0x6F, 0x6E)
	tc := transcode.NewWideUtf32ToUnicode(src)
	out, err := drain(t, tc.Next)
	assert.NoError(t, err)
	assert.Equal(t, []rune("gªrçon"), out)
}

func TestWideUtf32ToUnicodeRejectsSurrogate(t *testing.T) {
	src := wideUnits(0x67, 0xD800)
	tc := transcode.NewWideUtf32ToUnicode(src)
	_, err := drain(t, tc.Next)
	assert.Error(t, err)
	assert.Equal(t, 1, err.Offset())

	// Universal property 7: fused after the first error.
	_, terr, more := tc.Next()
	assert.Nil(t, terr)
	assert.False(t, more)
}

// Scalar values above the surrogate gap but still within the codespace are
// legal (spec.md §4.6's valid range is [0x0,0xD7FF]∪[0xE000,0x10FFFF]).
func TestWideUtf32ToUnicodeAcceptsSupplementaryPlane(t *testing.T) {
	src := wideUnits(0x040000)
	tc := transcode.NewWideUtf32ToUnicode(src)
	out, err := drain(t, tc.Next)
	assert.NoError(t, err)
	assert.Equal(t, []rune{0x040000}, out)
}

func TestWideUtf32ToUnicodeRejectsOutOfCodespace(t *testing.T) {
	src := wideUnits(0x67, 0x110000)
	tc := transcode.NewWideUtf32ToUnicode(src)
	_, err := drain(t, tc.Next)
	assert.Error(t, err)
	assert.Equal(t, 1, err.Offset())
}

// UTF-16 surrogate decoding scenario (spec.md §8).
func TestWideUtf16ToUnicodeSurrogatePair(t *testing.T) {
	src := wideUnits(0xD83D, 0xDE00)
	tc := transcode.NewWideUtf16ToUnicode(src)
	out, err := drain(t, tc.Next)
	assert.NoError(t, err)
	assert.Equal(t, []rune{0x1F600}, out)
}

func TestWideUtf16ToUnicodeLoneLowSurrogate(t *testing.T) {
	src := wideUnits(0xDE00)
	tc := transcode.NewWideUtf16ToUnicode(src)
	_, err := drain(t, tc.Next)
	assert.Error(t, err)
	assert.Equal(t, 0, err.Offset())
	assert.IsType(t, strffi.InvalidAt{}, err)
}

func TestWideUtf16ToUnicodeIncompleteHighSurrogate(t *testing.T) {
	src := wideUnits(0xD83D)
	tc := transcode.NewWideUtf16ToUnicode(src)
	_, err := drain(t, tc.Next)
	assert.Error(t, err)
	assert.IsType(t, strffi.Incomplete{}, err)
}

func TestUnicodeToWideUtf16EncodesSurrogatePair(t *testing.T) {
	u, _ := strffi.NewUnicodeUnit(0x1F600)
	tc := transcode.NewUnicodeToWideUtf16([]strffi.UnicodeUnit{u})

	var out []int32
	for {
		w, err, more := tc.Next()
		assert.Nil(t, err)
		if !more {
			break
		}
		out = append(out, w.V)
	}
	assert.Equal(t, []int32{0xD83D, 0xDE00}, out)
}
