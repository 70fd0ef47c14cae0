package transcode

import (
	"github.com/fmstephe/strffi"
	"github.com/fmstephe/strffi/internal/platform"
)

// MbToUnicode transcodes Mb directly to Unicode by composing MbToWide with
// whichever Wide->Unicode transcoder matches the host's wchar_t width,
// exactly the way original_source/src/encoding/conv/mb_x_wc.rs composes
// MbsToWcIter2 with WcToUniIter2 and unifies both stages' errors into one
// MbsToUniError. Go has no std::iter::Map-of-iterators chain to lean on, so
// the composition is written directly: pull one Wide unit from the
// embedded MbToWide, then run it, and only it, through the matching
// Wide->Unicode single-step decoder.
type MbToUnicode struct {
	fused
	mb      *MbToWide
	isUtf32 bool
}

func NewMbToUnicode(src []strffi.MbUnit) *MbToUnicode {
	return &MbToUnicode{
		mb:      NewMbToWide(src),
		isUtf32: platform.HostWideIsUTF32(),
	}
}

func (t *MbToUnicode) Next() (strffi.UnicodeUnit, strffi.TranscodeError, bool) {
	if t.shouldStop() {
		return strffi.UnicodeUnit{}, nil, false
	}

	hi, terr, more := t.mb.Next()
	if terr != nil {
		t.stop()
		return strffi.UnicodeUnit{}, terr, false
	}
	if !more {
		return strffi.UnicodeUnit{}, nil, false
	}
	hiStart := t.mb.start

	if t.isUtf32 {
		u, ok := strffi.NewUnicodeUnit(rune(hi.V))
		if !ok {
			t.stop()
			return strffi.UnicodeUnit{}, strffi.InvalidAt{At: hiStart}, false
		}
		return u, nil, true
	}

	cu0 := uint16(hi.V)
	if cu0 <= 0xd7ff || (cu0 >= 0xe000 && cu0 <= 0xffff) {
		u, _ := strffi.NewUnicodeUnit(rune(cu0))
		return u, nil, true
	}
	if cu0 >= 0xdc00 && cu0 <= 0xdfff {
		t.stop()
		return strffi.UnicodeUnit{}, strffi.InvalidAt{At: hiStart}, false
	}

	// High surrogate: pull one more Mb-decoded Wide unit to complete the pair.
	lo, terr, more := t.mb.Next()
	if terr != nil {
		t.stop()
		return strffi.UnicodeUnit{}, terr, false
	}
	if !more {
		t.stop()
		return strffi.UnicodeUnit{}, strffi.Incomplete{At: hiStart}, false
	}
	cu1 := uint16(lo.V)
	if cu1 < 0xdc00 || cu1 > 0xdfff {
		t.stop()
		return strffi.UnicodeUnit{}, strffi.InvalidAt{At: hiStart}, false
	}
	h := uint32(cu0 & 0x3ff)
	l := uint32(cu1 & 0x3ff)
	cp := 0x10000 + (h<<10 | l)
	u, _ := strffi.NewUnicodeUnit(rune(cp))
	return u, nil, true
}
