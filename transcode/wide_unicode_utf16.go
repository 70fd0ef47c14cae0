package transcode

import "github.com/fmstephe/strffi"

// WideUtf16ToUnicode transcodes Wide units on a UTF-16 host (HostWideIsUTF32
// false, e.g. Windows) to Unicode, decoding surrogate pairs
// (original_source/src/encoding/conv/windows.rs WcToUniIter2). A lone low
// surrogate is InvalidAt; a lone high surrogate at end of input is
// Incomplete; a high surrogate not followed by a low surrogate is
// InvalidAt.
type WideUtf16ToUnicode struct {
	fused
	src []strffi.WideUnit
	at  int
}

func NewWideUtf16ToUnicode(src []strffi.WideUnit) *WideUtf16ToUnicode {
	return &WideUtf16ToUnicode{src: src}
}

func (t *WideUtf16ToUnicode) Next() (strffi.UnicodeUnit, strffi.TranscodeError, bool) {
	if t.shouldStop() || t.at >= len(t.src) {
		return strffi.UnicodeUnit{}, nil, false
	}
	cu0 := uint16(t.src[t.at].V)

	switch {
	case cu0 <= 0xd7ff || (cu0 >= 0xe000 && cu0 <= 0xffff):
		t.at++
		u, _ := strffi.NewUnicodeUnit(rune(cu0))
		return u, nil, true

	case cu0 >= 0xdc00 && cu0 <= 0xdfff:
		t.stop()
		return strffi.UnicodeUnit{}, strffi.InvalidAt{At: t.at}, false

	default: // 0xd800..=0xdbff: high surrogate, needs a following low surrogate
		if t.at+1 >= len(t.src) {
			t.stop()
			return strffi.UnicodeUnit{}, strffi.Incomplete{At: t.at}, false
		}
		cu1 := uint16(t.src[t.at+1].V)
		if cu1 < 0xdc00 || cu1 > 0xdfff {
			t.stop()
			return strffi.UnicodeUnit{}, strffi.InvalidAt{At: t.at}, false
		}
		hi := uint32(cu0 & 0x3ff)
		lo := uint32(cu1 & 0x3ff)
		cp := 0x10000 + (hi<<10 | lo)
		t.at += 2
		u, _ := strffi.NewUnicodeUnit(rune(cp))
		return u, nil, true
	}
}

// UnicodeToWideUtf16 transcodes Unicode to Wide on a UTF-16 host, encoding
// scalars above the BMP as surrogate pairs.
type UnicodeToWideUtf16 struct {
	src     []strffi.UnicodeUnit
	at      int
	pending strffi.WideUnit
	hasLow  bool
}

func NewUnicodeToWideUtf16(src []strffi.UnicodeUnit) *UnicodeToWideUtf16 {
	return &UnicodeToWideUtf16{src: src}
}

func (t *UnicodeToWideUtf16) Next() (strffi.WideUnit, strffi.TranscodeError, bool) {
	if t.hasLow {
		t.hasLow = false
		return t.pending, nil, true
	}
	if t.at >= len(t.src) {
		return strffi.WideUnit{}, nil, false
	}
	cp := uint32(t.src[t.at].Rune())
	t.at++
	if cp <= 0xffff {
		return strffi.WideUnit{V: int32(cp)}, nil, true
	}
	cp -= 0x10000
	hi := uint16(0xd800 + (cp >> 10))
	lo := uint16(0xdc00 + (cp & 0x3ff))
	t.pending = strffi.WideUnit{V: int32(lo)}
	t.hasLow = true
	return strffi.WideUnit{V: int32(hi)}, nil, true
}
