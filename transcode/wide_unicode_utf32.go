package transcode

import "github.com/fmstephe/strffi"

// WideUtf32ToUnicode transcodes Wide units on a UTF-32 host (HostWideIsUTF32
// true) to Unicode, validating each value is a legal Unicode scalar: not a
// surrogate, and not beyond the codespace. The first invalid unit fuses the
// transcoder.
type WideUtf32ToUnicode struct {
	fused
	src []strffi.WideUnit
	at  int
}

func NewWideUtf32ToUnicode(src []strffi.WideUnit) *WideUtf32ToUnicode {
	return &WideUtf32ToUnicode{src: src}
}

func (t *WideUtf32ToUnicode) Next() (strffi.UnicodeUnit, strffi.TranscodeError, bool) {
	if t.shouldStop() || t.at >= len(t.src) {
		return strffi.UnicodeUnit{}, nil, false
	}
	cp := uint32(t.src[t.at].V)
	u, ok := strffi.NewUnicodeUnit(rune(cp))
	if !ok {
		t.stop()
		return strffi.UnicodeUnit{}, strffi.InvalidAt{At: t.at}, false
	}
	t.at++
	return u, nil, true
}

// UnicodeToWideUtf32 transcodes Unicode to Wide on a UTF-32 host: every
// Unicode scalar value is already a valid Wide unit on such a host, so this
// is a pure reinterpretation with no failure mode.
type UnicodeToWideUtf32 struct {
	src []strffi.UnicodeUnit
	at  int
}

func NewUnicodeToWideUtf32(src []strffi.UnicodeUnit) *UnicodeToWideUtf32 {
	return &UnicodeToWideUtf32{src: src}
}

func (t *UnicodeToWideUtf32) Next() (strffi.WideUnit, strffi.TranscodeError, bool) {
	if t.at >= len(t.src) {
		return strffi.WideUnit{}, nil, false
	}
	u := strffi.WideUnit{V: int32(t.src[t.at].Rune())}
	t.at++
	return u, nil, true
}
