package transcode

import (
	"fmt"

	"github.com/fmstephe/strffi"
	"github.com/fmstephe/strffi/internal/platform"
)

// MbToWide transcodes Mb (the host C runtime's locale-dependent multibyte
// encoding) to Wide via mbrtowc, pulling one more source byte at a time
// into an internal buffer until mbrtowc reports a complete wide character,
// an illegal sequence, or the source runs out mid-character
// (original_source/src/encoding/conv/mb_x_wc.rs MbsToWcIter2). Mirrors the
// Rust implementation's own MB_LEN_MAX-bounded buffer and OutOfBufferAt
// error for characters that would need more than platform.MbLenMax bytes.
type MbToWide struct {
	fused
	src   []strffi.MbUnit
	pos   int // next unread index into src
	start int // index where the in-progress character began
	state platform.MbState
}

func NewMbToWide(src []strffi.MbUnit) *MbToWide {
	return &MbToWide{src: src}
}

func (t *MbToWide) Next() (strffi.WideUnit, strffi.TranscodeError, bool) {
	if t.shouldStop() {
		return strffi.WideUnit{}, nil, false
	}
	if t.pos >= len(t.src) {
		return strffi.WideUnit{}, nil, false
	}

	t.start = t.pos
	var buf []byte
	for {
		if len(buf) >= platform.MbLenMax {
			t.stop()
			return strffi.WideUnit{}, strffi.OutOfBufferAt{At: t.start}, false
		}
		if t.pos >= len(t.src) {
			if len(buf) == 0 {
				return strffi.WideUnit{}, nil, false
			}
			t.stop()
			return strffi.WideUnit{}, strffi.Incomplete{At: t.start}, false
		}
		buf = append(buf, t.src[t.pos].V)
		t.pos++

		wc, consumed, ok, incomplete := platform.MbrToWc(buf, &t.state)
		if !ok {
			if incomplete {
				continue
			}
			t.stop()
			return strffi.WideUnit{}, strffi.InvalidAt{At: t.start}, false
		}
		_ = consumed
		return strffi.WideUnit{V: wc}, nil, true
	}
}

// WideToMb transcodes Wide to Mb via wcrtomb, buffering the (up to
// platform.MbLenMax) multibyte bytes a single wide character expands to and
// draining them one at a time (original_source's WcsToMbIter).
type WideToMb struct {
	fused
	src    []strffi.WideUnit
	at     int
	buf    [16]byte // platform.MbLenMax
	bufAt  int
	bufLen int
	state  platform.MbState
}

func NewWideToMb(src []strffi.WideUnit) *WideToMb {
	return &WideToMb{src: src}
}

func (t *WideToMb) Next() (strffi.MbUnit, strffi.TranscodeError, bool) {
	if t.bufAt < t.bufLen {
		u := strffi.MbUnit{V: t.buf[t.bufAt]}
		t.bufAt++
		return u, nil, true
	}
	if t.shouldStop() || t.at >= len(t.src) {
		return strffi.MbUnit{}, nil, false
	}

	t.bufAt, t.bufLen = 0, 0
	wc := t.src[t.at].V
	written, ok := platform.WcrToMb(t.buf[:], wc, &t.state)
	if !ok {
		t.stop()
		return strffi.MbUnit{}, strffi.InvalidAt{At: t.at}, false
	}
	t.at++
	t.bufLen = written
	if written == 0 {
		// wcrtomb reporting success with zero bytes written is not a valid
		// end-of-input signal; every wide character expands to at least one
		// multibyte byte. Surface it as the platform-shim bug it is rather
		// than let it masquerade as normal end of input.
		panic(fmt.Errorf("wcrtomb reported success with zero bytes written for wide unit %v", wc))
	}
	u := strffi.MbUnit{V: t.buf[0]}
	t.bufAt = 1
	return u, nil, true
}
