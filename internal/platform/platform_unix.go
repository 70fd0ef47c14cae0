//go:build !windows

// Package platform wraps the host C runtime's locale-dependent multibyte
// conversion functions (mbrtowc/wcrtomb), grounded directly on
// original_source/src/ffi.rs's extern "C" declarations of the same
// functions and its per-arch mbstate_t layout.
package platform

/*
#include <wchar.h>
#include <stdlib.h>

static size_t mbrtowc_shim(wchar_t *dest, const char *src, size_t n, mbstate_t *ps) {
	return mbrtowc(dest, src, n, ps);
}

static size_t wcrtomb_shim(char *dest, wchar_t src, mbstate_t *ps) {
	return wcrtomb(dest, src, ps);
}
*/
import "C"

import "unsafe"

// MbLenMax bounds the number of multibyte units a single wide character can
// require to encode, mirroring original_source's MB_LEN_MAX constant. 16 is
// a generous upper bound — no serious multibyte encoding used as a C
// locale's MB encoding needs more than 12.
const MbLenMax = 16

// HostWideIsUTF32 reports whether wchar_t on this platform is 4 bytes wide
// (true on Linux/glibc and most other Unix-likes, false on Windows where
// wchar_t is UTF-16). The Wide<->Unicode transcoders use this to choose
// between scalar-range validation and surrogate-pair decoding without a
// second build-tag fork of the public transcode API.
func HostWideIsUTF32() bool {
	return C.sizeof_wchar_t == 4
}

const mbstateSize = C.sizeof_mbstate_t

// MbState is an opaque, zero-valued mbstate_t carried across a sequence of
// MbrToWc/WcrToMb calls by MbToWide/WideToMb (transcode package); it
// must be zeroed at the start of a new string, exactly as
// original_source's MbsToWcIter2::new does with mem::zeroed().
type MbState struct {
	_ [mbstateSize]byte
}

const (
	mbrtowcIllegal    = ^uintptr(0)     // (size_t)-1
	mbrtowcIncomplete = ^uintptr(0) - 1 // (size_t)-2
)

// MbrToWc wraps mbrtowc: attempts to decode one wide character from buf
// (which holds buf[:n] valid multibyte bytes so far) using and updating
// st. Returns the decoded wide character and how many bytes of buf it
// consumed, or ok=false with incomplete=true if buf needs more bytes
// appended before retrying, or ok=false with incomplete=false if buf holds
// an illegal multibyte sequence.
func MbrToWc(buf []byte, st *MbState) (wc int32, consumed int, ok bool, incomplete bool) {
	if len(buf) == 0 {
		return 0, 0, false, true
	}
	var dest C.wchar_t
	r := C.mbrtowc_shim(&dest, (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)), (*C.mbstate_t)(unsafe.Pointer(st)))
	switch uintptr(r) {
	case mbrtowcIllegal:
		return 0, 0, false, false
	case mbrtowcIncomplete:
		return 0, 0, false, true
	default:
		return int32(dest), int(r), true, false
	}
}

// WcrToMb wraps wcrtomb: encodes one wide character wc into buf (which must
// have capacity MbLenMax), updating st. Returns the number of bytes
// written, or ok=false if wc is not representable in the current locale.
func WcrToMb(buf []byte, wc int32, st *MbState) (written int, ok bool) {
	r := C.wcrtomb_shim((*C.char)(unsafe.Pointer(&buf[0])), C.wchar_t(wc), (*C.mbstate_t)(unsafe.Pointer(st)))
	if uintptr(r) == mbrtowcIllegal {
		return 0, false
	}
	return int(r), true
}
