//go:build windows

// Package platform wraps the host C runtime's locale-dependent multibyte
// conversion functions. On Windows, wchar_t is natively UTF-16 and the
// Mb/Wide encodings are not exposed through mbrtowc/wcrtomb in this
// library; MbrToWc and WcrToMb report every input as illegal, so the
// transcode package's Mb<->Wide transcoders fail with InvalidAt at the
// first unit.
package platform

// MbLenMax mirrors the Unix build's constant so callers can size buffers
// uniformly regardless of platform.
const MbLenMax = 16

// HostWideIsUTF32 is always false on Windows: wchar_t is UTF-16.
func HostWideIsUTF32() bool { return false }

// MbState is unused on Windows; it exists so transcode package types that
// embed it compile on every platform.
type MbState struct{}

func MbrToWc(buf []byte, st *MbState) (wc int32, consumed int, ok bool, incomplete bool) {
	return 0, 0, false, false
}

func WcrToMb(buf []byte, wc int32, st *MbState) (written int, ok bool) {
	return 0, false
}
