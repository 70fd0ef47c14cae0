//go:build !windows

package strffi

import "unsafe"

// WsaAlloc is only meaningful on Windows; off Windows every operation
// reports ErrUnsupported so Bstr-typed code still compiles and links
// everywhere, it simply cannot be used to allocate off-platform.
type WsaAlloc struct{}

func (*WsaAlloc) Name() string { return "Wsa" }

func (*WsaAlloc) AllocBytes(size, align int) (unsafe.Pointer, error) {
	return nil, ErrUnsupported
}

func (*WsaAlloc) Free(ptr unsafe.Pointer, align int) {}

func (*WsaAlloc) allocBstr(raw []byte) (unsafe.Pointer, int, error) {
	return nil, 0, ErrUnsupported
}

func (*WsaAlloc) freeBstr(ptr unsafe.Pointer) {}
