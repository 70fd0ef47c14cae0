//go:build windows

package strffi

/*
#include <windows.h>
#include <oleauto.h>

#cgo LDFLAGS: -loleaut32
*/
import "C"

import "unsafe"

// WsaAlloc is the Windows SysAllocString family: the only allocator the
// Bstr structure is compatible with (spec.md §6). SysAllocStringByteLen
// writes the 4-byte byte-length prefix and appends the wide NUL terminator
// itself, so Bstr.Alloc just hands it the raw bytes.
type WsaAlloc struct{}

func (*WsaAlloc) Name() string { return "Wsa" }

// AllocBytes exists to satisfy the Allocator interface uniformly, but Bstr
// never calls it directly — see allocBstr, which goes through
// SysAllocStringByteLen so the BSTR length prefix and terminator are laid
// out exactly as the Windows runtime expects.
func (*WsaAlloc) AllocBytes(size, align int) (unsafe.Pointer, error) {
	return nil, ErrUnsupported
}

func (*WsaAlloc) Free(ptr unsafe.Pointer, align int) {}

func (*WsaAlloc) allocBstr(units []byte) (unsafe.Pointer, int, error) {
	var src unsafe.Pointer
	if len(units) > 0 {
		src = unsafe.Pointer(&units[0])
	}
	bstr := C.SysAllocStringByteLen((*C.char)(src), C.uint(len(units)))
	if bstr == nil {
		return nil, 0, ErrAllocFailed
	}
	return unsafe.Pointer(bstr), len(units), nil
}

func (*WsaAlloc) freeBstr(ptr unsafe.Pointer) {
	C.SysFreeString((C.BSTR)(ptr))
}
