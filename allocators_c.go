package strffi

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import "unsafe"

// CAlloc hands every allocation straight to the host C runtime's
// malloc/free, the allocator real FFI boundaries almost always expect on
// the other side (grounded on jyafn-go's own C.free(ptr) idiom for
// foreign-owned buffers, and on original_source/src/ffi.rs's extern "C"
// declarations of the host runtime's own functions). CAlloc cannot detect
// double-free or use-after-free; that is the C runtime's job once a
// pointer has left this library, exactly as it would be in a C program.
type CAlloc struct{}

func (CAlloc) Name() string { return "C" }

// AllocBytes calls C.malloc and zero-fills the result; align beyond the
// platform malloc guarantee (2*sizeof(void*) on most Unix-likes) is
// rejected with ErrCannotAlign rather than silently under-aligning.
func (CAlloc) AllocBytes(size, align int) (unsafe.Pointer, error) {
	const mallocAlign = 2 * 8 // matches malloc's guarantee on LP64 glibc/musl/macOS
	if align > mallocAlign {
		return nil, ErrCannotAlign
	}
	if size == 0 {
		size = 1
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil, ErrAllocFailed
	}
	C.memset(ptr, 0, C.size_t(size))
	return ptr, nil
}

func (CAlloc) Free(ptr unsafe.Pointer, align int) {
	C.free(ptr)
}
