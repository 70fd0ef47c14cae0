package strffi

import "unsafe"

// Bstr is the Windows BSTR layout: a 4-byte byte-length prefix immediately
// before the data, followed by the data, followed by a terminating zero
// unit — and, per spec.md §3/§6, only ever valid paired with WsaAlloc,
// since SysAllocString/SysFreeString are the only functions that know how
// to produce and release this exact layout. Alloc/Free both type-assert
// the Allocator argument is a *WsaAlloc; otherwise Alloc returns
// ErrUnsupported and Free does nothing, which is how this library enforces the structure/allocator pairing that
// spec.md's StructureAlloc<E,A> associated type enforces at compile time in
// Rust.
type Bstr[U Unit] struct{}

func (Bstr[U]) Name() string { return "Bstr" }

func (Bstr[U]) knownLength() {}

var _ OwnershipTransfer[MbUnit] = Bstr[MbUnit]{}

// BorrowPtr reads the 4-byte length-in-bytes prefix immediately before ptr.
func (Bstr[U]) BorrowPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	if ptr == nil {
		return nil, 0, false
	}
	lenPtr := (*uint32)(unsafe.Add(ptr, -4))
	byteLen := int(*lenPtr)
	return ptr, byteLen / int(unitSize[U]()), true
}

func (Bstr[U]) UnitsWithTerminator(ptr unsafe.Pointer, length int) []U {
	return unsafe.Slice((*U)(ptr), length+1)
}

func (Bstr[U]) Alloc(a Allocator, units []U) (unsafe.Pointer, int, error) {
	wsa, ok := a.(*WsaAlloc)
	if !ok {
		return nil, 0, ErrUnsupported
	}
	usz := unitSize[U]()
	byteLen := int(uintptr(len(units)) * usz)
	var raw []byte
	if byteLen > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&units[0])), byteLen)
	}
	ptr, _, err := wsa.allocBstr(raw)
	if err != nil {
		return nil, 0, err
	}
	return ptr, len(units), nil
}

func (Bstr[U]) Free(a Allocator, ptr unsafe.Pointer, length int) {
	wsa, ok := a.(*WsaAlloc)
	if !ok {
		return
	}
	wsa.freeBstr(ptr)
}

// IntoForeignOwnedPtr hands the BSTR pointer to foreign code verbatim: a
// BSTR's self-describing length prefix means no repackaging is needed.
func (Bstr[U]) IntoForeignOwnedPtr(ptr unsafe.Pointer, length int) unsafe.Pointer {
	return ptr
}

// FromForeignOwnedPtr reclaims a BSTR produced by foreign code, recovering
// length from its length prefix exactly like BorrowPtr.
func (b Bstr[U]) FromForeignOwnedPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	return b.BorrowPtr(ptr)
}
