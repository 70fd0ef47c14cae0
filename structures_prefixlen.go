package strffi

import "unsafe"

// PrefixLen stores the unit count as a machine word immediately before the
// data, the way original_source's commented-out Prefix structure does
// (original_source/src/structure/mod.rs Prefix — spec.md §9 Open Question,
// resolved here: implemented rather than dropped, since it is a real,
// useful layout for owned-only strings that never cross an FFI boundary as
// a pointer needing length recovery by scanning). BorrowPtr treats ptr as
// pointing at the first data unit, exactly like ZeroTerm, but recovers
// length from the word at ptr-wordSize instead of scanning.
type PrefixLen[U Unit] struct{}

func (PrefixLen[U]) Name() string { return "P" }

func (PrefixLen[U]) knownLength() {}

// mutationSafe: the length word lives at ptr-wordSize, separate from the
// data region BorrowPtr returns, so writing into the data in place never
// touches the recorded length.
func (PrefixLen[U]) mutationSafe() {}

var _ PointerStructure[MbUnit] = PrefixLen[MbUnit]{}

const prefixWordSize = unsafe.Sizeof(uintptr(0))

// BorrowPtr reads the length word immediately preceding ptr.
func (PrefixLen[U]) BorrowPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	if ptr == nil {
		return nil, 0, false
	}
	lenPtr := (*uintptr)(unsafe.Add(ptr, -int(prefixWordSize)))
	return ptr, int(*lenPtr), true
}

// Alloc lays out [length word][data units], returning a pointer to the
// first data unit so BorrowPtr's contract (ptr == data start) holds.
func (PrefixLen[U]) Alloc(a Allocator, units []U) (unsafe.Pointer, int, error) {
	usz := unitSize[U]()
	if _, err := checkedMulAdd(len(units), 0, usz); err != nil {
		return nil, 0, err
	}
	totalBytes := int(prefixWordSize) + len(units)*int(usz)
	if totalBytes < int(prefixWordSize) {
		return nil, 0, ErrSizeOverflow
	}
	align := int(prefixWordSize)
	if int(usz) > align {
		align = int(usz)
	}
	base, err := a.AllocBytes(totalBytes, align)
	if err != nil {
		return nil, 0, err
	}
	*(*uintptr)(base) = uintptr(len(units))
	dataPtr := unsafe.Add(base, prefixWordSize)
	dst := unsafe.Slice((*U)(dataPtr), len(units))
	copy(dst, units)
	return dataPtr, len(units), nil
}

func (PrefixLen[U]) Free(a Allocator, ptr unsafe.Pointer, length int) {
	base := unsafe.Add(ptr, -int(prefixWordSize))
	align := int(prefixWordSize)
	if usz := unitSize[U](); int(usz) > align {
		align = int(usz)
	}
	a.Free(base, align)
}

var _ OwnershipTransfer[MbUnit] = PrefixLen[MbUnit]{}

// IntoForeignOwnedPtr hands the data pointer to foreign code verbatim: the
// length word sits immediately behind it, so no repackaging is needed.
func (PrefixLen[U]) IntoForeignOwnedPtr(ptr unsafe.Pointer, length int) unsafe.Pointer {
	return ptr
}

// FromForeignOwnedPtr reclaims a PrefixLen allocation, recovering length
// exactly as BorrowPtr does.
func (p PrefixLen[U]) FromForeignOwnedPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	return p.BorrowPtr(ptr)
}
