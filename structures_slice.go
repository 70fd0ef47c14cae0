package strffi

import "unsafe"

// Slice is a pointer+length structure with no terminator and no embedded
// length word: the FFI shape is exactly (ptr, len), the way Rust's own
// &[T]/Vec<T> cross a boundary that already carries a length parameter
// (original_source/src/structure/mod.rs Slice). The most permissive
// structure: any unit value, including zero units, anywhere in the data is
// valid content.
type Slice[U Unit] struct{}

func (Slice[U]) Name() string { return "S" }

func (Slice[U]) knownLength()  {}
func (Slice[U]) mutationSafe() {}

var _ SliceStructure[MbUnit] = Slice[MbUnit]{}

// BorrowSlice validates nothing beyond ptr being non-null; (ptr, length) is
// trusted verbatim, exactly as Rust's own Slice::borrow_from_ffi_ptr does.
func (Slice[U]) BorrowSlice(ptr unsafe.Pointer, length int) (unsafe.Pointer, int, bool) {
	if ptr == nil {
		return nil, 0, false
	}
	return ptr, length, true
}

func (Slice[U]) Alloc(a Allocator, units []U) (unsafe.Pointer, int, error) {
	usz := unitSize[U]()
	totalUnits, err := checkedMulAdd(len(units), 0, usz)
	if err != nil {
		return nil, 0, err
	}
	totalBytes := int(uintptr(totalUnits) * usz)
	ptr, err := a.AllocBytes(totalBytes, int(usz))
	if err != nil {
		return nil, 0, err
	}
	if totalUnits > 0 {
		dst := unsafe.Slice((*U)(ptr), totalUnits)
		copy(dst, units)
	}
	return ptr, totalUnits, nil
}

func (Slice[U]) Free(a Allocator, ptr unsafe.Pointer, length int) {
	a.Free(ptr, int(unitSize[U]()))
}

func (s Slice[U]) Default(e Encoding[U]) (unsafe.Pointer, int) {
	zu := e.ZeroUnits()
	return unsafe.Pointer(&zu[0]), 0
}

var _ OwnershipTransferSlice[MbUnit] = Slice[MbUnit]{}

// IntoForeignOwnedSlice hands (ptr, length) to foreign code verbatim.
func (Slice[U]) IntoForeignOwnedSlice(ptr unsafe.Pointer, length int) (unsafe.Pointer, int) {
	return ptr, length
}

// FromForeignOwnedSlice reclaims a Slice allocation foreign code produced;
// (ptr, length) is trusted verbatim exactly as BorrowSlice does.
func (s Slice[U]) FromForeignOwnedSlice(ptr unsafe.Pointer, length int) (unsafe.Pointer, int, bool) {
	return s.BorrowSlice(ptr, length)
}
