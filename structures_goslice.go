package strffi

import "unsafe"

// GoSlice is Slice's pointer-plus-length FFI shape reinterpreted as a
// literal two-word Go header {Data unsafe.Pointer; Len int}, matching the
// layout cgo tools generate for passing []byte/string across a boundary
// without a runtime.SliceHeader/StringHeader dependency (grounded on the
// field-by-field header copy idiom used throughout flib's funsafe helpers
// and xunsafe.ToString's StringHeader reassignment). GoSlice's borrow and
// ownership-transfer methods take and return the same two scalars
// (pointer, length) as Slice's; the unexported header method packs them as
// a goSliceHeader value, and nothing in this package calls it.
type GoSlice[U Unit] struct{}

type goSliceHeader struct {
	Data unsafe.Pointer
	Len  int
}

func (GoSlice[U]) Name() string { return "Go" }

func (GoSlice[U]) knownLength()  {}
func (GoSlice[U]) mutationSafe() {}

var _ SliceStructure[MbUnit] = GoSlice[MbUnit]{}

// BorrowSlice is handed the already-unpacked (ptr, length) of a
// goSliceHeader by the caller, symmetrical with Slice.BorrowSlice.
func (GoSlice[U]) BorrowSlice(ptr unsafe.Pointer, length int) (unsafe.Pointer, int, bool) {
	if ptr == nil {
		return nil, 0, false
	}
	return ptr, length, true
}

func (GoSlice[U]) Alloc(a Allocator, units []U) (unsafe.Pointer, int, error) {
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

func (GoSlice[U]) Free(a Allocator, ptr unsafe.Pointer, length int) {
	a.Free(ptr, int(unitSize[U]()))
}

func (s GoSlice[U]) Default(e Encoding[U]) (unsafe.Pointer, int) {
	zu := e.ZeroUnits()
	return unsafe.Pointer(&zu[0]), 0
}

// header packs (ptr, length) as a goSliceHeader value for callers whose FFI
// boundary expects a single struct argument instead of two scalars.
func (GoSlice[U]) header(ptr unsafe.Pointer, length int) goSliceHeader {
	return goSliceHeader{Data: ptr, Len: length}
}

var _ OwnershipTransferSlice[MbUnit] = GoSlice[MbUnit]{}

// IntoForeignOwnedSlice hands (ptr, length) to foreign code verbatim.
func (GoSlice[U]) IntoForeignOwnedSlice(ptr unsafe.Pointer, length int) (unsafe.Pointer, int) {
	return ptr, length
}

// FromForeignOwnedSlice reclaims a GoSlice allocation foreign code produced.
func (s GoSlice[U]) FromForeignOwnedSlice(ptr unsafe.Pointer, length int) (unsafe.Pointer, int, bool) {
	return s.BorrowSlice(ptr, length)
}
