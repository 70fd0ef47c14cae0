package strffi

import "unsafe"

// DoubleZeroTerm is a structure terminated by two consecutive zero units,
// the layout used by Windows multi-string (REG_MULTI_SZ-style) APIs where
// embedded single zero units separate substrings and only a run of two
// marks the real end. BorrowPtr treats the whole double-terminated span
// as one opaque string; it does not split embedded substrings (spec.md
// Non-goals: no rewriting/reinterpretation of foreign data). Alloc, by
// contrast, rejects any zero unit before the terminating pair with
// ErrInvalidContents, so strings it builds contain no embedded separators.
type DoubleZeroTerm[U Unit] struct{}

func (DoubleZeroTerm[U]) Name() string { return "Zz" }

var _ PointerStructure[MbUnit] = DoubleZeroTerm[MbUnit]{}

// BorrowPtr scans forward from ptr for the first zero-unit pair.
func (DoubleZeroTerm[U]) BorrowPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	if ptr == nil {
		return nil, 0, false
	}
	usz := unitSize[U]()
	length := 0
	for {
		u := *(*U)(unsafe.Add(ptr, uintptr(length)*usz))
		if u.IsZero() {
			next := *(*U)(unsafe.Add(ptr, uintptr(length+1)*usz))
			if next.IsZero() {
				break
			}
		}
		length++
	}
	return ptr, length, true
}

// UnitsWithTerminator returns the data units plus both trailing zero units.
func (DoubleZeroTerm[U]) UnitsWithTerminator(ptr unsafe.Pointer, length int) []U {
	return unsafe.Slice((*U)(ptr), length+2)
}

// Alloc copies units into a fresh allocation with two trailing zero units
// appended, unless units already ends in that pair.
func (DoubleZeroTerm[U]) Alloc(a Allocator, units []U) (unsafe.Pointer, int, error) {
	n := len(units)
	trailingPair := n >= 2 && units[n-1].IsZero() && units[n-2].IsZero()
	dataEnd := n
	if trailingPair {
		dataEnd = n - 2
	}
	for i := 0; i < dataEnd; i++ {
		if units[i].IsZero() {
			return nil, 0, ErrInvalidContents
		}
	}
	addTerm := 2
	if trailingPair {
		addTerm = 0
	}
	usz := unitSize[U]()
	totalUnits, err := checkedMulAdd(n, addTerm, usz)
	if err != nil {
		return nil, 0, err
	}
	totalBytes := int(uintptr(totalUnits) * usz)
	ptr, err := a.AllocBytes(totalBytes, int(usz))
	if err != nil {
		return nil, 0, err
	}
	dst := unsafe.Slice((*U)(ptr), totalUnits)
	copy(dst, units)
	var zero U
	dst[totalUnits-1] = zero
	dst[totalUnits-2] = zero
	return ptr, dataEnd, nil
}

func (DoubleZeroTerm[U]) Free(a Allocator, ptr unsafe.Pointer, length int) {
	a.Free(ptr, int(unitSize[U]()))
}

func (d DoubleZeroTerm[U]) Default(e Encoding[U]) (unsafe.Pointer, int) {
	zu := e.ZeroUnits()
	return unsafe.Pointer(&zu[0]), 0
}

var _ OwnershipTransfer[MbUnit] = DoubleZeroTerm[MbUnit]{}

// IntoForeignOwnedPtr hands the pointer to foreign code verbatim.
func (DoubleZeroTerm[U]) IntoForeignOwnedPtr(ptr unsafe.Pointer, length int) unsafe.Pointer {
	return ptr
}

// FromForeignOwnedPtr reclaims a double-zero-terminated allocation, scanning
// for the terminator pair exactly as BorrowPtr does.
func (d DoubleZeroTerm[U]) FromForeignOwnedPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	return d.BorrowPtr(ptr)
}
