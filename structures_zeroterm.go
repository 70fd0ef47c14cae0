package strffi

import "unsafe"

// ZeroTerm is a single-unit-terminated structure, the layout of a
// conventional C string: char* for Mb/Ascii/Utf8Enc/Raw8/Latin1, wchar_t*
// for Wide, jchar* for Jni, and so on. Length is recovered by scanning for
// the first zero unit (original_source/src/structure/mod.rs ZeroTerm).
type ZeroTerm[U Unit] struct{}

func (ZeroTerm[U]) Name() string { return "Z" }

var _ PointerStructure[MbUnit] = ZeroTerm[MbUnit]{}

// BorrowPtr scans forward from ptr for the first zero unit.
func (ZeroTerm[U]) BorrowPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	if ptr == nil {
		return nil, 0, false
	}
	usz := unitSize[U]()
	length := 0
	for {
		u := *(*U)(unsafe.Add(ptr, uintptr(length)*usz))
		if u.IsZero() {
			break
		}
		length++
	}
	return ptr, length, true
}

// UnitsWithTerminator returns the data units plus the trailing zero unit.
func (ZeroTerm[U]) UnitsWithTerminator(ptr unsafe.Pointer, length int) []U {
	return unsafe.Slice((*U)(ptr), length+1)
}

// Alloc copies units into a fresh allocation with a trailing zero unit
// appended, unless units already ends in one. Rejects interior zero units
// (spec.md §9 Open Question: this library validates rather than silently
// truncating).
func (ZeroTerm[U]) Alloc(a Allocator, units []U) (unsafe.Pointer, int, error) {
	for i, u := range units {
		if u.IsZero() && i != len(units)-1 {
			return nil, 0, ErrInvalidContents
		}
	}
	addTerm := len(units) == 0 || !units[len(units)-1].IsZero()
	extra := 0
	if addTerm {
		extra = 1
	}
	usz := unitSize[U]()
	totalUnits, err := checkedMulAdd(len(units), extra, usz)
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
	dataLen := len(units)
	if addTerm {
		// dataLen already excludes the terminator we appended.
	} else {
		dataLen = len(units) - 1
	}
	return ptr, dataLen, nil
}

func (ZeroTerm[U]) Free(a Allocator, ptr unsafe.Pointer, length int) {
	a.Free(ptr, int(unitSize[U]()))
}

// Default returns a pointer to a single zero unit sourced from e, so an
// empty ZeroTerm BorrowedStr never goes through the Allocator.
func (z ZeroTerm[U]) Default(e Encoding[U]) (unsafe.Pointer, int) {
	zu := e.ZeroUnits()
	return unsafe.Pointer(&zu[0]), 0
}

var _ OwnershipTransfer[MbUnit] = ZeroTerm[MbUnit]{}

// IntoForeignOwnedPtr hands the pointer to foreign code verbatim: ZeroTerm's
// own terminator already makes the allocation self-describing, so no
// repackaging is needed the way Bstr's length prefix does.
func (ZeroTerm[U]) IntoForeignOwnedPtr(ptr unsafe.Pointer, length int) unsafe.Pointer {
	return ptr
}

// FromForeignOwnedPtr reclaims a ZeroTerm allocation foreign code is handing
// off, recovering length exactly as BorrowPtr does.
func (z ZeroTerm[U]) FromForeignOwnedPtr(ptr unsafe.Pointer) (unsafe.Pointer, int, bool) {
	return z.BorrowPtr(ptr)
}
