package strffi

import "unsafe"

// Allocator (de)allocates raw, untyped byte ranges for OwnedStr. Structures
// call Alloc/Free with the byte length and alignment their layout needs;
// the structure/allocator pairing compatibility that spec.md's
// StructureAlloc<E,A> enforces at compile time in Rust is enforced here at
// run time — Bstr's Alloc/Free only ever call a WsaAlloc, so
// OwnedStr[Bstr[U], E, U, CAlloc] compiles, but Bstr's Alloc type-asserts
// the Allocator argument and returns ErrUnsupported for anything other
// than *WsaAlloc.
type Allocator interface {
	// AllocBytes returns size bytes aligned to align, or an error.
	AllocBytes(size, align int) (unsafe.Pointer, error)

	// Free releases a range previously returned by AllocBytes, aligned to
	// the same align that was passed to AllocBytes.
	Free(ptr unsafe.Pointer, align int)

	// Name is this allocator's debug prefix ("C", "R", "Wsa").
	Name() string
}

// Structure is the marker interface implemented by each named layout. It is
// generic over the Unit type it lays out, since Go methods cannot carry
// their own type parameters independent of the receiver.
type Structure[U Unit] interface {
	// Name is this structure's debug prefix ("Z", "Zz", "P", "S", "Go", "Bstr").
	Name() string

	// Alloc allocates via a and copies units, applying whatever
	// structural suffix this layout requires (terminator units, a
	// length prefix). Returns the allocation's base data pointer and
	// the number of *data* units (excluding any structural suffix).
	Alloc(a Allocator, units []U) (ptr unsafe.Pointer, length int, err error)

	// Free releases an allocation previously returned by Alloc (or by
	// BorrowPtr/BorrowSlice's underlying foreign allocation, if
	// ownership was transferred in).
	Free(a Allocator, ptr unsafe.Pointer, length int)
}

// PointerStructure is a Structure whose FFI shape is a single pointer
// (length recovered from the data itself: a terminator scan or a stored
// prefix). ZeroTerm, DoubleZeroTerm, PrefixLen, and Bstr implement this.
type PointerStructure[U Unit] interface {
	Structure[U]

	// BorrowPtr interprets ptr as this structure's single-pointer FFI
	// shape and recovers (data pointer, unit length). ok is false when
	// ptr is null and this structure treats null as "no string".
	BorrowPtr(ptr unsafe.Pointer) (data unsafe.Pointer, length int, ok bool)
}

// SliceStructure is a Structure whose FFI shape is a pointer plus an
// explicit length. Slice and GoSlice implement this.
type SliceStructure[U Unit] interface {
	Structure[U]

	// BorrowSlice interprets (ptr, length) as this structure's FFI shape.
	// ok is false when ptr is null.
	BorrowSlice(ptr unsafe.Pointer, length int) (data unsafe.Pointer, outLength int, ok bool)
}

// KnownLength is a pure marker: structures implementing it recover length
// in O(1) (it is stored, not scanned for).
type KnownLength interface {
	knownLength()
}

// MutationSafe is a pure, unsafe-to-implement marker: mutating units
// in-place can never change the reported length or otherwise violate the
// structure's invariants (true of slice-based layouts, false of
// zero-terminated ones, where writing a zero mid-string truncates it).
type MutationSafe interface {
	mutationSafe()
}

// StructureDefault provides a statically-available empty borrowed form.
type StructureDefault[U Unit] interface {
	Structure[U]
	// Default returns the (pointer, length) of an empty string backed by a
	// copy of e's ZeroUnits, without going through an Allocator.
	Default(e Encoding[U]) (ptr unsafe.Pointer, length int)
}

// ZeroTerminated structures end in (at least) one zero unit and can expose
// a slice that includes it.
type ZeroTerminated[U Unit] interface {
	Structure[U]
	// UnitsWithTerminator returns the data units plus the trailing
	// terminator unit(s).
	UnitsWithTerminator(ptr unsafe.Pointer, length int) []U
}

// OwnershipTransfer structures can surrender an owned pointer-shaped
// allocation to foreign code and reclaim one from foreign code.
type OwnershipTransfer[U Unit] interface {
	PointerStructure[U]
	IntoForeignOwnedPtr(ptr unsafe.Pointer, length int) unsafe.Pointer
	FromForeignOwnedPtr(ptr unsafe.Pointer) (data unsafe.Pointer, length int, ok bool)
}

// OwnershipTransferSlice is OwnershipTransfer for pointer+length structures.
type OwnershipTransferSlice[U Unit] interface {
	SliceStructure[U]
	IntoForeignOwnedSlice(ptr unsafe.Pointer, length int) (unsafe.Pointer, int)
	FromForeignOwnedSlice(ptr unsafe.Pointer, length int) (data unsafe.Pointer, outLength int, ok bool)
}

// unitSize returns sizeof(U) via a throwaway zero value — used throughout
// the structure implementations for pointer arithmetic.
func unitSize[U Unit]() uintptr {
	var zero U
	return unsafe.Sizeof(zero)
}

// checkedMulAdd checks that (count+extra)*unitSz fits in an int and returns
// the unit count count+extra (callers multiply by the unit size
// themselves), mirroring the checked arithmetic original_source's alloc_owned bodies
// perform before every allocation (spec.md §7 SizeOverflow).
func checkedMulAdd(count, extra int, unitSz uintptr) (int, error) {
	if count < 0 || extra < 0 || count > (1<<62) {
		return 0, ErrSizeOverflow
	}
	total := count + extra
	if total < count {
		return 0, ErrSizeOverflow
	}
	bytes := uint64(total) * uint64(unitSz)
	if unitSz != 0 && bytes/uint64(unitSz) != uint64(total) {
		return 0, ErrSizeOverflow
	}
	if bytes > uint64(^uint(0)>>1) {
		return 0, ErrSizeOverflow
	}
	return total, nil
}
