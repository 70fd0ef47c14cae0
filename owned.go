package strffi

import "unsafe"

// OwnedStr is an allocation this library owns: constructed via
// NewOwnedFromUnits/FromForeignOwned*, released via Destroy, and handed to
// foreign code via Relinquish, after which this library no longer tracks
// it (original_source/src/lib.rs's OwnedStr, generic here over the same
// three axes as BorrowedStr plus the Allocator that produced it).
type OwnedStr[S Structure[U], E Encoding[U], U Unit, A Allocator] struct {
	data         unsafe.Pointer
	length       int
	alloc        A
	relinquished bool
}

// NewOwnedFromUnits allocates via a, copying units and applying whatever
// structural suffix S requires (ZeroTerm's terminator, PrefixLen's length
// word, and so on).
func NewOwnedFromUnits[S Structure[U], E Encoding[U], U Unit, A Allocator](units []U, a A) (OwnedStr[S, E, U, A], error) {
	var s S
	ptr, length, err := s.Alloc(a, units)
	if err != nil {
		return OwnedStr[S, E, U, A]{}, err
	}
	return OwnedStr[S, E, U, A]{data: ptr, length: length, alloc: a}, nil
}

// FromForeignOwned reclaims a pointer-shaped allocation that foreign code
// produced and is handing off to this library, via S's OwnershipTransfer
// capability. ok is false if ptr was null.
func FromForeignOwned[S interface {
	Structure[U]
	OwnershipTransfer[U]
}, E Encoding[U], U Unit, A Allocator](ptr unsafe.Pointer, a A) (OwnedStr[S, E, U, A], bool) {
	var s S
	data, length, ok := s.FromForeignOwnedPtr(ptr)
	if !ok {
		return OwnedStr[S, E, U, A]{}, false
	}
	return OwnedStr[S, E, U, A]{data: data, length: length, alloc: a}, true
}

// FromForeignOwnedSlice is FromForeignOwned for pointer+length structures.
func FromForeignOwnedSlice[S interface {
	Structure[U]
	OwnershipTransferSlice[U]
}, E Encoding[U], U Unit, A Allocator](ptr unsafe.Pointer, length int, a A) (OwnedStr[S, E, U, A], bool) {
	var s S
	data, outLength, ok := s.FromForeignOwnedSlice(ptr, length)
	if !ok {
		return OwnedStr[S, E, U, A]{}, false
	}
	return OwnedStr[S, E, U, A]{data: data, length: outLength, alloc: a}, true
}

// Borrow returns a BorrowedStr view of this allocation, valid only as long
// as this OwnedStr has not been Destroyed or Relinquished.
func (o OwnedStr[S, E, U, A]) Borrow() BorrowedStr[S, E, U] {
	return BorrowedStr[S, E, U]{data: o.data, length: o.length}
}

// IntoForeignPtr surrenders this allocation to foreign code and suppresses
// this OwnedStr's own Destroy, via S's OwnershipTransfer capability.
func IntoForeignPtr[S interface {
	Structure[U]
	OwnershipTransfer[U]
}, E Encoding[U], U Unit, A Allocator](o *OwnedStr[S, E, U, A]) unsafe.Pointer {
	var s S
	ptr := s.IntoForeignOwnedPtr(o.data, o.length)
	o.relinquished = true
	return ptr
}

// IntoForeignSlice is IntoForeignPtr for pointer+length structures.
func IntoForeignSlice[S interface {
	Structure[U]
	OwnershipTransferSlice[U]
}, E Encoding[U], U Unit, A Allocator](o *OwnedStr[S, E, U, A]) (unsafe.Pointer, int) {
	var s S
	ptr, length := s.IntoForeignOwnedSlice(o.data, o.length)
	o.relinquished = true
	return ptr, length
}

// Relinquish surrenders this allocation without converting to a specific
// foreign FFI shape, returning the raw pointer and length exactly as this
// library holds them. Equivalent to IntoForeignPtr/IntoForeignSlice for
// callers that already know the structure's representation and do not need
// the OwnershipTransfer capability check.
func (o *OwnedStr[S, E, U, A]) Relinquish() (unsafe.Pointer, int) {
	o.relinquished = true
	return o.data, o.length
}

// Clone allocates a fresh copy of this string via the same allocator.
func (o OwnedStr[S, E, U, A]) Clone() (OwnedStr[S, E, U, A], error) {
	return NewOwnedFromUnits[S, E, U, A](o.Borrow().Units(), o.alloc)
}

// Destroy frees this allocation. Once Destroy or
// Relinquish/IntoForeignPtr/IntoForeignSlice has run on this variable,
// Destroy does nothing. OwnedStr is a value type and each copy carries its
// own flag, so calling Destroy on two copies of the same allocation frees it
// twice; RuntimeAlloc turns such a second free into a panic (doc.go's
// concurrency guarantee 5).
func (o *OwnedStr[S, E, U, A]) Destroy() {
	if o.relinquished || o.data == nil {
		return
	}
	var s S
	s.Free(o.alloc, o.data, o.length)
	o.relinquished = true
}

// Equal compares two owned strings' data units for equality, ignoring
// structural suffixes (terminators, length prefixes).
func (o OwnedStr[S, E, U, A]) Equal(other OwnedStr[S, E, U, A]) bool {
	a := o.Borrow().Units()
	b := other.Borrow().Units()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DefaultOwned returns the empty OwnedStr for structures implementing
// StructureDefault, without calling a.AllocBytes (its pointer comes from S's
// Default, backed by a copy of E's ZeroUnits). Destroy on it does nothing.
func DefaultOwned[S StructureDefault[U], E Encoding[U], U Unit, A Allocator](a A) OwnedStr[S, E, U, A] {
	var s S
	var e E
	ptr, length := s.Default(e)
	return OwnedStr[S, E, U, A]{data: ptr, length: length, alloc: a, relinquished: true}
}
