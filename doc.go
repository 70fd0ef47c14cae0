// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.

// # Usage
//
// Package strffi provides a uniform, type-safe abstraction over the many
// string representations encountered when interoperating with foreign
// native code. A "foreign string" varies along three orthogonal axes: its
// memory layout (a Structure), its encoding (an Encoding), and its
// allocator (an Allocator). Go's native string type collapses all three
// (UTF-8, no terminator, garbage collected) which leaks silently the moment
// it crosses an FFI boundary that disagrees with any one of them.
//
// Two generic types sit on top of the three axes:
//
//	b, ok := strffi.FromForeignPtr[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb, strffi.MbUnit](ptr)
//
//	o, err := strffi.NewOwnedFromUnits[strffi.ZeroTerm[strffi.MbUnit], strffi.Mb](units, strffi.CAlloc{})
//	defer o.Destroy()
//
// BorrowedStr never owns or frees; it is a re-borrowable view bounded by the
// lifetime of whatever foreign pointer produced it. OwnedStr allocates on
// construction and frees on Destroy(); ownership may be handed to foreign
// code with IntoForeignPtr/IntoForeignSlice, which suppresses the
// destructor, and reclaimed with FromForeignOwned/FromForeignOwnedSlice.
//
// A best effort has been made to panic on double-free for the RuntimeAlloc
// allocator (it tags each allocation with a generation counter the way
// offheap's pointerstore allocator does). Reads and writes through a freed
// string are not checked. The CAlloc and WsaAlloc allocators hand the bytes
// straight to the host allocator and cannot detect these errors themselves
// — that detection is the foreign allocator's job once the pointer leaves
// this library's control.
//
// # Concurrency Guarantees
//
// 1: Independent construction safety. Multiple goroutines may each
// construct/free BorrowedStr and OwnedStr values of their own without any
// additional synchronization, exactly like conventional Go slices/pointers.
//
// 2: Safe data publication. It is safe to construct an OwnedStr on one
// goroutine and publish the resulting BorrowedStr to another, provided a
// happens-before relationship is established (a channel send, a mutex,
// etc).
//
// 3: Independent read safety. Given a safely-published BorrowedStr, any
// number of goroutines may call Units()/IntoHostString()/TranscodeTo
// concurrently without a data race.
//
// 4: No implicit write safety. UnitsMut/UnitsMutChecked hand back a slice
// aliasing the allocation; concurrent mutation requires external
// synchronization exactly as it would for a plain []byte.
//
// 5: Free safety. Once Destroy or Relinquish has run on an OwnedStr
// variable, a further Destroy on that variable does nothing. Calling
// Destroy on two copies of the same OwnedStr is a double free, and calling
// Destroy concurrently with any other access to the same value is a data
// race with unpredictable behaviour — for RuntimeAlloc a double free is
// caught and turned into a panic while the slot is still free; for
// CAlloc/WsaAlloc it is real memory corruption, exactly as it would be in C.
//
// # Locale
//
// The Mb and Wide encodings (and their transcoders) depend on the host
// C runtime's thread-local locale. This library never calls setlocale; it
// is the caller's responsibility to ensure the locale in effect matches the
// data being transcoded.
package strffi
