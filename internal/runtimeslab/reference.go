// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.

package runtimeslab

import (
	"fmt"
	"unsafe"
)

const maskShift = 56 // This leaves 8 bits for the generation data
const genMask = uint64(0xFF << maskShift)
const pointerMask = ^genMask

// RefPointer addresses a single allocation slot inside a slab. The address
// field holds a pointer to the allocation's data, but also sneaks a
// generation value into the top 8 bits.
//
// The generation must be masked out to get a usable pointer value. The slot
// pointed to must have the same generation value in order to access/free it
// through this reference. This is a best-effort check to catch
// use-after-free and double-free errors at the RuntimeAlloc boundary.
type RefPointer struct {
	dataAddress uint64
	metaAddress uint64
}

const metadataSize = unsafe.Sizeof(metadata{})

// If a slot's metadata has a non-nil nextFree pointer then the slot is
// currently free. Slots which have never been allocated are implicitly
// free, but have a nil nextFree.
type metadata struct {
	nextFree RefPointer
	gen      uint8
}

func NewReference(pAddress, pMetadata uintptr) RefPointer {
	if pAddress == (uintptr)(unsafe.Pointer(nil)) {
		panic("cannot create new RefPointer with nil pointer")
	}

	address := uint64(pAddress)
	maskedAddress := address & pointerMask

	if address != maskedAddress {
		panic(fmt.Errorf("the raw pointer (%d) uses more than %d bits", address, maskShift))
	}

	return RefPointer{
		dataAddress: maskedAddress,
		metaAddress: uint64(pMetadata),
	}
}

func (r *RefPointer) AllocFromFree() (nextFree RefPointer) {
	obj := r.metadata()
	nextFree = obj.nextFree
	obj.nextFree = RefPointer{}

	if nextFree == *r {
		nextFree = RefPointer{}
	}

	obj.gen++
	r.setGen(obj.gen)

	return nextFree
}

func (r *RefPointer) Free(oldFree RefPointer) {
	meta := r.metadata()

	if !meta.nextFree.IsNil() {
		panic(fmt.Errorf("attempted to free already-free allocation %v", r))
	}

	if meta.gen != r.Gen() {
		panic(fmt.Errorf("attempted to free allocation (%d) using stale reference (%d)", meta.gen, r.Gen()))
	}

	if oldFree.IsNil() {
		meta.nextFree = *r
	} else {
		meta.nextFree = oldFree
	}
}

func (r *RefPointer) IsNil() bool {
	return r.metadataPtr() == 0
}

func (r *RefPointer) DataPtr() uintptr {
	meta := r.metadata()

	if !meta.nextFree.IsNil() {
		panic(fmt.Errorf("attempted to access freed allocation %v", r))
	}

	if meta.gen != r.Gen() {
		panic(fmt.Errorf("attempted to access allocation (%d) using stale reference (%d)", meta.gen, r.Gen()))
	}
	return (uintptr)(r.dataAddress & pointerMask)
}

// Bytes returns the raw byte view of the allocation of the given size.
func (r *RefPointer) Bytes(size int) []byte {
	ptr := r.DataPtr()
	return pointerToBytes(ptr, size)
}

func (r *RefPointer) metadataPtr() uintptr {
	return (uintptr)(r.metaAddress)
}

func (r *RefPointer) metadata() *metadata {
	return (*metadata)(unsafe.Pointer(r.metadataPtr()))
}

func (r *RefPointer) Gen() uint8 {
	return (uint8)((r.dataAddress & genMask) >> maskShift)
}

func (r *RefPointer) setGen(gen uint8) {
	r.dataAddress = (r.dataAddress & pointerMask) | (uint64(gen) << maskShift)
}

// Addresses exposes the raw (dataAddress, metaAddress) pair so a caller can
// stash a RefPointer's identity in its own allocation header and
// reconstruct it later with FromAddresses, rather than maintaining a
// separate side table mapping user pointers back to references.
func (r RefPointer) Addresses() (uint64, uint64) {
	return r.dataAddress, r.metaAddress
}

// FromAddresses reconstructs a RefPointer previously decomposed by
// Addresses.
func FromAddresses(dataAddress, metaAddress uint64) RefPointer {
	return RefPointer{dataAddress: dataAddress, metaAddress: metaAddress}
}
