// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.

package runtimeslab

import (
	"unsafe"

	"github.com/fmstephe/flib/fmath"
)

// SlabConfig describes the layout of one size class's mmap'd slabs: every
// slot in a slab is exactly SlotSize bytes (a power of two, rounded up from
// the byte count a caller actually asked to allocate), and every slot has a
// fixed-size metadata companion immediately after the data region so a
// RefPointer can recover both halves from a single slab address.
type SlabConfig struct {
	RequestedSlotSize uint64
	RequestedSlabSize uint64
	//
	SlotsPerSlab      uint64
	SlotSize          uint64
	TotalSlotSize     uint64
	MetadataSize      uint64
	TotalMetadataSize uint64
	TotalSlabSize     uint64
}

// NewSlabConfig rounds requestedSlotSize up to a power of two (the class's
// slot size) and picks how many such slots fit in a slab at least
// requestedSlabSize bytes, reserving a metadata companion per slot.
func NewSlabConfig(requestedSlotSize uint64, requestedSlabSize uint64) SlabConfig {
	slotSize := uint64(fmath.NxtPowerOfTwo(int64(requestedSlotSize)))

	totalSlotSize := uint64(fmath.NxtPowerOfTwo(int64(requestedSlabSize)))

	if totalSlotSize < slotSize {
		// If the slab is too small - we match the slot size for one
		// allocation per slab
		totalSlotSize = slotSize
	}

	slotsPerSlab := totalSlotSize / slotSize

	// TODO have a think about this - we don't strictly _need_ the metadata
	// to be aligned by a power of 2 (do we?)
	metadataSize := uint64(fmath.NxtPowerOfTwo(int64(unsafe.Sizeof(metadata{}))))

	totalMetadataSize := metadataSize * slotsPerSlab

	totalSlabSize := totalSlotSize + totalMetadataSize

	return SlabConfig{
		RequestedSlotSize: requestedSlotSize,
		RequestedSlabSize: requestedSlabSize,

		SlotsPerSlab:      slotsPerSlab,
		SlotSize:          slotSize,
		TotalSlotSize:     totalSlotSize,
		MetadataSize:      metadataSize,
		TotalMetadataSize: totalMetadataSize,
		TotalSlabSize:     totalSlabSize,
	}
}
