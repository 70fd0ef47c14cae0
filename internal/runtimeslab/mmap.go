// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.
package runtimeslab

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapSlab anonymously maps one slab for conf and carves it into
// conf.SlotsPerSlab data slots followed by their metadata companions,
// returning the address of every slot and metadata entry.
func MmapSlab(conf SlabConfig) (slots, metadata []uintptr) {
	data, err := unix.Mmap(-1, 0, int(conf.TotalSlabSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		panic(fmt.Errorf("cannot allocate %#v via mmap because %s", conf, err))
	}

	// Collect pointers to each data slot
	slots = make([]uintptr, conf.SlotsPerSlab)
	for i := range slots {
		idx := uint64(i) * conf.SlotSize
		slots[i] = (uintptr)((unsafe.Pointer)(&data[idx]))
	}

	// Collect pointers to each metadata slot
	metadata = make([]uintptr, conf.SlotsPerSlab)
	for i := range metadata {
		idx := conf.TotalSlotSize + (uint64(i) * conf.MetadataSize)
		metadata[i] = (uintptr)((unsafe.Pointer)(&data[idx]))
	}

	return slots, metadata
}

// MunmapSlab releases a slab previously returned by MmapSlab back to the OS.
func MunmapSlab(ptr uintptr, slabConf SlabConfig) error {
	b := pointerToBytes(ptr, int(slabConf.TotalSlabSize))
	return unix.Munmap(b)
}

func pointerToBytes(ptr uintptr, size int) []byte {
	return ([]byte)(unsafe.Slice((*byte)((unsafe.Pointer)(ptr)), size))
}
