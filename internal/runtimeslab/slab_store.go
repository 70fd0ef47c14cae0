// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.

package runtimeslab

import (
	"sync"
	"sync/atomic"
)

// Stats reports allocation counters for one size class's Store, exposed
// upward through RuntimeAlloc.Stats for test assertions and diagnostics.
type Stats struct {
	Allocs    int
	Frees     int
	RawAllocs int
	Live      int
	Reused    int
	Slabs     int
}

// Store is the slot allocator for a single size class: every slot it hands
// out via Alloc is exactly conf.SlotSize bytes, carved out of mmap'd slabs
// grown on demand. Freed slots are threaded onto a free list and reused
// before a new slot is carved from an as-yet-untouched slab.
type Store struct {
	// Immutable fields
	conf SlabConfig

	// Accounting fields
	allocs atomic.Uint64
	frees  atomic.Uint64
	reused atomic.Uint64

	// allocIdx provides unique slot locations for each new allocation
	allocIdx atomic.Uint64

	// freeLock protects rootFree
	freeLock sync.Mutex
	rootFree RefPointer

	// slabsLock protects slots/metadata
	// Allocating to an existing slab with a free slot only needs a read lock
	// Adding a new slab to slots requires a write lock
	slabsLock sync.RWMutex
	metadata  [][]uintptr
	slots     [][]uintptr
}

// New returns an empty Store for the size class described by conf. No slab
// is mapped until the first Alloc.
func New(conf SlabConfig) *Store {
	return &Store{
		conf:     conf,
		allocIdx: atomic.Uint64{},
		slots:    [][]uintptr{},
		metadata: [][]uintptr{},
	}
}

// Alloc returns a slot, reusing a freed one if the free list is non-empty,
// otherwise carving a fresh one from the current slab (growing the slab set
// if it is exhausted).
func (s *Store) Alloc() RefPointer {
	s.allocs.Add(1)

	if r, ok := s.allocFromFree(); ok {
		s.reused.Add(1)
		return r
	}

	// allocFromFree failed, fall back to allocating from new slot
	return s.allocFromOffset()
}

// Free returns r's slot to the free list.
func (s *Store) Free(r RefPointer) {
	s.freeLock.Lock()
	defer s.freeLock.Unlock()

	r.Free(s.rootFree)
	s.rootFree = r

	s.frees.Add(1)
}

// Destroy unmaps every slab this Store has grown. The Store is unusable
// afterwards.
func (s *Store) Destroy() error {
	s.slabsLock.Lock()
	defer s.slabsLock.Unlock()
	defer func() {
		s.slots = nil
		s.metadata = nil
	}()

	for _, slab := range s.slots {
		if err := MunmapSlab(slab[0], s.conf); err != nil {
			// This is pretty unrecoverable - so we just give up.
			// Maybe we should _try_ to unmap the remaining slabs.
			// I expect that the only useful response to this error
			// is to exit your application, or in the current
			// use-case stop fuzzing.
			return err
		}
	}

	return nil
}

// Stats reports this Store's allocation counters.
func (s *Store) Stats() Stats {
	allocs := s.allocs.Load()
	frees := s.frees.Load()
	reused := s.reused.Load()

	// make sure the size of s.slots doesn't change
	s.slabsLock.RLock()
	slabs := len(s.slots)
	s.slabsLock.RUnlock()

	return Stats{
		Allocs:    int(allocs),
		Frees:     int(frees),
		RawAllocs: int(allocs - reused),
		Live:      int(allocs - frees),
		Reused:    int(reused),
		Slabs:     slabs,
	}
}

// SlabConfig returns the size-class layout this Store was constructed with.
func (s *Store) SlabConfig() SlabConfig {
	return s.conf
}

func (s *Store) allocFromFree() (RefPointer, bool) {
	s.freeLock.Lock()
	defer s.freeLock.Unlock()

	// No free slots available - allocFromFree failed
	if s.rootFree.IsNil() {
		return RefPointer{}, false
	}

	// Get pointer to the next available freed slot
	alloc := s.rootFree
	s.rootFree = alloc.AllocFromFree()

	return alloc, true
}

func (s *Store) allocFromOffset() RefPointer {
	allocIdx := s.acquireAllocIdx()
	// TODO do some power of 2 work here, to eliminate all this division
	slabIdx := allocIdx / s.conf.SlotsPerSlab
	offsetIdx := allocIdx % s.conf.SlotsPerSlab

	// Take read lock to access s.slots
	s.slabsLock.RLock()
	if slabIdx >= uint64(len(s.slots)) {
		// Release read lock
		s.slabsLock.RUnlock()
		s.growSlabs(int(slabIdx + 1))
		// Reacquire read lock
		s.slabsLock.RLock()
	}
	slot := s.slots[slabIdx][offsetIdx]
	meta := s.metadata[slabIdx][offsetIdx]
	// Release read lock
	s.slabsLock.RUnlock()

	ref := NewReference(slot, meta)
	return ref
}

func (s *Store) acquireAllocIdx() uint64 {
	for {
		allocIdx := s.allocIdx.Load()
		if s.allocIdx.CompareAndSwap(allocIdx, allocIdx+1) {
			// Success
			return allocIdx
		}
	}
}

func (s *Store) growSlabs(targetLen int) {
	// Acquire write lock to grow the slots slice
	s.slabsLock.Lock()
	for len(s.slots) < targetLen {
		// Create a new slab
		slots, metadata := MmapSlab(s.conf)
		s.slots = append(s.slots, slots)
		s.metadata = append(s.metadata, metadata)
	}

	// Release write lock
	s.slabsLock.Unlock()
}
