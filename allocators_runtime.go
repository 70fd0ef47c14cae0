package strffi

import (
	"math/bits"
	"unsafe"

	"github.com/fmstephe/strffi/internal/runtimeslab"
)

// RuntimeAlloc is a size-classed, generation-checked allocator backed by
// mmap'd slabs, adapted from offheap's object Store (object_store.go):
// where offheap indexes its size classes by a Go type's reflect.Type size,
// RuntimeAlloc indexes by the requested byte size directly, since at this
// layer a structure has already reduced everything to a raw byte count.
// Every allocation is prefixed with a small header recording which size
// class and which runtimeslab.RefPointer it came from, so Free can locate
// the right class without a separate side table.
//
// Unlike CAlloc/WsaAlloc, RuntimeAlloc detects a second Free of a slot that
// is still on the free list: the slot's metadata records that it is free
// and runtimeslab.RefPointer.Free panics instead of corrupting the free
// list. Free takes the reference (and its generation) from the header
// stored in the slot, so once a freed slot has been handed out again a Free
// through the old pointer frees the new allocation. Reads and writes
// through a freed string go straight to memory and are not checked.
type RuntimeAlloc struct {
	classes []*runtimeslab.Store
}

const runtimeAllocHeaderSize = int(unsafe.Sizeof(runtimeAllocHeader{}))

type runtimeAllocHeader struct {
	classIdx    int
	dataAddress uint64
	metaAddress uint64
}

// NewRuntimeAlloc returns a RuntimeAlloc with the default slab size,
// mirroring offheap.New's defaultSlabSize.
func NewRuntimeAlloc() *RuntimeAlloc {
	return NewRuntimeAllocSized(1 << 13)
}

// NewRuntimeAllocSized is NewRuntimeAlloc with a caller-chosen minimum slab
// size, useful for keeping tests fast and memory-light the way
// offheap.NewSized exists for the same reason.
func NewRuntimeAllocSized(slabSize int) *RuntimeAlloc {
	classes := make([]*runtimeslab.Store, maxAllocationBits())
	for i := range classes {
		classes[i] = runtimeslab.New(runtimeslab.NewSlabConfig(1<<i, uint64(slabSize)))
	}
	return &RuntimeAlloc{classes: classes}
}

func (*RuntimeAlloc) Name() string { return "R" }

// AllocBytes rounds size+header up to the enclosing power-of-two size class
// and returns a pointer to the user-visible region, past the header.
func (r *RuntimeAlloc) AllocBytes(size, align int) (unsafe.Pointer, error) {
	total := size + runtimeAllocHeaderSize
	if align > runtimeAllocHeaderSize {
		total = size + align
	}
	idx := indexForSize(uint64(total))
	if idx >= len(r.classes) {
		return nil, ErrSizeOverflow
	}
	ref := r.classes[idx].Alloc()
	classSize := 1 << idx
	raw := ref.Bytes(classSize)
	base := unsafe.Pointer(&raw[0])

	offset := runtimeAllocHeaderSize
	if align > offset {
		offset = align
	}
	userPtr := unsafe.Add(base, offset)

	hdr := (*runtimeAllocHeader)(unsafe.Add(userPtr, -runtimeAllocHeaderSize))
	dataAddr, metaAddr := ref.Addresses()
	*hdr = runtimeAllocHeader{classIdx: idx, dataAddress: dataAddr, metaAddress: metaAddr}

	return userPtr, nil
}

func (r *RuntimeAlloc) Free(ptr unsafe.Pointer, align int) {
	hdr := (*runtimeAllocHeader)(unsafe.Add(ptr, -runtimeAllocHeaderSize))
	ref := runtimeslab.FromAddresses(hdr.dataAddress, hdr.metaAddress)
	r.classes[hdr.classIdx].Free(ref)
}

// Destroy releases every slab backing this allocator to the operating
// system. After this call the allocator is unusable, exactly as
// offheap.Store.Destroy documents.
func (r *RuntimeAlloc) Destroy() error {
	for _, c := range r.classes {
		if err := c.Destroy(); err != nil {
			return err
		}
	}
	return nil
}

// Stats exposes per-size-class allocation counters, the same shape offheap
// exposes via Store.Stats for test assertions and diagnostics.
func (r *RuntimeAlloc) Stats() []runtimeslab.Stats {
	stats := make([]runtimeslab.Stats, len(r.classes))
	for i, c := range r.classes {
		stats[i] = c.Stats()
	}
	return stats
}

// maxAllocationBits mirrors pkg/store/objectstore's sizing logic: the
// largest power-of-two class an int-addressed allocation could need on
// this architecture.
func maxAllocationBits() int {
	wordBits := unsafe.Sizeof(uintptr(0)) * 8
	switch wordBits {
	case 32:
		return 31
	case 64:
		return 48
	default:
		panic("unsupported architecture word size")
	}
}

func indexForSize(size uint64) int {
	if size == 0 {
		return 0
	}
	return bits.Len64(size - 1)
}
