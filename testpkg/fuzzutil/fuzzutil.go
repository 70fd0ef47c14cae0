// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.

// Package fuzzutil turns the raw byte slice go-fuzz hands a fuzz target into
// a sequence of domain steps (here: alloc one foreign string, free one by
// index, ...), the way allocators_runtime_fuzz_test.go's FuzzRuntimeAlloc
// drives RuntimeAlloc through alloc/free churn.
package fuzzutil

import (
	"encoding/binary"
	"math/rand"
)

// ByteConsumer peels fixed-width fields off a byte slice in order, padding
// with zeroes once the slice is exhausted so a fuzz target never has to
// special-case a short input.
type ByteConsumer struct {
	bytes []byte
}

func NewByteConsumer(bytes []byte) *ByteConsumer {
	return &ByteConsumer{
		bytes: bytes,
	}
}

func (c *ByteConsumer) Len() int {
	return len(c.bytes)
}

func (c *ByteConsumer) Bytes(size int) []byte {
	consumed := make([]byte, size)
	copy(consumed, c.bytes)

	if len(c.bytes) <= size {
		c.bytes = c.bytes[:0]
	} else {
		c.bytes = c.bytes[size:]
	}
	return consumed
}

// Test only
func (c *ByteConsumer) pushBytes(bytes []byte) {
	c.bytes = append(c.bytes, bytes...)
}

// Byte selects which step (allocate or free) newRuntimeAllocTestRun builds
// next.
func (c *ByteConsumer) Byte() byte {
	dest := c.Bytes(1)
	return dest[0]
}

// Test only
func (c *ByteConsumer) pushByte(b byte) {
	c.pushBytes([]byte{b})
}

// Uint32 supplies a free step's target index into the live-allocation set.
func (c *ByteConsumer) Uint32() uint32 {
	dest := c.Bytes(4)
	return binary.LittleEndian.Uint32(dest)
}

// Test only
func (c *ByteConsumer) pushUint32(value uint32) {
	bytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(bytes, value)
	c.pushBytes(bytes)
}

// TestRun replays a fixed byte slice as a sequence of Steps built by
// stepMaker, running cleanup once every step has executed. go-fuzz's corpus
// minimisation and crash replay both rely on this being a pure function of
// the input bytes.
type TestRun struct {
	steps   []Step
	cleanup func()
}

func NewTestRun(bytes []byte, stepMaker func(*ByteConsumer) Step, cleanup func()) *TestRun {
	tr := &TestRun{
		steps:   make([]Step, 0),
		cleanup: cleanup,
	}
	byteConsumer := NewByteConsumer(bytes)

	for byteConsumer.Len() > 0 {
		step := stepMaker(byteConsumer)
		tr.steps = append(tr.steps, step)
	}
	return tr
}

func (t *TestRun) Run() {
	defer t.cleanup()
	for _, step := range t.steps {
		step.DoStep()
	}
}

// Step is one allocate-or-free action in a TestRun.
type Step interface {
	DoStep()
}

// MakeRandomTestCases seeds FuzzRuntimeAlloc's corpus with a fixed-seed
// spread of input sizes, so every run starts from the same alloc/free churn
// before go-fuzz begins mutating from there.
func MakeRandomTestCases() [][]byte {
	r := rand.New(rand.NewSource(1))
	return [][]byte{
		{},
		randomBytes(r, 1),
		randomBytes(r, 10),
		randomBytes(r, 50),
		randomBytes(r, 100),
		randomBytes(r, 500),
		randomBytes(r, 1000),
		randomBytes(r, 5000),
		randomBytes(r, 10000),
		randomBytes(r, 50000),
	}
}

func randomBytes(r *rand.Rand, size int) []byte {
	bytes := make([]byte, size)
	r.Read(bytes)
	return bytes
}
