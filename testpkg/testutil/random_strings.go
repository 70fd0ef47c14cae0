// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.

// Package testutil generates deterministic pseudo-random content for
// exercising the unit-sequence structures (ZeroTerm/Slice/PrefixLen) across
// a spread of lengths, the way random_sizes_test.go's
// TestRandomSizesRoundTripAllStructures does.
package testutil

import "math/rand"

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomStringMaker produces letter-only content from a fixed seed, so
// repeated test runs see identical inputs; MakeSizedMbUnits/
// MakeSizedAsciiUnits/MakeSizedWideUnits (units.go) build on MakeSizedBytes
// to generate unit sequences in each encoding this library supports.
type RandomStringMaker struct {
	r *rand.Rand
}

func NewRandomStringMaker() *RandomStringMaker {
	return &RandomStringMaker{
		r: rand.New(rand.NewSource(1)),
	}
}

// MakeSizedBytes returns length random ASCII letters, the shared base every
// MakeSized*Units constructor in units.go draws from.
func (rsm *RandomStringMaker) MakeSizedBytes(length int) []byte {
	bytes := make([]byte, 0, length)
	for range length {
		bytes = append(bytes, letters[rsm.r.Intn(len(letters))])
	}
	return bytes
}
