// Copyright 2024 Francis Michael Stephens. All rights reserved.  Use of this
// source code is governed by an MIT license that can be found in the LICENSE
// file.

package testutil

import "github.com/fmstephe/strffi"

// MakeSizedMbUnits generates length random ASCII-range MbUnit values, for
// driving ZeroTerm/Slice/PrefixLen construction tests without embedding an
// interior zero unit.
func (rsm *RandomStringMaker) MakeSizedMbUnits(length int) []strffi.MbUnit {
	raw := rsm.MakeSizedBytes(length)
	units := make([]strffi.MbUnit, len(raw))
	for i, b := range raw {
		units[i] = strffi.MbUnit{V: b}
	}
	return units
}

// MakeSizedAsciiUnits is MakeSizedMbUnits for the Ascii encoding.
func (rsm *RandomStringMaker) MakeSizedAsciiUnits(length int) []strffi.AsciiUnit {
	raw := rsm.MakeSizedBytes(length)
	units := make([]strffi.AsciiUnit, len(raw))
	for i, b := range raw {
		units[i] = strffi.AsciiUnit{V: b}
	}
	return units
}

// MakeSizedWideUnits generates length random non-zero Wide units in the
// Basic Multilingual Plane, valid on both UTF-32 and UTF-16 hosts.
func (rsm *RandomStringMaker) MakeSizedWideUnits(length int) []strffi.WideUnit {
	raw := rsm.MakeSizedBytes(length)
	units := make([]strffi.WideUnit, len(raw))
	for i, b := range raw {
		units[i] = strffi.WideUnit{V: int32(b) + 1} // +1: letters are never zero anyway, kept explicit
	}
	return units
}
