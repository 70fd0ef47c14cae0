package strffi

import (
	"errors"
	"fmt"
)

// Allocation errors (spec.md §7).
var (
	// ErrAllocFailed is returned when the backing allocator returned null.
	ErrAllocFailed = errors.New("strffi: allocator returned null")

	// ErrCannotAlign is returned when the requested alignment exceeds the
	// allocator's guarantees.
	ErrCannotAlign = errors.New("strffi: requested alignment exceeds allocator guarantee")

	// ErrSizeOverflow is returned when computing a byte length from a unit
	// count overflowed the machine word size.
	ErrSizeOverflow = errors.New("strffi: size computation overflowed")

	// ErrInvalidContents is returned when constructing a zero-terminated
	// owned string from units containing an interior zero unit (spec.md
	// §9 Open Question, resolved here in favour of validating).
	ErrInvalidContents = errors.New("strffi: interior zero unit in zero-terminated string contents")

	// ErrUnsupported is returned by platform shims not implemented on the
	// current GOOS (e.g. WsaAlloc off Windows).
	ErrUnsupported = errors.New("strffi: unsupported on this platform")
)

// TranscodeError is the common interface satisfied by every transcoding
// error (spec.md §7). A nil TranscodeError means "no error" — spec.md's
// NoError is represented as a plain nil interface value rather than a
// distinct sentinel type, since Go's zero value for an interface already
// means "nothing to report" everywhere an error is threaded.
type TranscodeError interface {
	error
	Offset() int
}

// InvalidAt reports that the source unit at Offset could not be mapped (a
// lone low surrogate, an illegal multibyte byte, and so on).
type InvalidAt struct{ At int }

func (e InvalidAt) Error() string { return fmt.Sprintf("invalid unit at offset %d", e.At) }
func (e InvalidAt) Offset() int   { return e.At }

// Incomplete reports that the source ended mid-sequence (a high surrogate
// with no low surrogate, a partial multibyte character).
type Incomplete struct{ At int }

func (e Incomplete) Error() string { return fmt.Sprintf("incomplete unit sequence at offset %d", e.At) }
func (e Incomplete) Offset() int   { return e.At }

// OutOfBufferAt reports that a single character required more source units
// than the multibyte unit-maximum allows.
type OutOfBufferAt struct{ At int }

func (e OutOfBufferAt) Error() string {
	return fmt.Sprintf("character too large to transcode at offset %d", e.At)
}
func (e OutOfBufferAt) Offset() int { return e.At }
