package strffi

import (
	"strings"
	"unsafe"
)

// BorrowedStr is a re-borrowable view over a foreign string: it never
// allocates and never frees, bounded entirely by the lifetime of whatever
// foreign pointer produced it, the same relationship a Go []byte has to
// the array it slices (original_source/src/lib.rs's BorrowedStr, with S's
// associated RefTarget collapsed into the data pointer + length pair that
// Go's interfaces can express directly).
type BorrowedStr[S Structure[U], E Encoding[U], U Unit] struct {
	data   unsafe.Pointer
	length int
}

// FromForeignPtr borrows a pointer-shaped foreign string (ZeroTerm,
// DoubleZeroTerm, PrefixLen, Bstr). ok is false when ptr is null.
func FromForeignPtr[S PointerStructure[U], E Encoding[U], U Unit](ptr unsafe.Pointer) (BorrowedStr[S, E, U], bool) {
	var s S
	data, length, ok := s.BorrowPtr(ptr)
	if !ok {
		return BorrowedStr[S, E, U]{}, false
	}
	return BorrowedStr[S, E, U]{data: data, length: length}, true
}

// FromForeignSlice borrows a pointer+length-shaped foreign string (Slice,
// GoSlice). ok is false when ptr is null.
func FromForeignSlice[S SliceStructure[U], E Encoding[U], U Unit](ptr unsafe.Pointer, length int) (BorrowedStr[S, E, U], bool) {
	var s S
	data, outLength, ok := s.BorrowSlice(ptr, length)
	if !ok {
		return BorrowedStr[S, E, U]{}, false
	}
	return BorrowedStr[S, E, U]{data: data, length: outLength}, true
}

// IntoForeignPtr surfaces the raw pointer for passing back across an FFI
// boundary that expects this structure's pointer shape. It does not affect
// ownership; for owned-allocation handoff see OwnedStr.Relinquish.
func (b BorrowedStr[S, E, U]) IntoForeignPtr() unsafe.Pointer {
	return b.data
}

// IntoForeignSlice surfaces (pointer, length) for an FFI boundary that
// expects this structure's slice shape.
func (b BorrowedStr[S, E, U]) IntoForeignSlice() (unsafe.Pointer, int) {
	return b.data, b.length
}

// Units returns a read-only view of the data units, excluding any
// structural terminator/prefix.
func (b BorrowedStr[S, E, U]) Units() []U {
	if b.data == nil {
		return nil
	}
	return unsafe.Slice((*U)(b.data), b.length)
}

// UnitsWithTerminator returns the data units plus whatever structural
// terminator this structure appends, for structures that implement
// ZeroTerminated. Structures without a terminator (Slice, GoSlice,
// PrefixLen) do not satisfy ZeroTerminated, so this helper only compiles
// against S values that do.
func UnitsWithTerminator[S ZeroTerminated[U], E Encoding[U], U Unit](b BorrowedStr[S, E, U]) []U {
	var s S
	return s.UnitsWithTerminator(b.data, b.length)
}

// UnitsMut hands back a mutable view aliasing the foreign allocation.
// Callers must ensure no structural invariant (e.g. a zero-terminated
// string's terminator) is violated; see UnitsMutChecked for a structure
// that can validate this at the type level via MutationSafe.
func (b BorrowedStr[S, E, U]) UnitsMut() []U {
	if b.length == 0 {
		return nil
	}
	return unsafe.Slice((*U)(b.data), b.length)
}

// UnitsMutChecked is UnitsMut restricted to structures that implement
// MutationSafe, where in-place mutation can never corrupt the structure's
// own bookkeeping (Slice, GoSlice — never ZeroTerm, where writing a zero
// mid-string silently truncates it on the next scan).
func UnitsMutChecked[S interface {
	SliceStructure[U]
	MutationSafe
}, E Encoding[U], U Unit](b BorrowedStr[S, E, U]) []U {
	return b.UnitsMut()
}

// AsSlice returns the data units as a Go slice, the same view Units
// returns. It does not re-borrow the string as a BorrowedStr of the Slice
// structure.
func (b BorrowedStr[S, E, U]) AsSlice() []U {
	return b.Units()
}

// Len returns the number of data units, excluding any structural suffix.
func (b BorrowedStr[S, E, U]) Len() int { return b.length }

// IsNil reports whether this BorrowedStr wraps a null foreign pointer.
func (b BorrowedStr[S, E, U]) IsNil() bool { return b.data == nil }

// ToOwned copies this borrowed view into a freshly allocated OwnedStr using
// a, preserving structure and encoding.
func ToOwned[S Structure[U], E Encoding[U], U Unit, A Allocator](b BorrowedStr[S, E, U], a A) (OwnedStr[S, E, U, A], error) {
	return NewOwnedFromUnits[S, E, U, A](b.Units(), a)
}

// Transcoder is a lazy, pull-driven source of destination units: each call
// to Next decodes exactly as much of the underlying source as is needed to
// produce one more destination unit, without buffering the whole string
// (spec.md §4.6). more is false once the source is exhausted; a non-nil
// err means the source could not be decoded starting at the position Next
// was about to read and no unit is produced for that call.
type Transcoder[Dst Unit] interface {
	Next() (u Dst, err TranscodeError, more bool)
}

// TranscodeTo drains a Transcoder, typically constructed over
// src.Units() by one of the transcode package constructors, into a fresh
// OwnedStr of the destination structure/encoding/unit/allocator.
func TranscodeTo[S Structure[U], E Encoding[U], U Unit, A Allocator](t Transcoder[U], a A) (OwnedStr[S, E, U, A], error) {
	var out []U
	for {
		u, terr, more := t.Next()
		if terr != nil {
			return OwnedStr[S, E, U, A]{}, terr
		}
		if !more {
			break
		}
		out = append(out, u)
	}
	return NewOwnedFromUnits[S, E, U, A](out, a)
}

// IntoHostString decodes this borrowed view into a native Go string via the
// caller-supplied toRune decoder, writing one U+FFFD replacement character
// for each unit toRune rejects.
func (b BorrowedStr[S, E, U]) IntoHostString(toRune func(U) (rune, bool, int)) string {
	var sb strings.Builder
	units := b.Units()
	for i := 0; i < len(units); {
		r, ok, width := toRune(units[i])
		if !ok {
			sb.WriteRune('�')
			i++
			continue
		}
		sb.WriteRune(r)
		i += width
	}
	return sb.String()
}

// String renders a debug form: "<structure><encoding>\"<escaped units>\"",
// e.g. `ZMb"g\xc2\xaar\xc3\xa7on"` for the UTF-8 bytes of "gªrçon".
func (b BorrowedStr[S, E, U]) String() string {
	var s S
	var e E
	var sb strings.Builder
	sb.WriteString(s.Name())
	sb.WriteString(e.Prefix())
	sb.WriteByte('"')
	for _, u := range b.Units() {
		sb.WriteString(debugOneUnit(e, u))
	}
	sb.WriteByte('"')
	return sb.String()
}

func debugOneUnit[U Unit](e interface{ AsciiCompatible() bool }, u U) string {
	raw, width := rawBitsOf(u)
	return DebugUnit[U](e, raw, width)
}

// rawBitsOf extracts the unsigned bit pattern and byte width of a Unit
// value for debug rendering, the same reflective fallback original_source
// uses in its Debug impls before dispatching on the concrete Unit type.
func rawBitsOf[U Unit](u U) (uint64, int) {
	switch v := any(u).(type) {
	case MbUnit:
		return uint64(v.V), 1
	case WideUnit:
		return uint64(uint32(v.V)), 4
	case AsciiUnit:
		return uint64(v.V), 1
	case JniUnit:
		return uint64(v.V), 1
	case Latin1Unit:
		return uint64(v.V), 1
	case Raw8Unit:
		return uint64(v.V), 1
	case Raw16Unit:
		return uint64(v.V), 2
	case Utf8Unit:
		return uint64(v.V), 1
	case Utf16Unit:
		return uint64(v.V), 2
	case Utf32Unit:
		return uint64(v.V), 4
	case WinAnsiUnit:
		return uint64(v.V), 1
	case WinWideUnit:
		return uint64(v.V), 2
	case UnicodeUnit:
		return uint64(v.V), 4
	default:
		return 0, 1
	}
}
