package strffi

import "fmt"

// Encoding is the marker interface implemented by each named encoding. It
// carries a debug prefix and a static pair of zero units, used to cheaply
// materialise empty borrowed strings for both single- and double-terminated
// structures (spec.md §3 "static pair of zero units").
type Encoding[U Unit] interface {
	// Prefix is this encoding's debug-output prefix, e.g. "Mb", "Utf8".
	Prefix() string

	// ZeroUnits returns two zero units, backing Structure.Default for
	// ZeroTerm (needs one) and DoubleZeroTerm (needs two).
	ZeroUnits() [2]U

	// AsciiCompatible reports whether this encoding's printable-ASCII
	// range debug-renders as the literal character. Encodings that are
	// known to never be ASCII-compatible byte-for-byte (modified UTF-8,
	// raw/opaque encodings, UTF-16) always numeric-escape instead.
	AsciiCompatible() bool
}

// DebugUnit renders a single unit per the per-unit debug policy in spec.md
// §4.1: printable ASCII direct, otherwise a numeric escape sized to the
// unit's width.
func DebugUnit[U Unit](e interface{ AsciiCompatible() bool }, raw uint64, width int) string {
	if e.AsciiCompatible() && raw >= 0x20 && raw < 0x7F {
		return string(rune(raw))
	}
	switch width {
	case 1:
		return fmt.Sprintf("\\x%02x", raw)
	case 2:
		return fmt.Sprintf("\\u%04x", raw)
	default:
		return fmt.Sprintf("\\U%08x", raw)
	}
}

// Mb is the host C runtime's thread-local multibyte encoding, typically
// represented in foreign interfaces as char*. This is not ASCII, UTF-8, or
// the current Windows ANSI codepage — it is whatever the current locale
// says it is.
type Mb struct{}

func (Mb) Prefix() string        { return "Mb" }
func (Mb) ZeroUnits() [2]MbUnit  { return [2]MbUnit{} }
func (Mb) AsciiCompatible() bool { return true }

// Wide is the host C runtime's thread-local wide encoding (wchar_t).
type Wide struct{}

func (Wide) Prefix() string         { return "W" }
func (Wide) ZeroUnits() [2]WideUnit { return [2]WideUnit{} }
func (Wide) AsciiCompatible() bool  { return true }

// Ascii is 7-bit ASCII.
type Ascii struct{}

func (Ascii) Prefix() string          { return "A" }
func (Ascii) ZeroUnits() [2]AsciiUnit { return [2]AsciiUnit{} }
func (Ascii) AsciiCompatible() bool   { return true }

// Jni is JNI modified UTF-8 (embedded NUL encoded as 0xC0 0x80, supplementary
// characters encoded as surrogate pairs each UTF-8 encoded individually).
// This library does not interpret the modification itself — Jni is treated
// as an opaque byte encoding for structure/allocator purposes, and only the
// debug-rendering policy treats it specially (always numeric-escaped).
type Jni struct{}

func (Jni) Prefix() string        { return "Jni" }
func (Jni) ZeroUnits() [2]JniUnit { return [2]JniUnit{} }
func (Jni) AsciiCompatible() bool { return false }

// Latin1 is 8-bit Latin-1 (ISO-8859-1).
type Latin1 struct{}

func (Latin1) Prefix() string           { return "L" }
func (Latin1) ZeroUnits() [2]Latin1Unit { return [2]Latin1Unit{} }
func (Latin1) AsciiCompatible() bool    { return true }

// Raw8 is an uninterpreted 8-bit encoding: no assumption is made about unit
// values beyond zero/non-zero.
type Raw8 struct{}

func (Raw8) Prefix() string         { return "Raw8" }
func (Raw8) ZeroUnits() [2]Raw8Unit { return [2]Raw8Unit{} }
func (Raw8) AsciiCompatible() bool  { return false }

// Raw16 is an uninterpreted 16-bit encoding.
type Raw16 struct{}

func (Raw16) Prefix() string          { return "Raw16" }
func (Raw16) ZeroUnits() [2]Raw16Unit { return [2]Raw16Unit{} }
func (Raw16) AsciiCompatible() bool   { return false }

// Utf8Enc is possibly-invalid UTF-8: raw storage, no validity invariant.
type Utf8Enc struct{}

func (Utf8Enc) Prefix() string         { return "Utf8" }
func (Utf8Enc) ZeroUnits() [2]Utf8Unit { return [2]Utf8Unit{} }
func (Utf8Enc) AsciiCompatible() bool  { return true }

// Utf16Enc is possibly-invalid UTF-16.
type Utf16Enc struct{}

func (Utf16Enc) Prefix() string          { return "Utf16" }
func (Utf16Enc) ZeroUnits() [2]Utf16Unit { return [2]Utf16Unit{} }
func (Utf16Enc) AsciiCompatible() bool   { return false }

// Utf32Enc is possibly-invalid UTF-32.
type Utf32Enc struct{}

func (Utf32Enc) Prefix() string          { return "Utf32" }
func (Utf32Enc) ZeroUnits() [2]Utf32Unit { return [2]Utf32Unit{} }
func (Utf32Enc) AsciiCompatible() bool   { return true }

// WinAnsi is the Windows ANSI codepage (e.g. CP1252), thread/process
// configured, analogous in role to Mb but specifically the Windows-native
// single/double-byte codepage family rather than the C runtime's locale.
type WinAnsi struct{}

func (WinAnsi) Prefix() string            { return "Wa" }
func (WinAnsi) ZeroUnits() [2]WinAnsiUnit { return [2]WinAnsiUnit{} }
func (WinAnsi) AsciiCompatible() bool     { return true }

// WinWide is Windows wide (UTF-16).
type WinWide struct{}

func (WinWide) Prefix() string            { return "Ww" }
func (WinWide) ZeroUnits() [2]WinWideUnit { return [2]WinWideUnit{} }
func (WinWide) AsciiCompatible() bool     { return false }

// Unicode is the validated-Unicode-scalar encoding. Not for use in foreign
// signatures — see UnicodeUnit.
type Unicode struct{}

func (Unicode) Prefix() string            { return "U" }
func (Unicode) ZeroUnits() [2]UnicodeUnit { return [2]UnicodeUnit{} }
func (Unicode) AsciiCompatible() bool     { return true }
