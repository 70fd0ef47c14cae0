package strffi

// Unit is the constraint satisfied by every encoding's atomic storage
// element: trivially copyable (a plain Go value type), comparable, and able
// to report whether it is the distinguished zero unit used as a terminator
// by zero-terminated structures.
//
// Unit intentionally has no Zero() constructor — Go has no associated
// functions, so the zero unit for a given encoding is supplied by that
// Encoding's ZeroUnits method instead (see encoding.go).
type Unit interface {
	comparable
	IsZero() bool
}

// MbUnit is the unit type of the Mb encoding: one byte of the host C
// runtime's thread-local multibyte encoding. Bit-compatible with c_char.
type MbUnit struct{ V byte }

func (u MbUnit) IsZero() bool { return u.V == 0 }

// WideUnit is the unit type of the Wide encoding: one host wchar_t. V is an
// int32 on every platform, so WideUnit is bit-compatible with wchar_t only
// where wchar_t is 4 bytes wide (Linux; internal/platform.HostWideIsUTF32
// true), not where it is 2 bytes wide (Windows).
type WideUnit struct{ V int32 }

func (u WideUnit) IsZero() bool { return u.V == 0 }

// AsciiUnit is the unit type of the Ascii encoding: one 7-bit ASCII byte.
type AsciiUnit struct{ V byte }

func (u AsciiUnit) IsZero() bool { return u.V == 0 }

// JniUnit is the unit type of the Jni (JNI modified UTF-8) encoding.
type JniUnit struct{ V byte }

func (u JniUnit) IsZero() bool { return u.V == 0 }

// Latin1Unit is the unit type of the Latin1 (8-bit Latin-1) encoding.
type Latin1Unit struct{ V byte }

func (u Latin1Unit) IsZero() bool { return u.V == 0 }

// Raw8Unit is the unit type of the Raw8 (uninterpreted 8-bit) encoding.
type Raw8Unit struct{ V byte }

func (u Raw8Unit) IsZero() bool { return u.V == 0 }

// Raw16Unit is the unit type of the Raw16 (uninterpreted 16-bit) encoding.
type Raw16Unit struct{ V uint16 }

func (u Raw16Unit) IsZero() bool { return u.V == 0 }

// Utf8Unit is the unit type of the Utf8Enc (possibly-invalid UTF-8) encoding.
type Utf8Unit struct{ V uint8 }

func (u Utf8Unit) IsZero() bool { return u.V == 0 }

// Utf16Unit is the unit type of the Utf16Enc (possibly-invalid UTF-16) encoding.
type Utf16Unit struct{ V uint16 }

func (u Utf16Unit) IsZero() bool { return u.V == 0 }

// Utf32Unit is the unit type of the Utf32Enc (possibly-invalid UTF-32) encoding.
type Utf32Unit struct{ V uint32 }

func (u Utf32Unit) IsZero() bool { return u.V == 0 }

// WinAnsiUnit is the unit type of the WinAnsi (Windows ANSI codepage) encoding.
type WinAnsiUnit struct{ V byte }

func (u WinAnsiUnit) IsZero() bool { return u.V == 0 }

// WinWideUnit is the unit type of the WinWide (Windows UTF-16) encoding.
type WinWideUnit struct{ V uint16 }

func (u WinWideUnit) IsZero() bool { return u.V == 0 }

// UnicodeUnit is the unit type of the validated Unicode encoding: a Unicode
// scalar value, guaranteed (by construction — every constructor validates)
// to exclude the UTF-16 surrogate range 0xD800..=0xDFFF. Not for use in
// foreign signatures; it exists purely as the hub encoding transcoders pass
// through.
type UnicodeUnit struct{ V rune }

func (u UnicodeUnit) IsZero() bool { return u.V == 0 }

// Rune returns the Go rune this unit represents.
func (u UnicodeUnit) Rune() rune { return u.V }

// NewUnicodeUnit validates cp and returns a UnicodeUnit, or false if cp
// falls in the surrogate range or outside the Unicode codespace.
func NewUnicodeUnit(cp rune) (UnicodeUnit, bool) {
	if cp < 0 || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return UnicodeUnit{}, false
	}
	return UnicodeUnit{V: cp}, true
}
