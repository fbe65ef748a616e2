// Package encoding converts tag text from the encodings used by ID3v2 into
// UTF-8.
//
// Conversion never fails. Values follow C-string semantics: they end at the
// first terminator for their encoding (a NUL byte, or a NUL code unit for
// UTF-16).
package encoding

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is the text encoding selector byte that prefixes ID3v2 text
// fields.
type Encoding byte

const (
	ISO88591 Encoding = 0 // ISO-8859-1
	UTF16    Encoding = 1 // UTF-16 with byte-order mark
	UTF16BE  Encoding = 2 // UTF-16 without byte-order mark
	UTF8     Encoding = 3 // UTF-8
)

func (e Encoding) String() string {
	switch e {
	case ISO88591:
		return "ISO-8859-1"
	case UTF16:
		return "UTF-16"
	case UTF16BE:
		return "UTF-16BE"
	case UTF8:
		return "UTF-8"
	default:
		return "unknown"
	}
}

// Known reports whether e is one of the four defined selectors.
func (e Encoding) Known() bool {
	return e <= UTF8
}

// Width returns the size in bytes of a terminator for e.
func (e Encoding) Width() int {
	if e == UTF16 || e == UTF16BE {
		return 2
	}
	return 1
}

// DecodeField decodes a selector-prefixed field: the first byte picks the
// encoding for the rest. An unknown selector decodes the whole field,
// selector included, as ISO-8859-1.
func DecodeField(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	enc := Encoding(b[0])
	if !enc.Known() {
		return Latin1(b)
	}
	return Decode(enc, b[1:])
}

// Decode converts b from enc to UTF-8. Unknown encodings are treated as
// ISO-8859-1.
func Decode(enc Encoding, b []byte) string {
	switch enc {
	case UTF16:
		return DecodeUTF16(b, true)
	case UTF16BE:
		return DecodeUTF16(b, false)
	case UTF8:
		return UTF8String(b)
	default:
		return Latin1(b)
	}
}

// Latin1 converts ISO-8859-1 bytes to UTF-8. Bytes below 0x80 pass through;
// every other byte becomes a two-byte sequence.
func Latin1(b []byte) string {
	b = cString(b)
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// UTF8String copies UTF-8 bytes up to the first NUL.
func UTF8String(b []byte) string {
	return string(cString(b))
}

// DecodeUTF16 converts UTF-16 to UTF-8.
//
// With bom set, a leading FF FE selects little-endian and FE FF big-endian;
// either is skipped. Without a recognizable mark the data is read
// little-endian. With bom unset the data is big-endian.
//
// Surrogate pairs combine into one code point. A high surrogate at the very
// end of the input ends the output there. Other unpaired surrogates become
// U+FFFD. A trailing odd byte is ignored.
func DecodeUTF16(b []byte, bom bool) string {
	bigEndian := !bom
	if bom && len(b) >= 2 {
		switch {
		case b[0] == 0xFF && b[1] == 0xFE:
			b = b[2:]
		case b[0] == 0xFE && b[1] == 0xFF:
			bigEndian = true
			b = b[2:]
		}
	}

	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		var u uint16
		if bigEndian {
			u = uint16(b[i])<<8 | uint16(b[i+1])
		} else {
			u = uint16(b[i+1])<<8 | uint16(b[i])
		}
		if u == 0 {
			break
		}
		units = append(units, u)
	}

	out := make([]byte, 0, len(units)*3)
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case utf16.IsSurrogate(rune(u)) && u < 0xDC00:
			if i+1 == len(units) {
				// Source exhausted mid-pair.
				return string(out)
			}
			r := utf16.DecodeRune(rune(u), rune(units[i+1]))
			if r != utf8.RuneError {
				i++
			}
			out = utf8.AppendRune(out, r)
		default:
			// Lone low surrogates encode as U+FFFD.
			out = utf8.AppendRune(out, rune(u))
		}
	}
	return string(out)
}

// FieldEnd returns the index just past the first terminator in b for enc,
// or len(b) if there is none. UTF-16 terminators are aligned to code units.
func FieldEnd(enc Encoding, b []byte) int {
	if enc.Width() == 1 {
		if i := bytes.IndexByte(b, 0); i >= 0 {
			return i + 1
		}
		return len(b)
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i + 2
		}
	}
	return len(b)
}

func cString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
