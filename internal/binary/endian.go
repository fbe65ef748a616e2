package binary

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: MP4, ID3v2, FLAC block headers.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: Vorbis comment lengths.
	LittleEndian
)

// ReadLE reads a numeric value of type T at the given offset using little-endian byte order.
//
// Example:
//
//	length, err := binary.ReadLE[uint32](sr, offset, "vorbis comment length")
func ReadLE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, LittleEndian)
}

// ReadBE reads a numeric value of type T at the given offset using big-endian byte order.
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with specified byte order.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	var buf [8]byte
	b := buf[:sizeOf[T]()]
	if err := sr.ReadAt(b, off, what); err != nil {
		return 0, err
	}
	return decode[T](b, endian), nil
}

func decode[T uint8 | uint16 | uint32 | uint64](b []byte, endian Endianness) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(b[0])
	case uint16:
		if endian == LittleEndian {
			return T(le.Uint16(b))
		}
		return T(be.Uint16(b))
	case uint32:
		if endian == LittleEndian {
			return T(le.Uint32(b))
		}
		return T(be.Uint32(b))
	default:
		if endian == LittleEndian {
			return T(le.Uint64(b))
		}
		return T(be.Uint64(b))
	}
}

// Syncsafe decodes a big-endian integer that uses only the low 7 bits of
// each byte, as ID3v2 does for tag sizes and v2.4 frame sizes.
func Syncsafe(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<7 | uint32(c&0x7F)
	}
	return v
}

// Uint24 decodes a 3-byte big-endian integer.
func Uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
