// Package binary provides bounds-checked binary reading primitives.
//
// Every read is checked against the declared size before any allocation.
// Violations are reported as *types.TruncatedError, allocations above the
// configured ceiling as *types.OutOfMemoryError, and failures of the
// underlying reader as *types.ReadError.
package binary

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/simonhull/audiotag/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and typed errors.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// Check reports whether n bytes at off lie inside the reader.
func (sr *SafeReader) Check(off, n int64, what string) error {
	if off < 0 || n < 0 || off > sr.size || n > sr.size-off {
		return &types.TruncatedError{Path: sr.path, What: what, Offset: off, Length: n, Size: sr.size}
	}
	return nil
}

// ReadAt fills b from the given offset.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if err := sr.Check(off, int64(len(b)), what); err != nil {
		return err
	}

	n, err := sr.r.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		// The source is shorter than it claimed to be.
		return &types.TruncatedError{Path: sr.path, What: what, Offset: off, Length: int64(len(b)), Size: off + int64(n)}
	}
	return &types.ReadError{Path: sr.path, Op: "read", Err: err}
}

// ReadBytes allocates and reads n bytes at off. Bounds are checked first,
// then the allocation ceiling.
func (sr *SafeReader) ReadBytes(off, n int64, what string, limit int64) ([]byte, error) {
	if err := sr.Check(off, n, what); err != nil {
		return nil, err
	}
	if err := CheckAlloc(sr.path, what, n, limit); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// CheckAlloc returns an *types.OutOfMemoryError when n exceeds limit.
func CheckAlloc(path, what string, n, limit int64) error {
	if limit > 0 && n > limit {
		return &types.OutOfMemoryError{Path: path, What: what, Size: n, Limit: limit}
	}
	return nil
}

func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
}

// NewReader creates a new Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// ReadValue reads a big-endian numeric value and advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	val, err := ReadBE[T](r.SafeReader, r.offset, what)
	if err != nil {
		return val, err
	}
	r.offset += int64(sizeOf[T]())
	return val, nil
}

// ReadFull fills b and advances the offset.
func (r *Reader) ReadFull(b []byte, what string) error {
	if err := r.SafeReader.ReadAt(b, r.offset, what); err != nil {
		return err
	}
	r.offset += int64(len(b))
	return nil
}

// ReadBytes allocates n bytes, reads them and advances the offset.
func (r *Reader) ReadBytes(n int64, what string, limit int64) ([]byte, error) {
	buf, err := r.SafeReader.ReadBytes(r.offset, n, what, limit)
	if err != nil {
		return nil, err
	}
	r.offset += n
	return buf, nil
}

// ReadString reads a string of the given length and advances the offset.
func (r *Reader) ReadString(length int, what string) (string, error) {
	buf := make([]byte, length)
	if err := r.ReadFull(buf, what); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the offset by n bytes.
func (r *Reader) Skip(n int64) {
	r.offset += n
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Remaining returns the number of bytes between the offset and the end.
func (r *Reader) Remaining() int64 {
	return max(r.size-r.offset, 0)
}

var (
	be = binary.BigEndian
	le = binary.LittleEndian
)
