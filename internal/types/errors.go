package types

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Each typed error below matches exactly one.
var (
	// ErrNotRecognized is returned by a reader when the input is not its
	// container format. The dispatcher cascades to the next reader on it and
	// never surfaces it to callers.
	ErrNotRecognized = errors.New("format not recognized")

	ErrRead              = errors.New("read error")
	ErrTruncated         = errors.New("truncated")
	ErrOutOfMemory       = errors.New("out of memory")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ReadError is returned when the file cannot be opened or read at the
// system level.
type ReadError struct {
	Err  error
	Path string
	Op   string // "open", "stat", "read"
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Path, e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRead.
func (e *ReadError) Is(target error) bool { return target == ErrRead }

// TruncatedError is returned when a recognized tag, frame, block or atom is
// shorter than its own declared size.
type TruncatedError struct {
	Path   string
	What   string
	Offset int64
	Length int64
	Size   int64 // bytes actually available
}

func (e *TruncatedError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// Is reports whether target is ErrTruncated.
func (e *TruncatedError) Is(target error) bool { return target == ErrTruncated }

// OutOfMemoryError is returned when a declared length fits inside the
// file but exceeds the configured allocation ceiling.
type OutOfMemoryError struct {
	Path  string
	What  string
	Size  int64
	Limit int64
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("%s: refusing to allocate %d bytes for %s (limit %d)",
		e.Path, e.Size, e.What, e.Limit)
}

// Is reports whether target is ErrOutOfMemory.
func (e *OutOfMemoryError) Is(target error) bool { return target == ErrOutOfMemory }

// UnsupportedFormatError is returned when a container is recognized but uses
// a feature that is not supported, or when no reader recognizes the file.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// NotRecognized marks a short read made while probing for a format as a
// cascade signal. Any other error, a failing disk included, is returned
// unchanged so dispatch stops on it.
func NotRecognized(format string, err error) error {
	if errors.Is(err, ErrTruncated) {
		return fmt.Errorf("%s: %w: %w", format, ErrNotRecognized, err)
	}
	return err
}

// IsFatal reports whether err must abort dispatch instead of cascading to
// the next reader.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrNotRecognized)
}
