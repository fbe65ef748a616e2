// Package registry manages the container readers used by the dispatcher.
package registry

import (
	"io"
	"slices"

	"github.com/simonhull/audiotag/internal/types"
)

// FormatReader is the interface all container readers implement.
type FormatReader interface {
	// Read extracts tags from r. It returns an error wrapping
	// types.ErrNotRecognized when r is not in the reader's format.
	Read(r io.ReaderAt, size int64, path string, cfg *types.Config) (*types.Collection, error)
}

// readers maps formats to their readers.
var readers = make(map[types.Format]FormatReader)

// Register registers a reader for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, reader FormatReader) {
	readers[format] = reader
}

// Get returns the reader for a given format.
// Returns nil if no reader is registered for the format.
func Get(format types.Format) FormatReader {
	return readers[format]
}

// Formats returns the registered formats in dispatch order.
func Formats() []types.Format {
	formats := make([]types.Format, 0, len(readers))
	for f := range readers {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}
