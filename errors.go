package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// ReadError is an alias to types.ReadError.
// Re-exporting from internal/types to maintain public API.
type ReadError = types.ReadError

// TruncatedError is an alias to types.TruncatedError.
// Re-exporting from internal/types to maintain public API.
type TruncatedError = types.TruncatedError

// OutOfMemoryError is an alias to types.OutOfMemoryError.
// Re-exporting from internal/types to maintain public API.
type OutOfMemoryError = types.OutOfMemoryError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// Sentinels matched by the typed errors above, for use with errors.Is.
var (
	ErrRead              = types.ErrRead
	ErrTruncated         = types.ErrTruncated
	ErrOutOfMemory       = types.ErrOutOfMemory
	ErrUnsupportedFormat = types.ErrUnsupportedFormat
)
