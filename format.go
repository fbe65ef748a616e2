package audiotag

import (
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatID3v2   = types.FormatID3v2
	FormatFLAC    = types.FormatFLAC
	FormatOgg     = types.FormatOgg
	FormatMP4     = types.FormatMP4
)

// Formats returns the supported formats in the order they are probed.
func Formats() []Format {
	return registry.Formats()
}
