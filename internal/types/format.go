package types

// Format identifies the container a collection was read from.
//
// The numeric order is the dispatch order: readers are probed from the
// lowest value upwards.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatID3v2 represents an ID3v2 tag, normally at the start of an MP3.
	FormatID3v2
	// FormatFLAC represents a FLAC stream with a Vorbis comment block.
	FormatFLAC
	// FormatOgg represents an Ogg stream carrying a Vorbis comment header.
	FormatOgg
	// FormatMP4 represents MP4/QuickTime files (m4a, m4b, mp4).
	FormatMP4
)

func (f Format) String() string {
	switch f {
	case FormatID3v2:
		return "ID3v2"
	case FormatFLAC:
		return "FLAC"
	case FormatOgg:
		return "Ogg"
	case FormatMP4:
		return "MP4"
	default:
		return "Unknown"
	}
}
