package ogg

import (
	"errors"
	"io"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
	"github.com/simonhull/audiotag/internal/vorbis"
)

const (
	// packetPrefix is the packet type byte plus the "vorbis" signature.
	packetPrefix = 7
	// commentWindow bounds how much of the second page is parsed.
	commentWindow = 4096
)

// parser implements registry.FormatReader for Ogg Vorbis files.
//
// The comment header is expected at the start of the second page. Headers
// that exceed the window or span more than two pages are not supported.
type parser struct{}

// Read locates the second page and parses its comment header.
func (p *parser) Read(r io.ReaderAt, size int64, path string, cfg *types.Config) (*types.Collection, error) {
	log := cfg.Log().With("path", path, "format", types.FormatOgg)
	sr := binary.NewSafeReader(r, size, path)

	first, err := readPage(sr, 0)
	if err != nil {
		return nil, err
	}
	log.Debug("ogg page", "offset", first.Offset, "segments", first.Segments, "size", first.Size())

	second, err := readPage(sr, first.Size())
	if err != nil {
		return nil, err
	}
	log.Debug("ogg page", "offset", second.Offset, "segments", second.Segments, "size", second.Size())

	start := second.Offset + second.HeaderSize()
	if err := sr.Check(start, packetPrefix, "Vorbis comment packet type"); err != nil {
		return nil, err
	}
	start += packetPrefix

	rd := binary.NewReader(sr, start)
	window := min(int64(commentWindow), rd.Remaining())
	data, err := rd.ReadBytes(window, "Vorbis comment header", cfg.Limit())
	if err != nil {
		return nil, err
	}

	b := types.NewBuilder(types.FormatOgg)
	blk, err := vorbis.Parse(binary.NewCursor(data, start, path, "Vorbis comment"), b)
	if err != nil {
		if !errors.Is(err, types.ErrTruncated) || start+window >= size {
			return nil, err
		}
		// The window cut the header short, not the file.
		log.Debug("comment header exceeds window", "window", window, "declared", blk.Count, "read", blk.Read)
	}
	log.Debug("vorbis comments", "vendor", blk.Vendor, "count", blk.Count, "kept", b.Len())
	return b.Build(), nil
}

// init registers the Ogg parser
func init() {
	registry.Register(types.FormatOgg, &parser{})
}
