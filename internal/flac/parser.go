// Package flac reads Vorbis comments from FLAC metadata blocks.
package flac

import (
	"fmt"
	"io"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
	"github.com/simonhull/audiotag/internal/vorbis"
)

// Metadata block types
const (
	blockTypeStreamInfo    = 0
	blockTypePadding       = 1
	blockTypeApplication   = 2
	blockTypeSeekTable     = 3
	blockTypeVorbisComment = 4
	blockTypeCueSheet      = 5
	blockTypePicture       = 6
)

var blockNames = map[uint8]string{
	blockTypeStreamInfo:    "STREAMINFO",
	blockTypePadding:       "PADDING",
	blockTypeApplication:   "APPLICATION",
	blockTypeSeekTable:     "SEEKTABLE",
	blockTypeVorbisComment: "VORBIS_COMMENT",
	blockTypeCueSheet:      "CUESHEET",
	blockTypePicture:       "PICTURE",
}

// parser implements registry.FormatReader for FLAC files
type parser struct{}

// Read walks the metadata blocks and decodes the first VORBIS_COMMENT block.
func (p *parser) Read(r io.ReaderAt, size int64, path string, cfg *types.Config) (*types.Collection, error) {
	log := cfg.Log().With("path", path, "format", types.FormatFLAC)
	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "FLAC magic bytes"); err != nil {
		return nil, types.NotRecognized("flac", err)
	}
	if string(magic) != "fLaC" {
		return nil, fmt.Errorf("flac: no fLaC marker: %w", types.ErrNotRecognized)
	}

	offset := int64(4) // After "fLaC"
	for {
		header, err := binary.ReadBE[uint32](sr, offset, "metadata block header")
		if err != nil {
			return nil, types.NotRecognized("flac", err)
		}

		isLast := header>>31 == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		offset += 4

		log.Debug("flac block", "block", blockName(blockType), "offset", offset, "size", blockLength, "last", isLast)

		if blockType == blockTypeVorbisComment {
			return readComments(sr, offset, blockLength, cfg)
		}

		offset += blockLength
		if isLast {
			return nil, fmt.Errorf("flac: no VORBIS_COMMENT block: %w", types.ErrNotRecognized)
		}
	}
}

func readComments(sr *binary.SafeReader, offset, length int64, cfg *types.Config) (*types.Collection, error) {
	data, err := sr.ReadBytes(offset, length, "VORBIS_COMMENT block", cfg.Limit())
	if err != nil {
		return nil, err
	}

	b := types.NewBuilder(types.FormatFLAC)
	blk, err := vorbis.Parse(binary.NewCursor(data, offset, sr.Path(), "VORBIS_COMMENT"), b)
	if err != nil {
		return nil, err
	}
	cfg.Log().Debug("vorbis comments", "path", sr.Path(), "vendor", blk.Vendor, "count", blk.Count, "kept", b.Len())
	return b.Build(), nil
}

func blockName(t uint8) string {
	if name, ok := blockNames[t]; ok {
		return name
	}
	return fmt.Sprintf("reserved(%d)", t)
}

// init registers the FLAC parser
func init() {
	registry.Register(types.FormatFLAC, &parser{})
}
