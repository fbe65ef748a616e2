// Package vorbis parses Vorbis comment blocks.
//
// Vorbis comments are used by both FLAC and Ogg Vorbis. The block layout is
// identical in both: a little-endian length-prefixed vendor string, a comment
// count, then that many length-prefixed "KEY=VALUE" UTF-8 strings.
package vorbis

import (
	"bytes"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// Block describes what was read from a comment block.
type Block struct {
	Vendor string
	// Count is the number of comments the block declares.
	Count uint32
	// Read is the number of comments actually consumed, including those
	// dropped for lacking '='.
	Read uint32
}

// Parse reads a comment block from c, appending every well-formed comment
// to b in order. Keys keep their case; values are copied verbatim.
//
// If a declared length runs past the buffer, Parse returns a
// *types.TruncatedError. Comments parsed before that point stay in b.
func Parse(c *binary.Cursor, b *types.Builder) (Block, error) {
	var blk Block

	vendorLen, err := c.Uint32LE("vendor length")
	if err != nil {
		return blk, err
	}
	vendor, err := c.Bytes(int(vendorLen), "vendor string")
	if err != nil {
		return blk, err
	}
	blk.Vendor = string(vendor)

	if blk.Count, err = c.Uint32LE("comment count"); err != nil {
		return blk, err
	}

	for blk.Read < blk.Count {
		n, err := c.Uint32LE("comment length")
		if err != nil {
			return blk, err
		}
		comment, err := c.Bytes(int(n), "comment")
		if err != nil {
			return blk, err
		}
		blk.Read++

		if key, value, ok := ParseComment(comment); ok {
			b.AddText(string(key), value)
		}
	}
	return blk, nil
}

// ParseComment splits a single "KEY=VALUE" comment at the first '='.
// It reports false when there is no '='.
func ParseComment(comment []byte) (key, value []byte, ok bool) {
	return bytes.Cut(comment, []byte{'='})
}
