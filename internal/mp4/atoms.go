// Package mp4 reads iTunes-style metadata items from MP4/M4A/M4B files.
package mp4

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

const (
	// dataHeaderSize covers the data atom header plus its type and locale
	// fields. The value follows immediately.
	dataHeaderSize = 16

	dataTypeText = 1
	dataTypeJPEG = 13

	copyrightSign = 0xA9
)

// Item is one child atom of ilst: a metadata key such as ©nam or covr,
// holding a data atom.
//
//	[4 bytes] data atom size
//	[4 bytes] "data"
//	[4 bytes] data type (version + flags)
//	[4 bytes] locale
//	[remaining] value
type Item struct {
	Type    [4]byte
	Offset  int64 // file offset of Payload
	Payload []byte
}

// Name returns the tag name for the item: the three characters after the
// copyright sign, or the whole FourCC.
func (it *Item) Name() string {
	if it.Type[0] == copyrightSign {
		return string(it.Type[1:])
	}
	return string(it.Type[:])
}

// IsCover reports whether the item holds cover art.
func (it *Item) IsCover() bool {
	return string(it.Type[:]) == "covr"
}

// coverMIME maps a covr data type to a MIME type. Only JPEG is
// distinguished; every other subtype is reported as PNG.
func coverMIME(dataType uint32) string {
	if dataType == dataTypeJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// decodeItem stores text items and cover art in b. Items too short to hold
// a data atom header are skipped. A data atom that claims more bytes than
// the item holds is Truncated.
func decodeItem(it *Item, path string, b *types.Builder, log *slog.Logger) error {
	name := it.Name()
	c := binary.NewCursor(it.Payload, it.Offset, path, fmt.Sprintf("atom %q", name))
	if c.Remaining() < dataHeaderSize {
		log.Debug("mp4 skipping short item", "atom", name, "offset", it.Offset, "size", c.Remaining())
		return nil
	}

	dataLen, err := c.Uint32BE("data length")
	if err != nil {
		return err
	}
	if err := c.Skip(4, "data atom type"); err != nil {
		return err
	}
	dataType, err := c.Uint32BE("data type")
	if err != nil {
		return err
	}
	if err := c.Skip(4, "data locale"); err != nil {
		return err
	}
	if dataLen < dataHeaderSize {
		log.Debug("mp4 skipping item with short data atom", "atom", name, "offset", it.Offset, "size", dataLen)
		return nil
	}
	value, err := c.Bytes(int(dataLen-dataHeaderSize), "data value")
	if err != nil {
		return err
	}

	switch {
	case dataType == dataTypeText:
		if i := bytes.IndexByte(value, 0); i >= 0 {
			value = value[:i]
		}
		log.Debug("mp4 text item", "atom", name, "offset", it.Offset, "size", len(value))
		b.AddText(name, value)
	case it.IsCover():
		mime := coverMIME(dataType)
		log.Debug("mp4 cover", "atom", name, "mime", mime, "size", len(value))
		b.SetCover(mime, value)
	default:
		log.Debug("mp4 skipping item", "atom", name, "type", dataType)
	}
	return nil
}
