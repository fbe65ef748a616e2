// Package id3v2 reads text, comment and picture frames from ID3v2 tags.
package id3v2

import (
	"bytes"
	"fmt"
	"io"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

const headerSize = 10

// Header flags
const (
	flagUnsynchronisation = 0x80
	flagExtendedHeader    = 0x40
)

// Header represents an ID3v2 tag header
type Header struct {
	Version  byte // Major version (2, 3 or 4)
	Revision byte // Minor version
	Flags    byte
	Size     uint32 // Tag size (excluding header), syncsafe
}

// Frame represents a single ID3v2 frame
type Frame struct {
	ID     string // 3 or 4 character frame ID (e.g., "TT2", "TIT2")
	Size   uint32 // Frame size (excluding header)
	Offset int64  // Offset of the frame body
	// Data holds the body plus one trailing zero byte. Some encoders omit
	// the terminator on UTF-8 text.
	Data []byte
}

// Body returns the frame body without the padding byte.
func (f *Frame) Body() []byte {
	return f.Data[:f.Size]
}

// parser implements registry.FormatReader for ID3v2 tags.
type parser struct{}

// Read parses the ID3v2 tag at the start of r.
func (p *parser) Read(r io.ReaderAt, size int64, path string, cfg *types.Config) (*types.Collection, error) {
	log := cfg.Log().With("path", path, "format", types.FormatID3v2)
	sr := binary.NewSafeReader(r, size, path)

	header, err := readHeader(sr)
	if err != nil {
		return nil, err
	}
	log.Debug("id3v2 header", "version", fmt.Sprintf("2.%d.%d", header.Version, header.Revision),
		"flags", header.Flags, "size", header.Size)

	if header.Flags&flagUnsynchronisation != 0 {
		return nil, &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("ID3v2 header flags 0x%02x not supported", header.Flags),
		}
	}

	rd := binary.NewReader(sr, headerSize)
	if header.Flags&flagExtendedHeader != 0 {
		if err := skipExtendedHeader(rd, header); err != nil {
			return nil, err
		}
	}

	b := types.NewBuilder(types.FormatID3v2)
	end := headerSize + int64(header.Size)
	for rd.Offset() < end {
		frame, err := readFrame(rd, header, cfg.Limit())
		if err != nil {
			return nil, err
		}
		if frame == nil {
			// Null frame ID: padding or garbage. Frames so far are kept.
			log.Debug("id3v2 end of frames", "offset", rd.Offset())
			break
		}
		log.Debug("id3v2 frame", "frame", frame.ID, "offset", frame.Offset, "size", frame.Size)
		decodeFrame(frame, b, log)
	}

	return b.Build(), nil
}

// readHeader reads the 10-byte tag header. Anything that does not start
// with "ID3" is not recognized.
func readHeader(sr *binary.SafeReader) (Header, error) {
	buf := make([]byte, headerSize)
	if err := sr.ReadAt(buf, 0, "ID3v2 header"); err != nil {
		return Header{}, types.NotRecognized("id3v2", err)
	}
	if string(buf[0:3]) != "ID3" {
		return Header{}, fmt.Errorf("id3v2: missing ID3 marker: %w", types.ErrNotRecognized)
	}
	return Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     binary.Syncsafe(buf[6:10]),
	}, nil
}

// skipExtendedHeader moves past the extended header. Its size is syncsafe
// and self-inclusive in v2.4, plain and exclusive of the size field in v2.3.
func skipExtendedHeader(rd *binary.Reader, header Header) error {
	sizeBuf := make([]byte, 4)
	if err := rd.ReadFull(sizeBuf, "extended header size"); err != nil {
		return err
	}
	var n int64
	if header.Version >= 4 {
		n = int64(binary.Syncsafe(sizeBuf)) - 4
	} else {
		n = int64(uint32(sizeBuf[0])<<24 | uint32(sizeBuf[1])<<16 | uint32(sizeBuf[2])<<8 | uint32(sizeBuf[3]))
	}
	rd.Skip(max(n, 0))
	return nil
}

// readFrame reads one frame header and body. It returns nil, nil when the
// frame ID starts with a null byte.
func readFrame(rd *binary.Reader, header Header, limit int64) (*Frame, error) {
	idLen := 4
	if header.Version < 3 {
		idLen = 3
	}

	id := make([]byte, idLen)
	if err := rd.ReadFull(id, "frame ID"); err != nil {
		return nil, err
	}
	if id[0] == 0 {
		return nil, nil
	}

	var frameSize uint32
	if header.Version >= 3 {
		// 4-byte size plus 2 bytes of flags.
		rest := make([]byte, 6)
		if err := rd.ReadFull(rest, "frame header"); err != nil {
			return nil, err
		}
		if header.Version >= 4 {
			frameSize = binary.Syncsafe(rest[0:4])
		} else {
			frameSize = uint32(rest[0])<<24 | uint32(rest[1])<<16 | uint32(rest[2])<<8 | uint32(rest[3])
		}
	} else {
		rest := make([]byte, 3)
		if err := rd.ReadFull(rest, "frame header"); err != nil {
			return nil, err
		}
		frameSize = binary.Uint24(rest)
	}

	frameID := string(cString(id))
	what := "frame " + frameID
	if frameSize < 1 {
		return nil, &types.TruncatedError{
			Path:   rd.Path(),
			What:   what,
			Offset: rd.Offset(),
			Length: 1,
			Size:   rd.Offset(),
		}
	}

	offset := rd.Offset()
	if err := rd.Check(offset, int64(frameSize), what); err != nil {
		return nil, err
	}
	if err := binary.CheckAlloc(rd.Path(), what, int64(frameSize)+1, limit); err != nil {
		return nil, err
	}
	data := make([]byte, frameSize+1)
	if err := rd.ReadFull(data[:frameSize], what); err != nil {
		return nil, err
	}

	return &Frame{ID: frameID, Size: frameSize, Offset: offset, Data: data}, nil
}

func cString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// init registers the ID3v2 parser
func init() {
	registry.Register(types.FormatID3v2, &parser{})
}
