// Package ogg reads the Vorbis comment header from Ogg streams.
package ogg

import (
	"fmt"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

const (
	pageHeaderSize = 27
	capturePattern = "OggS"
)

// page is the framing of one Ogg page. The payload is not read.
type page struct {
	Offset       int64
	HeaderType   byte   // Bit flags: 0x01=continued, 0x02=BOS, 0x04=EOS
	SerialNumber uint32 // Logical bitstream identifier
	Sequence     uint32 // Page sequence number
	Segments     int    // Length of the segment table
	DataSize     int64  // Sum of the segment sizes
}

// HeaderSize is the fixed header plus the segment table.
func (p *page) HeaderSize() int64 {
	return pageHeaderSize + int64(p.Segments)
}

// Size is the total page size including the payload.
func (p *page) Size() int64 {
	return p.HeaderSize() + p.DataSize
}

// readPage reads the page header at offset. It returns
// types.ErrNotRecognized when the capture pattern is missing or lies past the
// end of the data, and *types.TruncatedError when the header itself is cut
// short. Read failures are returned as they are.
func readPage(sr *binary.SafeReader, offset int64) (*page, error) {
	rd := binary.NewReader(sr, offset)
	magic, err := rd.ReadString(len(capturePattern), "Ogg capture pattern")
	if err != nil {
		return nil, types.NotRecognized(fmt.Sprintf("ogg: no page at offset %d", offset), err)
	}
	if magic != capturePattern {
		return nil, fmt.Errorf("ogg: no %s at offset %d: %w", capturePattern, offset, types.ErrNotRecognized)
	}
	if err := sr.Check(offset, pageHeaderSize, "Ogg page header"); err != nil {
		return nil, err
	}

	rd.Skip(1) // stream structure version
	headerType, err := binary.ReadValue[uint8](rd, "Ogg header type")
	if err != nil {
		return nil, err
	}
	rd.Skip(8) // granule position
	serial, err := binary.ReadLE[uint32](sr, rd.Offset(), "Ogg serial number")
	if err != nil {
		return nil, err
	}
	rd.Skip(4)
	sequence, err := binary.ReadLE[uint32](sr, rd.Offset(), "Ogg page sequence")
	if err != nil {
		return nil, err
	}
	rd.Skip(8) // sequence number and CRC
	segCount, err := binary.ReadValue[uint8](rd, "Ogg segment count")
	if err != nil {
		return nil, err
	}

	p := &page{
		Offset:       offset,
		HeaderType:   headerType,
		SerialNumber: serial,
		Sequence:     sequence,
		Segments:     int(segCount),
	}

	// Each segment table byte is the size of a segment, 0-255.
	segments, err := rd.ReadBytes(int64(segCount), "Ogg segment table", 0)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		p.DataSize += int64(seg)
	}
	return p, nil
}
