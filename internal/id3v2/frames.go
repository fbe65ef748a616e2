package id3v2

import (
	"bytes"
	"log/slog"

	"github.com/simonhull/audiotag/internal/encoding"
	"github.com/simonhull/audiotag/internal/types"
)

const (
	pictureFrontCover = 3
	maxMIMELength     = 100
)

// decodeFrame stores the frame in b if it is a kind that is handled:
// text frames, COMM with an empty short description, and front-cover APIC.
// Everything else is skipped.
func decodeFrame(f *Frame, b *types.Builder, log *slog.Logger) {
	switch {
	case f.ID[0] == 'T':
		b.AddString(f.ID, encoding.DecodeField(f.Data))
	case f.ID == "COMM":
		if text, ok := decodeComment(f.Data); ok {
			b.AddString(f.ID, text)
		} else {
			log.Debug("id3v2 skipping COMM with short description", "frame", f.ID, "offset", f.Offset)
		}
	case f.ID == "APIC":
		mime, picType, image, ok := decodePicture(f.Body())
		if !ok {
			log.Debug("id3v2 skipping APIC", "frame", f.ID, "offset", f.Offset)
			return
		}
		log.Debug("id3v2 picture", "mime", mime, "type", picType, "size", len(image))
		if picType == pictureFrontCover {
			if b.HasCover() {
				log.Debug("id3v2 replacing earlier front cover", "offset", f.Offset)
			}
			b.SetCover(mime, image)
		}
	}
}

// decodeComment decodes a COMM body:
//
//	[1 byte]     Text encoding
//	[3 bytes]    Language
//	[terminated] Short description
//	[remaining]  Comment text
//
// Only frames whose short description is empty are decoded.
func decodeComment(data []byte) (string, bool) {
	if len(data) < 5 || data[4] != 0 {
		return "", false
	}
	enc := encoding.Encoding(data[0])
	if !enc.Known() {
		return encoding.Latin1(data), true
	}
	desc := encoding.FieldEnd(enc, data[4:])
	if desc > enc.Width() {
		// A UTF-16 description whose first code unit is not the terminator.
		return "", false
	}
	return encoding.Decode(enc, data[4+desc:]), true
}

// decodePicture parses an APIC body. Only ISO-8859-1 bodies are handled:
//
//	[1 byte]          Text encoding
//	[null-terminated] MIME type
//	[1 byte]          Picture type
//	[null-terminated] Description
//	[remaining]       Picture data
func decodePicture(data []byte) (mime string, picType byte, image []byte, ok bool) {
	if len(data) < 1 || data[0] != byte(encoding.ISO88591) {
		return "", 0, nil, false
	}
	pos := 1

	mimeArea := data[pos:min(len(data), pos+maxMIMELength)]
	mimeEnd := bytes.IndexByte(mimeArea, 0)
	if mimeEnd < 0 {
		return "", 0, nil, false
	}
	mime = string(mimeArea[:mimeEnd])
	pos += mimeEnd + 1

	if pos >= len(data) {
		return "", 0, nil, false
	}
	picType = data[pos]
	pos++

	descEnd := bytes.IndexByte(data[pos:], 0)
	if descEnd < 0 {
		return "", 0, nil, false
	}
	pos += descEnd + 1

	return mime, picType, data[pos:], true
}
