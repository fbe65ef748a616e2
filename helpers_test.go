package audiotag_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile stores data under a fresh temp directory and returns its path.
func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func syncsafe(n int) []byte {
	return []byte{byte(n >> 21 & 0x7F), byte(n >> 14 & 0x7F), byte(n >> 7 & 0x7F), byte(n & 0x7F)}
}

// id3Frame builds an ID3v2.3 frame with an ISO-8859-1 body.
func id3Frame(id string, value string) []byte {
	body := append([]byte{0}, value...)
	buf := &bytes.Buffer{}
	buf.WriteString(id)
	binary.Write(buf, binary.BigEndian, uint32(len(body)))
	buf.Write([]byte{0, 0})
	buf.Write(body)
	return buf.Bytes()
}

// id3Tag builds an ID3v2.3 tag. extra is added to the declared size.
func id3Tag(extra int, frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	buf := &bytes.Buffer{}
	buf.Write([]byte{'I', 'D', '3', 3, 0, 0})
	buf.Write(syncsafe(len(body) + extra))
	buf.Write(body)
	return buf.Bytes()
}

// vorbisComments builds a Vorbis comment block from KEY=value strings.
func vorbisComments(comments ...string) []byte {
	buf := &bytes.Buffer{}
	vendor := "reference libFLAC 1.4.3 20230623"
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(buf, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(buf, binary.LittleEndian, uint32(len(c)))
		buf.WriteString(c)
	}
	return buf.Bytes()
}

func flacBlock(blockType byte, last bool, data []byte) []byte {
	if last {
		blockType |= 0x80
	}
	n := len(data)
	return append([]byte{blockType, byte(n >> 16), byte(n >> 8), byte(n)}, data...)
}

// streamInfoOnly is a FLAC stream without a VORBIS_COMMENT block.
func streamInfoOnly() []byte {
	return append([]byte("fLaC"), flacBlock(0, true, make([]byte, 34))...)
}

func flacFile(comments ...string) []byte {
	data := append([]byte("fLaC"), flacBlock(0, false, make([]byte, 34))...)
	return append(data, flacBlock(4, true, vorbisComments(comments...))...)
}

func oggPage(headerType byte, seq uint32, body []byte) []byte {
	var lacing []byte
	n := len(body)
	for n >= 255 {
		lacing = append(lacing, 255)
		n -= 255
	}
	lacing = append(lacing, byte(n))

	buf := &bytes.Buffer{}
	buf.WriteString("OggS")
	buf.Write([]byte{0, headerType})
	buf.Write(make([]byte, 8)) // granule position
	binary.Write(buf, binary.LittleEndian, uint32(0x1234))
	binary.Write(buf, binary.LittleEndian, seq)
	buf.Write(make([]byte, 4)) // CRC, not verified
	buf.WriteByte(byte(len(lacing)))
	buf.Write(lacing)
	buf.Write(body)
	return buf.Bytes()
}

func oggFile(comments ...string) []byte {
	ident := append([]byte("\x01vorbis"), make([]byte, 23)...)
	comment := append([]byte("\x03vorbis"), vorbisComments(comments...)...)
	comment = append(comment, 1) // framing bit
	return append(oggPage(0x02, 0, ident), oggPage(0, 1, comment)...)
}

func mp4Atom(atomType string, data ...[]byte) []byte {
	body := bytes.Join(data, nil)
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(8+len(body)))
	buf.WriteString(atomType)
	buf.Write(body)
	return buf.Bytes()
}

func mp4Item(itemType string, dataType uint32, value []byte) []byte {
	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header, dataType)
	return mp4Atom(itemType, mp4Atom("data", header, value))
}

func mp4File(items ...[]byte) []byte {
	ftyp := mp4Atom("ftyp", []byte("M4A \x00\x00\x00\x00M4A mp42"))
	meta := mp4Atom("meta", []byte{0, 0, 0, 0}, mp4Atom("ilst", items...))
	return append(ftyp, mp4Atom("moov", mp4Atom("udta", meta))...)
}

// logLines returns the records in a text-handler log whose msg matches.
func logLines(log, msg string) []string {
	var out []string
	for line := range strings.Lines(log) {
		if strings.Contains(line, `msg="`+msg+`"`) {
			out = append(out, line)
		}
	}
	return out
}
