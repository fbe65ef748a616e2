package ogg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	ibinary "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// appendPage appends one Ogg page carrying data to buf.
func appendPage(buf *bytes.Buffer, headerType byte, sequence uint32, data []byte) {
	buf.WriteString("OggS")
	buf.WriteByte(0x00)       // Version
	buf.WriteByte(headerType) // Header type flags
	binary.Write(buf, binary.LittleEndian, uint64(0))
	binary.Write(buf, binary.LittleEndian, uint32(12345)) // Serial number
	binary.Write(buf, binary.LittleEndian, sequence)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // Checksum

	var segments []byte
	for remaining := len(data); remaining > 0; {
		if remaining >= 255 {
			segments = append(segments, 255)
			remaining -= 255
		} else {
			segments = append(segments, byte(remaining))
			remaining = 0
		}
	}
	buf.WriteByte(byte(len(segments)))
	buf.Write(segments)
	buf.Write(data)
}

func identificationHeader() []byte {
	h := &bytes.Buffer{}
	h.WriteByte(0x01)
	h.WriteString("vorbis")
	binary.Write(h, binary.LittleEndian, uint32(0))     // Vorbis version
	h.WriteByte(2)                                      // Channels
	binary.Write(h, binary.LittleEndian, uint32(44100)) // Sample rate
	binary.Write(h, binary.LittleEndian, uint32(0))
	binary.Write(h, binary.LittleEndian, uint32(128000))
	binary.Write(h, binary.LittleEndian, uint32(0))
	h.WriteByte(0xB8) // Blocksize info
	h.WriteByte(0x01) // Framing flag
	return h.Bytes()
}

func commentHeader(vendor string, comments ...string) []byte {
	h := &bytes.Buffer{}
	h.WriteByte(0x03)
	h.WriteString("vorbis")
	binary.Write(h, binary.LittleEndian, uint32(len(vendor)))
	h.WriteString(vendor)
	binary.Write(h, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(h, binary.LittleEndian, uint32(len(c)))
		h.WriteString(c)
	}
	h.WriteByte(0x01) // Framing bit
	return h.Bytes()
}

// createMinimalOgg creates an Ogg Vorbis stream: identification page,
// comment page, setup page and one audio page.
func createMinimalOgg(comments ...string) []byte {
	buf := &bytes.Buffer{}
	appendPage(buf, 0x02, 0, identificationHeader())
	appendPage(buf, 0x00, 1, commentHeader("audiotag", comments...))
	appendPage(buf, 0x00, 2, []byte("\x05vorbis\x01"))
	appendPage(buf, 0x04, 3, make([]byte, 100))
	return buf.Bytes()
}

func read(t *testing.T, data []byte) (*types.Collection, error) {
	t.Helper()
	return (&parser{}).Read(bytes.NewReader(data), int64(len(data)), "test.ogg", types.DefaultConfig())
}

func TestRead_Success(t *testing.T) {
	c, err := read(t, createMinimalOgg("TITLE=Test Song", "ARTIST=Test Artist", "ALBUM=Test Album"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if c.Format() != types.FormatOgg {
		t.Errorf("expected format Ogg, got %v", c.Format())
	}
	want := []string{"TITLE", "ARTIST", "ALBUM"}
	for i, e := range c.All() {
		if e.ID != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.ID, want[i])
		}
	}
	if got, _ := c.LookupField(types.FieldAlbum); got != "Test Album" {
		t.Errorf("Album = %q, want Test Album", got)
	}
}

func TestRead_SingleTagRoundTrip(t *testing.T) {
	c, err := read(t, createMinimalOgg("ARTIST=Sigur Rós"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	entries := c.Entries()
	if len(entries) != 1 || entries[0].ID != "ARTIST" || entries[0].Text() != "Sigur Rós" {
		t.Errorf("entries = %+v, want one ARTIST=Sigur Rós", entries)
	}
}

func TestRead_EmptyTags(t *testing.T) {
	c, err := read(t, createMinimalOgg())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestRead_NotRecognized(t *testing.T) {
	valid := createMinimalOgg("TITLE=x")
	firstPageSize := 27 + 1 + len(identificationHeader())

	broken := bytes.Clone(valid)
	copy(broken[firstPageSize:], "XXXX")

	tests := []struct {
		name string
		data []byte
	}{
		{"invalid magic", []byte("INVALID DATA HERE")},
		{"too short", []byte("Og")},
		{"second page missing", valid[:firstPageSize]},
		{"second page without capture pattern", broken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := read(t, tc.data)
			if !errors.Is(err, types.ErrNotRecognized) {
				t.Errorf("Read() error = %v, want ErrNotRecognized", err)
			}
		})
	}
}

var errDisk = errors.New("disk on fire")

// failingReader serves data until a read reaches offset from, then fails.
type failingReader struct {
	data []byte
	from int64
}

func (f failingReader) ReadAt(p []byte, off int64) (int, error) {
	if off+int64(len(p)) > f.from {
		return 0, errDisk
	}
	return bytes.NewReader(f.data).ReadAt(p, off)
}

// checkReadError fails unless err is a read error carrying errDisk that
// does not cascade to the next format.
func checkReadError(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, types.ErrRead) || !errors.Is(err, errDisk) {
		t.Fatalf("Read() error = %v, want ErrRead wrapping the disk error", err)
	}
	if !types.IsFatal(err) {
		t.Errorf("Read() error = %v cascades, want fatal", err)
	}
}

func TestRead_DiskFailure(t *testing.T) {
	data := createMinimalOgg("TITLE=x")
	first, err := readPage(newSafeReader(data), 0)
	if err != nil {
		t.Fatalf("readPage failed: %v", err)
	}

	tests := []struct {
		name string
		from int64
	}{
		{"first page", 0},
		{"second page", first.Size()},
		{"comment header", first.Size() + 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := failingReader{data: data, from: tc.from}
			_, err := (&parser{}).Read(r, int64(len(data)), "disk.ogg", types.DefaultConfig())
			checkReadError(t, err)
		})
	}
}

func TestRead_TruncatedAtEndOfFile(t *testing.T) {
	buf := &bytes.Buffer{}
	appendPage(buf, 0x02, 0, identificationHeader())
	appendPage(buf, 0x00, 1, commentHeader("audiotag", "TITLE=Test Song", "ARTIST=Test Artist"))
	data := buf.Bytes()
	data = data[:len(data)-8]

	_, err := read(t, data)
	if !errors.Is(err, types.ErrTruncated) {
		t.Errorf("Read() error = %v, want ErrTruncated", err)
	}
}

func TestRead_WindowCutsLongHeader(t *testing.T) {
	long := "COMMENT=" + strings.Repeat("x", 5000)
	c, err := read(t, createMinimalOgg("TITLE=Kept", long, "ARTIST=Lost"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if got, _ := c.Lookup("TITLE"); got != "Kept" {
		t.Errorf("TITLE = %q, want Kept", got)
	}
}

func TestReadPage(t *testing.T) {
	data := createMinimalOgg("TITLE=x")
	p, err := readPage(newSafeReader(data), 0)
	if err != nil {
		t.Fatalf("readPage failed: %v", err)
	}
	if p.HeaderType != 0x02 || p.SerialNumber != 12345 || p.Sequence != 0 {
		t.Errorf("page = %+v", p)
	}
	if p.Segments != 1 || p.DataSize != int64(len(identificationHeader())) {
		t.Errorf("Segments = %d, DataSize = %d", p.Segments, p.DataSize)
	}
	if p.Size() != 28+p.DataSize {
		t.Errorf("Size() = %d, want %d", p.Size(), 28+p.DataSize)
	}
}

func BenchmarkReadOgg(b *testing.B) {
	data := createMinimalOgg("TITLE=Benchmark Song", "ARTIST=Benchmark Artist", "ALBUM=Benchmark Album")
	r := bytes.NewReader(data)
	cfg := types.DefaultConfig()
	p := &parser{}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.Read(r, int64(len(data)), "bench.ogg", cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func newSafeReader(data []byte) *ibinary.SafeReader {
	return ibinary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.ogg")
}
