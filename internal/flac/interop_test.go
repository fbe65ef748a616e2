package flac

import (
	"bytes"
	"testing"

	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacvorbis"

	"github.com/simonhull/audiotag/internal/types"
)

// TestRead_GoFlacWriter reads back a file produced by go-flac.
func TestRead_GoFlacWriter(t *testing.T) {
	cmt := flacvorbis.New()
	for _, kv := range [][2]string{
		{flacvorbis.FIELD_TITLE, "Interop Title"},
		{flacvorbis.FIELD_ARTIST, "Interop Artist"},
		{flacvorbis.FIELD_TRACKNUMBER, "7"},
	} {
		if err := cmt.Add(kv[0], kv[1]); err != nil {
			t.Fatalf("Add(%s) failed: %v", kv[0], err)
		}
	}
	cmtBlock := cmt.Marshal()

	f := &goflac.File{
		Meta: []*goflac.MetaDataBlock{
			{Type: goflac.StreamInfo, Data: streamInfo()},
			&cmtBlock,
		},
	}
	data := f.Marshal()

	c, err := (&parser{}).Read(bytes.NewReader(data), int64(len(data)), "interop.flac", types.DefaultConfig())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if got, _ := c.LookupField(types.FieldTitle); got != "Interop Title" {
		t.Errorf("Title = %q, want Interop Title", got)
	}
	if got, _ := c.LookupField(types.FieldArtist); got != "Interop Artist" {
		t.Errorf("Artist = %q, want Interop Artist", got)
	}
	if got, _ := c.LookupField(types.FieldTrack); got != "7" {
		t.Errorf("Track = %q, want 7", got)
	}
}
