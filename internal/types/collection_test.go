package types

import (
	"bytes"
	"testing"
)

func buildSample() *Collection {
	b := NewBuilder(FormatFLAC)
	b.AddString("TITLE", "First")
	b.AddString("title", "Second")
	b.AddString("ARTIST", "Band")
	b.SetCover("image/png", []byte{1, 2, 3})
	return b.Build()
}

func TestCollection_DiscoveryOrderAndDuplicates(t *testing.T) {
	c := buildSample()

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	want := []string{"TITLE", "title", "ARTIST"}
	for i, e := range c.All() {
		if e.ID != want[i] {
			t.Errorf("entry %d ID = %q, want %q", i, e.ID, want[i])
		}
		if e.Kind != KindText {
			t.Errorf("entry %d Kind = %v, want text", i, e.Kind)
		}
	}
	if c.Format() != FormatFLAC {
		t.Errorf("Format() = %v, want FLAC", c.Format())
	}
}

func TestCollection_Lookup(t *testing.T) {
	c := buildSample()

	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{"TITLE", "First", true},
		{"Title", "First", true},
		{"artist", "Band", true},
		{"ALBUM", "", false},
	}
	for _, tc := range tests {
		got, ok := c.Lookup(tc.id)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tc.id, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestCollection_LookupFieldPriority(t *testing.T) {
	tests := []struct {
		name    string
		entries [][2]string
		want    string
	}{
		{"id3v2.4 wins", [][2]string{{"nam", "mp4"}, {"TITLE", "vorbis"}, {"TT2", "v22"}, {"TIT2", "v24"}}, "v24"},
		{"id3v2.2 over vorbis", [][2]string{{"nam", "mp4"}, {"TITLE", "vorbis"}, {"TT2", "v22"}}, "v22"},
		{"vorbis over mp4", [][2]string{{"nam", "mp4"}, {"TITLE", "vorbis"}}, "vorbis"},
		{"mp4 only", [][2]string{{"nam", "mp4"}}, "mp4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(FormatUnknown)
			for _, e := range tc.entries {
				b.AddString(e[0], e[1])
			}
			got, ok := b.Build().LookupField(FieldTitle)
			if !ok || got != tc.want {
				t.Errorf("LookupField(Title) = (%q, %v), want %q", got, ok, tc.want)
			}
		})
	}
}

func TestCollection_DateAndYearShareAliases(t *testing.T) {
	b := NewBuilder(FormatID3v2)
	b.AddString("TDRC", "2019-05-01")
	c := b.Build()

	for _, f := range []Field{FieldDate, FieldYear} {
		got, ok := c.LookupField(f)
		if !ok || got != "2019-05-01" {
			t.Errorf("LookupField(%v) = (%q, %v), want 2019-05-01", f, got, ok)
		}
	}
}

func TestCollection_OwnsBytes(t *testing.T) {
	src := []byte("value")
	b := NewBuilder(FormatOgg)
	b.AddText("KEY", src)
	img := []byte{0xFF, 0xD8}
	b.SetCover("image/jpeg", img)
	c := b.Build()

	src[0] = 'X'
	img[0] = 0
	if got, _ := c.Lookup("KEY"); got != "value" {
		t.Errorf("Lookup after source mutation = %q, want value", got)
	}

	entries := c.Entries()
	entries[0].Value[0] = 'Y'
	if got, _ := c.Lookup("KEY"); got != "value" {
		t.Errorf("Lookup after Entries mutation = %q, want value", got)
	}

	cover, ok := c.Cover()
	if !ok {
		t.Fatal("Cover() missing")
	}
	if !bytes.Equal(cover.Data, []byte{0xFF, 0xD8}) {
		t.Errorf("Cover().Data = %x, want ffd8", cover.Data)
	}
}

func TestCollection_Nil(t *testing.T) {
	var c *Collection
	if c.Len() != 0 {
		t.Errorf("nil Len() = %d", c.Len())
	}
	if _, ok := c.Lookup("TITLE"); ok {
		t.Error("nil Lookup() found a value")
	}
	if _, ok := c.Cover(); ok {
		t.Error("nil Cover() reported a cover")
	}
}

func TestCoverArt_Extension(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "jpg"},
		{"image/JPG", "jpg"},
		{"image/png", "png"},
		{"image/gif", "gif"},
		{"image/bmp", ""},
		{"", ""},
	}
	for _, tc := range tests {
		c := &CoverArt{MIME: tc.mime}
		if got := c.Extension(); got != tc.want {
			t.Errorf("Extension(%q) = %q, want %q", tc.mime, got, tc.want)
		}
	}
}
