package types

import (
	"bytes"
	"iter"
	"strings"
)

// Kind distinguishes text entries from opaque binary ones.
type Kind uint8

const (
	// KindText marks a UTF-8 text value.
	KindText Kind = iota
	// KindBinary is reserved for raw payloads. Cover art has its own slot.
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Entry is a single tag as stored in the file.
//
// ID is the format-native key with its original case preserved
// ("TIT2", "TITLE", "nam").
type Entry struct {
	ID    string
	Value []byte
	Kind  Kind
}

// Text returns the value as a string.
func (e Entry) Text() string {
	return string(e.Value)
}

// CoverArt is the embedded front-cover image.
type CoverArt struct {
	MIME string
	Data []byte
}

// Extension returns a file extension (without dot) suited to the MIME type,
// or "" when the type is not one of the common image formats.
func (c *CoverArt) Extension() string {
	switch strings.ToLower(c.MIME) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	default:
		return ""
	}
}

// Collection is the ordered set of tags extracted from one file.
//
// Entries are kept in discovery order and duplicates are preserved.
// A Collection is immutable once returned; it owns all of its bytes.
type Collection struct {
	cover   *CoverArt
	entries []Entry
	format  Format
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Format reports which container produced the collection.
func (c *Collection) Format() Format {
	if c == nil {
		return FormatUnknown
	}
	return c.format
}

// Entries returns a copy of all entries in discovery order.
func (c *Collection) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{ID: e.ID, Kind: e.Kind, Value: bytes.Clone(e.Value)}
	}
	return out
}

// All returns an iterator over entries in discovery order.
//
// The yielded Value slices must not be modified.
func (c *Collection) All() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		if c == nil {
			return
		}
		for i, e := range c.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Cover returns a copy of the embedded front cover, if one was found.
func (c *Collection) Cover() (*CoverArt, bool) {
	if c == nil || c.cover == nil {
		return nil, false
	}
	return &CoverArt{MIME: c.cover.MIME, Data: bytes.Clone(c.cover.Data)}, true
}

// Lookup returns the first text entry whose ID matches id, ignoring case.
func (c *Collection) Lookup(id string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, e := range c.entries {
		if e.Kind == KindText && strings.EqualFold(e.ID, id) {
			return e.Text(), true
		}
	}
	return "", false
}

// LookupField resolves a canonical field through its alias candidates,
// returning the value of the first candidate present.
func (c *Collection) LookupField(f Field) (string, bool) {
	for _, id := range f.Aliases() {
		if v, ok := c.Lookup(id); ok {
			return v, true
		}
	}
	return "", false
}

// Builder accumulates entries while a reader walks a file.
// Build hands the result over; the builder must not be used afterwards.
type Builder struct {
	c *Collection
}

// NewBuilder starts an empty collection for the given container format.
func NewBuilder(format Format) *Builder {
	return &Builder{c: &Collection{format: format}}
}

// AddText appends a text entry. value is copied.
func (b *Builder) AddText(id string, value []byte) {
	b.c.entries = append(b.c.entries, Entry{ID: id, Kind: KindText, Value: bytes.Clone(value)})
}

// AddString appends a text entry from an already decoded string.
func (b *Builder) AddString(id, value string) {
	b.c.entries = append(b.c.entries, Entry{ID: id, Kind: KindText, Value: []byte(value)})
}

// SetCover stores the cover image, replacing any earlier one. data is copied.
func (b *Builder) SetCover(mime string, data []byte) {
	b.c.cover = &CoverArt{MIME: mime, Data: bytes.Clone(data)}
}

// HasCover reports whether a cover has been stored.
func (b *Builder) HasCover() bool {
	return b.c.cover != nil
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return len(b.c.entries)
}

// Build returns the finished collection.
func (b *Builder) Build() *Collection {
	c := b.c
	b.c = nil
	return c
}
