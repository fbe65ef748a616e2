package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// Collection is an alias to types.Collection.
// Re-exporting from internal/types to maintain public API.
type Collection = types.Collection

// Entry is an alias to types.Entry.
type Entry = types.Entry

// Kind is an alias to types.Kind.
type Kind = types.Kind

// Re-export entry kinds.
const (
	KindText   = types.KindText
	KindBinary = types.KindBinary
)

// CoverArt is an alias to types.CoverArt.
type CoverArt = types.CoverArt

// Field is an alias to types.Field.
type Field = types.Field

// Re-export all field constants.
const (
	FieldTitle       = types.FieldTitle
	FieldAlbum       = types.FieldAlbum
	FieldArtist      = types.FieldArtist
	FieldAlbumArtist = types.FieldAlbumArtist
	FieldComposer    = types.FieldComposer
	FieldDate        = types.FieldDate
	FieldYear        = types.FieldYear
	FieldGenre       = types.FieldGenre
	FieldTrack       = types.FieldTrack
	FieldComment     = types.FieldComment
)

// Lookup returns the first entry whose ID matches id, ignoring case.
func Lookup(c *Collection, id string) (string, bool) {
	return c.Lookup(id)
}

// LookupField returns the value of the first alias of f present in c,
// trying aliases in priority order. FieldDate and FieldYear share aliases.
//
// Example:
//
//	if artist, ok := audiotag.LookupField(tags, audiotag.FieldArtist); ok {
//		fmt.Println(artist)
//	}
func LookupField(c *Collection, f Field) (string, bool) {
	return c.LookupField(f)
}

// ParseField maps a human-readable name such as "album-artist" to a Field.
func ParseField(name string) (Field, bool) {
	return types.ParseField(name)
}

// FieldNames returns the names accepted by ParseField in display order.
func FieldNames() []string {
	return types.FieldNames()
}
