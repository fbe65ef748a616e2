package types

import "strings"

// Field is a format-independent metadata concept mapped from several
// format-specific keys.
type Field int

const (
	FieldTitle Field = iota
	FieldAlbum
	FieldArtist
	FieldAlbumArtist
	FieldComposer
	FieldDate
	FieldYear
	FieldGenre
	FieldTrack
	FieldComment
)

// dateAliases is shared by FieldDate and FieldYear.
var dateAliases = []string{"TYER", "TYE", "TDRC", "DATE", "day"}

// aliases lists candidate keys per field in priority order: ID3v2.3/2.4,
// ID3v2.2, Vorbis, then MP4 (with the leading © already stripped).
var aliases = map[Field][]string{
	FieldTitle:       {"TIT2", "TT2", "TITLE", "nam"},
	FieldArtist:      {"TPE1", "TP1", "ARTIST", "PERFORMER", "ART"},
	FieldAlbumArtist: {"TPE2", "TP2", "ALBUMARTIST", "aART"},
	FieldGenre:       {"TCON", "TCO", "GENRE", "gen", "gnre"},
	FieldAlbum:       {"TALB", "TAL", "ALBUM", "alb"},
	FieldComposer:    {"TCOM", "TCM", "COMPOSER", "wrt"},
	FieldDate:        dateAliases,
	FieldYear:        dateAliases,
	FieldTrack:       {"TRCK", "TRK", "TRACKNUMBER", "trkn"},
	FieldComment:     {"COMM", "COM", "DESCRIPTION", "COMMENT", "cmt"},
}

var fieldNames = []struct {
	name  string
	field Field
}{
	{"album", FieldAlbum},
	{"album-artist", FieldAlbumArtist},
	{"artist", FieldArtist},
	{"comment", FieldComment},
	{"composer", FieldComposer},
	{"date", FieldDate},
	{"genre", FieldGenre},
	{"title", FieldTitle},
	{"track", FieldTrack},
	{"year", FieldYear},
}

// Aliases returns the ordered candidate keys for f, or nil for an unknown
// field. The returned slice must not be modified.
func (f Field) Aliases() []string {
	return aliases[f]
}

func (f Field) String() string {
	for _, n := range fieldNames {
		if n.field == f {
			return n.name
		}
	}
	return "unknown"
}

// ParseField maps a human-readable name such as "album-artist" to a Field.
// Matching ignores case.
func ParseField(name string) (Field, bool) {
	for _, n := range fieldNames {
		if strings.EqualFold(n.name, name) {
			return n.field, true
		}
	}
	return 0, false
}

// FieldNames returns the accepted names for ParseField in display order.
func FieldNames() []string {
	out := make([]string, len(fieldNames))
	for i, n := range fieldNames {
		out[i] = n.name
	}
	return out
}
