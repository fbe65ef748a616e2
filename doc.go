// Package audiotag reads text tags and front-cover art from audio files.
//
// It understands four tag containers: ID3v2 (2.2, 2.3 and 2.4, as found at
// the start of MP3 files), FLAC Vorbis comments, Ogg Vorbis comment headers
// and iTunes-style MP4 metadata (m4a, m4b). Tags are returned exactly as
// stored, in file order, with values converted to UTF-8.
//
// # Quick Start
//
//	tags, err := audiotag.Extract("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, e := range tags.All() {
//		fmt.Println(e.ID, e.Text())
//	}
//
// # Common Fields
//
// Each format names the same concept differently: a title is TIT2 in
// ID3v2.3, TT2 in ID3v2.2, TITLE in a Vorbis comment and ©nam in MP4.
// LookupField resolves a Field through every alias in priority order:
//
//	title, ok := audiotag.LookupField(tags, audiotag.FieldTitle)
//
// Lookup matches one exact ID, ignoring case:
//
//	mood, ok := audiotag.Lookup(tags, "TMOO")
//
// MP4 keys are reported without their leading © sign ("nam", "ART").
//
// # Cover Art
//
// A front cover (ID3v2 APIC picture type 3, MP4 covr) is carried on the
// Collection:
//
//	if cover, ok := tags.Cover(); ok {
//		os.WriteFile("cover."+cover.Extension(), cover.Data, 0o644)
//	}
//
// # Error Handling
//
// Failures are typed and match sentinels through errors.Is:
//
//   - *ReadError (ErrRead): the file could not be opened or read
//   - *TruncatedError (ErrTruncated): a frame, block or atom is shorter
//     than its declared size
//   - *OutOfMemoryError (ErrOutOfMemory): a declared size exceeds the
//     WithMaxAlloc ceiling
//   - *UnsupportedFormatError (ErrUnsupportedFormat): no reader recognized
//     the file, or it uses an unsupported feature such as ID3v2
//     unsynchronisation
//
// Frames and atoms that are valid but not understood are skipped.
//
// # Concurrency
//
// Extract keeps no state between calls and is safe for concurrent use.
// ExtractMany reads a batch of files with a bounded worker pool:
//
//	results, err := audiotag.ExtractMany(ctx, paths, audiotag.WithConcurrency(8))
//
// # Logging
//
// Readers log what they find with log/slog at debug level. Pass a logger
// with WithLogger, or WithDebug for text output on standard error.
package audiotag
