package audiotag

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	_ "github.com/simonhull/audiotag/internal/flac"  // register FLAC reader
	_ "github.com/simonhull/audiotag/internal/id3v2" // register ID3v2 reader
	_ "github.com/simonhull/audiotag/internal/mp4"   // register MP4 reader
	_ "github.com/simonhull/audiotag/internal/ogg"   // register Ogg reader
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

// Extract reads the tags of the file at path.
//
// The file is probed as ID3v2, FLAC, Ogg Vorbis and MP4, in that order.
// Each probe opens and closes the file on its own. The first reader that
// recognizes the file produces the result; a reader that recognizes the file
// but finds it broken ends the probe with its error. When nothing recognizes
// the file, Extract returns an *UnsupportedFormatError.
//
// Cover art, when present, is available from the returned Collection:
//
//	tags, err := audiotag.Extract("song.mp3")
//	if err != nil {
//		return err
//	}
//	title, _ := audiotag.LookupField(tags, audiotag.FieldTitle)
//	if cover, ok := tags.Cover(); ok {
//		os.WriteFile("cover."+cover.Extension(), cover.Data, 0o644)
//	}
func Extract(path string, opts ...Option) (*Collection, error) {
	options := resolve(opts)
	return extract(path, options.config())
}

func extract(path string, cfg *types.Config) (*Collection, error) {
	return dispatch(path, cfg, func() (io.ReaderAt, int64, func(), error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, nil, &ReadError{Path: path, Op: "open", Err: err}
		}
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, nil, &ReadError{Path: path, Op: "stat", Err: err}
		}
		return f, stat.Size(), func() { f.Close() }, nil
	})
}

// ExtractReader is Extract over an already open source of size bytes. name
// is used in errors and log records. Every probe reads through a fresh
// io.SectionReader over r; r is never closed.
func ExtractReader(r io.ReaderAt, size int64, name string, opts ...Option) (*Collection, error) {
	options := resolve(opts)
	return dispatch(name, options.config(), func() (io.ReaderAt, int64, func(), error) {
		return io.NewSectionReader(r, 0, size), size, func() {}, nil
	})
}

// source opens the input for one probe. release is called when the probe
// is done.
type source func() (r io.ReaderAt, size int64, release func(), err error)

// dispatch runs the readers in registry order until one recognizes the
// input.
func dispatch(name string, cfg *types.Config, open source) (*Collection, error) {
	log := cfg.Log().With("path", name)

	for _, format := range registry.Formats() {
		tags, err := probe(format, name, cfg, open)
		if err == nil {
			log.Debug("tags extracted", "format", format.String(), "entries", tags.Len())
			return tags, nil
		}
		if types.IsFatal(err) {
			return nil, fmt.Errorf("read %s: %w", format, err)
		}
		log.Debug("format not recognized", "format", format.String(), "reason", err)
	}

	return nil, &UnsupportedFormatError{
		Path:   name,
		Reason: "unsupported tag format or no tags in file",
	}
}

func probe(format Format, name string, cfg *types.Config, open source) (*Collection, error) {
	r, size, release, err := open()
	if err != nil {
		return nil, err
	}
	defer release()

	return registry.Get(format).Read(r, size, name, cfg)
}

// Result is the outcome for one path passed to ExtractMany.
type Result struct {
	Path string
	Tags *Collection
	Err  error
}

// ExtractMany extracts tags from several files concurrently.
//
// Files are read by up to WithConcurrency workers (runtime.NumCPU() by
// default). Results are returned in the same order as paths, each with its
// own error; a file that fails does not stop the others. The returned error
// is non-nil only when ctx is cancelled before the batch completes.
//
// Example:
//
//	results, err := audiotag.ExtractMany(ctx, paths, audiotag.WithConcurrency(4))
//	if err != nil {
//		return err
//	}
//	for _, r := range results {
//		if r.Err != nil {
//			log.Printf("%s: %v", r.Path, r.Err)
//			continue
//		}
//		fmt.Println(r.Path, r.Tags.Len())
//	}
func ExtractMany(ctx context.Context, paths []string, opts ...Option) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	options := resolve(opts)
	cfg := options.config()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(options.concurrency)

	results := make([]Result, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tags, err := extract(path, cfg)
			results[i] = Result{Path: path, Tags: tags, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
