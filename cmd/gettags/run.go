package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/simonhull/audiotag"
)

const prog = "gettags"

// commonOrder is the field order used by --common-only.
var commonOrder = []audiotag.Field{
	audiotag.FieldAlbum,
	audiotag.FieldArtist,
	audiotag.FieldAlbumArtist,
	audiotag.FieldComment,
	audiotag.FieldComposer,
	audiotag.FieldDate,
	audiotag.FieldGenre,
	audiotag.FieldTitle,
	audiotag.FieldTrack,
}

type config struct {
	commonName    string
	commonOnly    bool
	exactName     string
	coverFilename string
	script        bool
	debug         bool
	version       bool
	help          bool
	longHelp      bool
	itunes        string
	jobs          int
}

// command holds the resolved flags and output streams for one run.
type command struct {
	cfg    config
	field  audiotag.Field
	common bool
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	fs := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.commonName, "common-name", "c", "", "show tag matching only this common name (\"help\" lists them)")
	fs.BoolVarP(&cfg.commonOnly, "common-only", "C", false, "show only common tags")
	fs.StringVarP(&cfg.exactName, "exact-name", "e", "", "show tag matching only this exact name")
	fs.StringVarP(&cfg.coverFilename, "cover-filename", "o", "", "extract cover image to this name plus an extension")
	fs.BoolVarP(&cfg.script, "script", "s", false, "script mode: prefix output with OK or ERROR")
	fs.BoolVarP(&cfg.debug, "debug", "d", false, "show debugging data")
	fs.BoolVarP(&cfg.version, "version", "v", false, "show version")
	fs.BoolVarP(&cfg.help, "help", "h", false, "show brief usage")
	fs.BoolVar(&cfg.longHelp, "longhelp", false, "show detailed usage")
	fs.StringVar(&cfg.itunes, "itunes", "", "also read every track listed in this iTunes library XML")
	fs.IntVarP(&cfg.jobs, "jobs", "j", 1, "number of files to read concurrently")
	fs.Usage = func() { shortUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	switch {
	case cfg.version:
		info := audiotag.GetVersionInfo()
		fmt.Fprintf(stdout, "%s version %s (%s)\n", prog, info.Version, info.GoVersion)
		return 0
	case cfg.help:
		shortUsage(stdout)
		return 0
	case cfg.longHelp:
		fmt.Fprintf(stdout, "Usage: %s [options] {files...}\n", prog)
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	c := &command{cfg: cfg, stdout: stdout, stderr: stderr}
	if cfg.commonName != "" {
		if cfg.commonName == "help" {
			fmt.Fprintf(stdout, "%s: common names: %s\n", prog, strings.Join(audiotag.FieldNames(), " "))
			return 0
		}
		f, ok := audiotag.ParseField(cfg.commonName)
		if !ok {
			fmt.Fprintf(stderr, "%s: unknown common name '%s'\n", prog, cfg.commonName)
			fmt.Fprintf(stderr, "'%s --common-name help' for a list\n", prog)
			return 1
		}
		c.field, c.common = f, true
	}
	if c.common && cfg.exactName != "" {
		fmt.Fprintf(stderr, "%s: ignoring common name because exact name was supplied\n", prog)
		c.common = false
	}

	paths := fs.Args()
	if cfg.itunes != "" {
		lib, err := libraryPaths(cfg.itunes)
		if err != nil {
			fmt.Fprintf(stderr, "%s%s: can't read iTunes library '%s': %v\n", c.prefix(false), prog, cfg.itunes, err)
			return 1
		}
		paths = append(paths, lib...)
	}
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "%s%s: No files specified\n", c.prefix(false), prog)
		return 0
	}

	opts := []audiotag.Option{audiotag.WithConcurrency(cfg.jobs)}
	if cfg.debug {
		opts = append(opts, audiotag.WithDebug())
	}
	results, err := audiotag.ExtractMany(context.Background(), paths, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "%s%s: %v\n", c.prefix(false), prog, err)
		return 1
	}
	for _, r := range results {
		c.report(r)
	}
	return 0
}

func shortUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s -[vhds] [-c name] [-e name] {files...}\n", prog)
	fmt.Fprintf(w, "\"%s --longhelp\" for full details\n", prog)
}

// prefix returns the OK/ERROR marker used in script mode.
func (c *command) prefix(ok bool) string {
	switch {
	case !c.cfg.script:
		return ""
	case ok:
		return "OK "
	default:
		return "ERROR "
	}
}

// report prints the outcome for one file.
func (c *command) report(r audiotag.Result) {
	if r.Err != nil {
		fmt.Fprintf(c.stderr, "%s%s: %s '%s'\n", c.prefix(false), prog, describe(r.Err), r.Path)
		return
	}
	tags := r.Tags

	switch {
	case c.cfg.coverFilename != "":
		c.extractCover(tags)
	case c.cfg.exactName != "":
		if s, ok := audiotag.Lookup(tags, c.cfg.exactName); ok {
			fmt.Fprintf(c.stdout, "%s%s\n", c.prefix(true), s)
		} else {
			fmt.Fprintf(c.stdout, "%sTag not found\n", c.prefix(false))
		}
	case c.common:
		if s, ok := audiotag.LookupField(tags, c.field); ok {
			fmt.Fprintf(c.stdout, "%s%s\n", c.prefix(true), s)
		} else {
			fmt.Fprintf(c.stderr, "%sTag not found\n", c.prefix(false))
		}
	default:
		if c.cfg.script {
			fmt.Fprintln(c.stdout, "OK")
		}
		if c.cfg.commonOnly {
			for _, f := range commonOrder {
				if s, ok := audiotag.LookupField(tags, f); ok {
					fmt.Fprintf(c.stdout, "%s %s\n", f, s)
				}
			}
			return
		}
		for _, e := range tags.All() {
			if e.Kind == audiotag.KindText {
				fmt.Fprintf(c.stdout, "%s %s\n", e.ID, e.Text())
			} else {
				fmt.Fprintf(c.stdout, "%s (binary)\n", e.ID)
			}
		}
	}
}

// extractCover writes the cover image to the cover filename plus an
// extension chosen from its MIME type.
func (c *command) extractCover(tags *audiotag.Collection) {
	cover, ok := tags.Cover()
	if !ok {
		fmt.Fprintf(c.stdout, "%s%s: no cover image found\n", c.prefix(false), prog)
		return
	}
	ext := cover.Extension()
	if ext == "" {
		fmt.Fprintf(c.stdout, "%s%s: cover image found, but file type is unknown\n", c.prefix(false), prog)
		return
	}
	name := c.cfg.coverFilename + "." + ext
	if err := os.WriteFile(name, cover.Data, 0o644); err != nil {
		fmt.Fprintf(c.stdout, "%s%s: can't open file for writing: %s (%v)\n", c.prefix(false), prog, name, err)
		return
	}
	if c.cfg.script {
		fmt.Fprintf(c.stdout, "%s%s\n", c.prefix(true), name)
	}
}

// describe maps an extraction error to a short message.
func describe(err error) string {
	switch {
	case errors.Is(err, audiotag.ErrRead):
		return "Can't read file"
	case errors.Is(err, audiotag.ErrTruncated):
		return "Tag data is incomplete in"
	case errors.Is(err, audiotag.ErrOutOfMemory):
		return "Out of memory processing file"
	case errors.Is(err, audiotag.ErrUnsupportedFormat):
		return "Unsupported tag format or no tags in file"
	default:
		return "Internal error processing file"
	}
}
