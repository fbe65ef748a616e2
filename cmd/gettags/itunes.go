package main

import (
	"cmp"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/dhowden/itl"
)

// libraryPaths returns the local file paths of every track in an iTunes
// library XML file, ordered by track ID. Tracks without a file location
// are skipped.
func libraryPaths(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lib, err := itl.ReadFromXML(f)
	if err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}

	tracks := make([]itl.Track, 0, len(lib.Tracks))
	for _, t := range lib.Tracks {
		if t.Location != "" {
			tracks = append(tracks, t)
		}
	}
	slices.SortFunc(tracks, func(a, b itl.Track) int {
		return cmp.Compare(a.TrackID, b.TrackID)
	})

	paths := make([]string, 0, len(tracks))
	for _, t := range tracks {
		p, err := decodeLocation(t.Location)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", t.TrackID, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// decodeLocation turns a file:// location into a path.
func decodeLocation(loc string) (string, error) {
	u, err := url.ParseRequestURI(loc)
	if err != nil {
		return "", err
	}
	// iTunes leaves &#38; escaped inside the URL.
	return strings.ReplaceAll(u.Path, "&#38;", "&"), nil
}
