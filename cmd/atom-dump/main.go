// Command atom-dump prints the box tree of an MP4 file. Useful to confirm
// what the MP4 reader can see in a given file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abema/go-mp4"
	"github.com/sunfish-shogi/bufseekio"
)

// containers are expanded; every other box is printed as a leaf.
var containers = map[mp4.BoxType]bool{
	mp4.BoxTypeMoov(): true,
	mp4.BoxTypeTrak(): true,
	mp4.BoxTypeMdia(): true,
	mp4.BoxTypeMinf(): true,
	mp4.BoxTypeStbl(): true,
	mp4.BoxTypeUdta(): true,
	mp4.BoxTypeMeta(): true,
	mp4.BoxTypeIlst(): true,
	mp4.BoxTypeEdts(): true,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: atom-dump <file.m4b>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := dump(os.Stdout, f); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func dump(w io.Writer, r io.ReadSeeker) error {
	rs := bufseekio.NewReadSeeker(r, 64<<10, 4)
	_, err := mp4.ReadBoxStructure(rs, func(h *mp4.ReadHandle) (any, error) {
		indent := strings.Repeat("  ", len(h.Path)-1)
		fmt.Fprintf(w, "%s%s (size: %d, offset: %d)\n", indent, h.BoxInfo.Type, h.BoxInfo.Size, h.BoxInfo.Offset)
		if containers[h.BoxInfo.Type] {
			return h.Expand()
		}
		return nil, nil
	})
	return err
}
