package mp4

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/abema/go-mp4"
	"github.com/sunfish-shogi/bufseekio"

	"github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/registry"
	"github.com/simonhull/audiotag/internal/types"
)

const (
	bufferSize  = 64 << 10
	historySize = 4
)

// chain is the path from the top level down to the metadata item list.
var chain = [...]mp4.BoxType{
	mp4.BoxTypeMoov(),
	mp4.BoxTypeUdta(),
	mp4.BoxTypeMeta(),
	mp4.BoxTypeIlst(),
}

// parser implements registry.FormatReader for MP4 files.
type parser struct{}

// Read walks moov → udta → meta → ilst and decodes every item found. A file
// with an ftyp atom but no item list yields an empty collection.
func (p *parser) Read(r io.ReaderAt, size int64, path string, cfg *types.Config) (*types.Collection, error) {
	log := cfg.Log().With("path", path, "format", types.FormatMP4)
	sr := binary.NewSafeReader(r, size, path)

	if err := sniff(sr); err != nil {
		return nil, err
	}

	src := &trackingReader{r: r}
	rs := bufseekio.NewReadSeeker(io.NewSectionReader(src, 0, size), bufferSize, historySize)
	w := &walker{
		sr:    sr,
		limit: cfg.Limit(),
		log:   log,
		b:     types.NewBuilder(types.FormatMP4),
	}

	if _, err := mp4.ReadBoxStructure(rs, w.visit); err != nil {
		switch {
		case src.err != nil:
			return nil, &types.ReadError{Path: path, Op: "read", Err: src.err}
		case errors.Is(err, types.ErrTruncated), errors.Is(err, types.ErrOutOfMemory):
			return nil, err
		}
		log.Debug("mp4 box structure", "last", w.last.Type.String(), "offset", w.last.Offset, "error", err)
		return nil, w.structureError(size)
	}

	return w.b.Build(), nil
}

// sniff reports NotRecognized unless bytes 4..8 are "ftyp".
func sniff(sr *binary.SafeReader) error {
	head := make([]byte, 8)
	if err := sr.ReadAt(head, 0, "ftyp atom"); err != nil {
		return types.NotRecognized("mp4", err)
	}
	if string(head[4:8]) != "ftyp" {
		return fmt.Errorf("mp4: missing ftyp atom: %w", types.ErrNotRecognized)
	}
	return nil
}

// walker is the box handler for one Read call.
type walker struct {
	sr    *binary.SafeReader
	limit int64
	log   *slog.Logger
	b     *types.Builder
	last  mp4.BoxInfo
}

func (w *walker) visit(h *mp4.ReadHandle) (any, error) {
	w.last = h.BoxInfo
	depth := len(h.Path)

	switch {
	case depth <= len(chain) && h.BoxInfo.Type == chain[depth-1]:
		w.log.Debug("mp4 atom", "atom", h.BoxInfo.Type.String(),
			"offset", h.BoxInfo.Offset, "size", h.BoxInfo.Size)
		return h.Expand()
	case depth == len(chain)+1:
		return nil, w.item(h)
	}
	return nil, nil
}

// item reads the raw payload of an ilst child and decodes it.
func (w *walker) item(h *mp4.ReadHandle) error {
	bi := h.BoxInfo
	offset := int64(bi.Offset + bi.HeaderSize)
	n := int64(bi.Size - bi.HeaderSize)
	what := "atom " + bi.Type.String()

	if err := w.sr.Check(offset, n, what); err != nil {
		return err
	}
	if err := binary.CheckAlloc(w.sr.Path(), what, n, w.limit); err != nil {
		return err
	}

	buf := bytes.NewBuffer(make([]byte, 0, n))
	if _, err := h.ReadData(buf); err != nil {
		return err
	}

	it := &Item{Type: bi.Type, Offset: offset, Payload: buf.Bytes()}
	return decodeItem(it, w.sr.Path(), w.b, w.log)
}

// structureError reports a box whose declared size does not fit its parent
// or the file. go-mp4 does not say which box that was, so the report names
// the last one the walk reached.
func (w *walker) structureError(size int64) *types.TruncatedError {
	return &types.TruncatedError{
		Path:   w.sr.Path(),
		What:   fmt.Sprintf("box structure (last visited atom %s)", w.last.Type),
		Offset: int64(w.last.Offset),
		Length: int64(w.last.Size),
		Size:   size,
	}
}

// trackingReader remembers the first error from r other than io.EOF so a
// failing disk is reported as a read error, not a malformed file.
type trackingReader struct {
	r   io.ReaderAt
	err error
}

func (t *trackingReader) ReadAt(p []byte, off int64) (int, error) {
	n, err := t.r.ReadAt(p, off)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}

// init registers the MP4 parser
func init() {
	registry.Register(types.FormatMP4, &parser{})
}
