package binary

import "github.com/simonhull/audiotag/internal/types"

// Cursor reads sequentially from an in-memory buffer. Every access is
// bounds-checked; a read past the end yields *types.TruncatedError and
// leaves the position unchanged.
type Cursor struct {
	path string
	what string
	buf  []byte
	base int64
	pos  int
}

// NewCursor creates a cursor over buf. base is the file offset of buf[0]
// and is only used in error reports.
func NewCursor(buf []byte, base int64, path, what string) *Cursor {
	return &Cursor{buf: buf, base: base, path: path, what: what}
}

func (c *Cursor) need(n int, field string) error {
	if n < 0 || n > len(c.buf)-c.pos {
		return &types.TruncatedError{
			Path:   c.path,
			What:   c.what + " " + field,
			Offset: c.base + int64(c.pos),
			Length: int64(n),
			Size:   c.base + int64(len(c.buf)),
		}
	}
	return nil
}

// Uint8 reads one byte.
func (c *Cursor) Uint8(field string) (uint8, error) {
	if err := c.need(1, field); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// Uint32LE reads a little-endian uint32.
func (c *Cursor) Uint32LE(field string) (uint32, error) {
	if err := c.need(4, field); err != nil {
		return 0, err
	}
	v := le.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// Uint32BE reads a big-endian uint32.
func (c *Cursor) Uint32BE(field string) (uint32, error) {
	if err := c.need(4, field); err != nil {
		return 0, err
	}
	v := be.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// Bytes returns the next n bytes without copying.
func (c *Cursor) Bytes(n int, field string) ([]byte, error) {
	if err := c.need(n, field); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int, field string) error {
	if err := c.need(n, field); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Offset returns the position relative to the start of the buffer.
func (c *Cursor) Offset() int {
	return c.pos
}
