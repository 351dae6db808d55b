// Package vox decodes MagicaVoxel .vox files: a chunked, little-endian,
// length-prefixed container holding voxel positions, a color palette and
// material dictionaries.
package vox

import (
	"errors"
	"fmt"
)

// Sentinel errors for the decode failure modes. All are fatal: a decode
// either returns a complete model or one of these (wrapped with the byte
// offset, and the chunk tag where one is known).
var (
	ErrInvalidSignature   = errors.New("invalid file signature")
	ErrOutOfBounds        = errors.New("read past end of buffer")
	ErrTruncatedHeader    = errors.New("truncated chunk header")
	ErrTruncatedContent   = errors.New("truncated chunk content")
	ErrTruncatedVoxelList = errors.New("truncated voxel list")
	ErrTruncatedDictEntry = errors.New("truncated dictionary entry")
	ErrMalformedDictEntry = errors.New("malformed dictionary entry")
	ErrNestingTooDeep     = errors.New("chunk nesting too deep")
)

// cursor is a bounds-checked forward reader over an in-memory byte buffer.
// All multi-byte reads are little-endian. A read that would pass the end of
// the buffer fails with ErrOutOfBounds and leaves the position unchanged.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) Pos() int {
	return c.pos
}

func (c *cursor) AtEnd() bool {
	return c.pos >= len(c.buf)
}

// Remaining reports how many unread bytes are left.
func (c *cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Bytes consumes n bytes and returns them as a subslice of the underlying
// buffer (not a copy).
func (c *cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrOutOfBounds, n, c.pos, len(c.buf)-c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) U8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (c *cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// Tag consumes 4 bytes and returns them as an ASCII chunk tag.
func (c *cursor) Tag() (string, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
