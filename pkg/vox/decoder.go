package vox

import (
	"fmt"
	"os"
)

// maxDepth bounds walker recursion. Real files nest two or three levels;
// anything past this is a corrupt or adversarial children length.
const maxDepth = 64

// voxelRecordSize is one XYZI record: x, y, z, colorIndex.
const voxelRecordSize = 4

// DecodeFile reads and decodes a .vox file from disk.
func DecodeFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode decodes an in-memory .vox file. It validates the 8-byte file
// header, then walks the chunk tree folding every decoded chunk into one
// model. Any structural error aborts the decode; no partial model is
// returned.
func Decode(data []byte) (*Model, error) {
	if len(data) < 4 || string(data[:4]) != Magic {
		return nil, fmt.Errorf("%w: want %q", ErrInvalidSignature, Magic)
	}

	c := newCursor(data)
	c.Bytes(4) // magic, validated above
	if _, err := c.U32(); err != nil {
		return nil, fmt.Errorf("file version: %w", err)
	}

	m := &Model{}
	for !c.AtEnd() {
		if err := walkChunk(c, m, 0); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// walkChunk consumes exactly one chunk and its descendants: header, content,
// then children until the byte budget declared by the header runs out. On
// return the cursor sits at the end of the children region.
func walkChunk(c *cursor, m *Model, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: depth %d at offset %d", ErrNestingTooDeep, depth, c.Pos())
	}

	start := c.Pos()
	h, err := readChunkHeader(c)
	if err != nil {
		return err
	}

	content, err := c.Bytes(int(h.ContentLen))
	if err != nil {
		return fmt.Errorf("%w: chunk %q at offset %d: %v", ErrTruncatedContent, h.Tag, start, err)
	}

	p, err := decodeContent(h.Tag, content)
	if err != nil {
		return fmt.Errorf("chunk %q at offset %d: %w", h.Tag, start, err)
	}
	m.fold(p)

	childrenEnd := c.Pos() + int(h.ChildrenLen)
	if childrenEnd > len(c.buf) {
		return fmt.Errorf("%w: chunk %q at offset %d declares %d children bytes, %d remain",
			ErrTruncatedContent, h.Tag, start, h.ChildrenLen, c.Remaining())
	}
	for c.Pos() < childrenEnd {
		if err := walkChunk(c, m, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// decodeContent interprets one chunk's content bytes by tag. It is a pure
// function of its inputs; the fold into the model happens in the walker.
func decodeContent(tag string, content []byte) (payload, error) {
	switch tag {
	case TagSize:
		return decodeDims(content)
	case TagVoxels:
		return decodeVoxels(content)
	case TagPalette:
		return decodePalette(content)
	case TagMaterial:
		return decodeMaterial(content)
	default:
		return opaquePayload{tag: tag, raw: content}, nil
	}
}

func decodeDims(content []byte) (payload, error) {
	c := newCursor(content)
	var d dimsPayload
	var err error
	if d.X, err = c.U32(); err != nil {
		return nil, fmt.Errorf("%w: SIZE x: %v", ErrTruncatedContent, err)
	}
	if d.Y, err = c.U32(); err != nil {
		return nil, fmt.Errorf("%w: SIZE y: %v", ErrTruncatedContent, err)
	}
	if d.Z, err = c.U32(); err != nil {
		return nil, fmt.Errorf("%w: SIZE z: %v", ErrTruncatedContent, err)
	}
	// Trailing bytes are ignored.
	return d, nil
}

func decodeVoxels(content []byte) (payload, error) {
	c := newCursor(content)
	count, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("%w: voxel count: %v", ErrTruncatedVoxelList, err)
	}
	if c.Remaining() < int(count)*voxelRecordSize {
		return nil, fmt.Errorf("%w: %d voxels declared, %d bytes of records", ErrTruncatedVoxelList, count, c.Remaining())
	}

	voxels := make(voxelsPayload, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := c.Bytes(voxelRecordSize)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrTruncatedVoxelList, i, err)
		}
		voxels = append(voxels, Voxel{X: rec[0], Y: rec[1], Z: rec[2], ColorIndex: rec[3]})
	}
	return voxels, nil
}

func decodePalette(content []byte) (payload, error) {
	c := newCursor(content)
	var p palettePayload
	for i := range p {
		v, err := c.U32()
		if err != nil {
			return nil, fmt.Errorf("%w: RGBA entry %d: %v", ErrTruncatedContent, i, err)
		}
		p[i] = v
	}
	return p, nil
}

func decodeMaterial(content []byte) (payload, error) {
	c := newCursor(content)
	id, err := c.I32()
	if err != nil {
		return nil, fmt.Errorf("%w: material id: %v", ErrTruncatedDictEntry, err)
	}
	// 4 bytes the format does not document; skipped, not interpreted.
	if _, err := c.U32(); err != nil {
		return nil, fmt.Errorf("%w: material id %d: %v", ErrTruncatedDictEntry, id, err)
	}

	props := NewDict()
	for !c.AtEnd() {
		key, err := readDictString(c)
		if err != nil {
			return nil, fmt.Errorf("material id %d: key: %w", id, err)
		}
		val, err := readDictString(c)
		if err != nil {
			return nil, fmt.Errorf("material id %d: value for %q: %w", id, key, err)
		}
		props.Set(key, val)
	}
	return materialPayload{ID: id, Props: props}, nil
}

// readDictString reads one [u32 length][bytes] string from a MATL dictionary.
func readDictString(c *cursor) (string, error) {
	n, err := c.U32()
	if err != nil {
		return "", fmt.Errorf("%w: length prefix at offset %d", ErrTruncatedDictEntry, c.Pos())
	}
	if int(n) > c.Remaining() {
		return "", fmt.Errorf("%w: declared %d bytes, %d remain at offset %d", ErrMalformedDictEntry, n, c.Remaining(), c.Pos())
	}
	b, err := c.Bytes(int(n))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTruncatedDictEntry, err)
	}
	return string(b), nil
}
