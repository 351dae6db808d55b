package vox

import "fmt"

// Magic is the 4-byte signature at the start of every .vox file.
const Magic = "VOX "

// headerSize is tag (4) + content length (4) + children length (4).
const headerSize = 12

// Chunk tags with interpreted content.
const (
	TagSize     = "SIZE"
	TagVoxels   = "XYZI"
	TagPalette  = "RGBA"
	TagMaterial = "MATL"
)

// Tags that are valid in a .vox file but carry no content the converter
// interprets. They still get their children walked.
var opaqueTags = map[string]bool{
	"rCAM": true,
	"PACK": true,
	"rOBJ": true,
	"nTRN": true,
	"nGRP": true,
	"nSHP": true,
	"MATT": true,
	"LAYR": true,
	"IMAP": true,
	"NOTE": true,
}

// KnownTag reports whether tag is one the format documents, interpreted or
// not. Unknown tags are not an error; this exists for diagnostics only.
func KnownTag(tag string) bool {
	switch tag {
	case "MAIN", TagSize, TagVoxels, TagPalette, TagMaterial:
		return true
	}
	return opaqueTags[tag]
}

// ChunkHeader is the fixed 12-byte record preceding every chunk: a 4-byte
// ASCII tag, the byte count of the chunk's own content, and the total byte
// count of its nested child chunks.
type ChunkHeader struct {
	Tag         string
	ContentLen  uint32
	ChildrenLen uint32
}

// readChunkHeader consumes exactly 12 bytes at the cursor. A partial header
// is fatal; there is no way to resynchronize after one.
func readChunkHeader(c *cursor) (ChunkHeader, error) {
	if c.Remaining() < headerSize {
		return ChunkHeader{}, fmt.Errorf("%w: %d bytes at offset %d", ErrTruncatedHeader, c.Remaining(), c.Pos())
	}
	tag, err := c.Tag()
	if err != nil {
		return ChunkHeader{}, err
	}
	contentLen, err := c.U32()
	if err != nil {
		return ChunkHeader{}, err
	}
	childrenLen, err := c.U32()
	if err != nil {
		return ChunkHeader{}, err
	}
	return ChunkHeader{Tag: tag, ContentLen: contentLen, ChildrenLen: childrenLen}, nil
}
