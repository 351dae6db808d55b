package vox

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// chunk assembles one chunk: 12-byte header, content, then children bytes.
func chunk(tag string, content []byte, children ...[]byte) []byte {
	joined := bytes.Join(children, nil)

	var buf bytes.Buffer
	buf.WriteString(tag)
	binary.Write(&buf, binary.LittleEndian, uint32(len(content)))
	binary.Write(&buf, binary.LittleEndian, uint32(len(joined)))
	buf.Write(content)
	buf.Write(joined)
	return buf.Bytes()
}

// voxFile wraps chunks in the 8-byte file header and a MAIN container.
func voxFile(children ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	binary.Write(&buf, binary.LittleEndian, uint32(150))
	buf.Write(chunk("MAIN", nil, children...))
	return buf.Bytes()
}

func u32le(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// xyziContent builds XYZI content: count then 4 bytes per record.
func xyziContent(voxels ...Voxel) []byte {
	var buf bytes.Buffer
	buf.Write(u32le(uint32(len(voxels))))
	for _, v := range voxels {
		buf.Write([]byte{v.X, v.Y, v.Z, v.ColorIndex})
	}
	return buf.Bytes()
}

// matlContent builds MATL content: id, reserved word, then kv pairs.
func matlContent(id int32, pairs ...string) []byte {
	var buf bytes.Buffer
	buf.Write(u32le(uint32(id)))
	buf.Write(u32le(0))
	for _, s := range pairs {
		buf.Write(u32le(uint32(len(s))))
		buf.WriteString(s)
	}
	return buf.Bytes()
}

func TestDecodeVoxelList(t *testing.T) {
	data := voxFile(
		chunk(TagSize, append(append(u32le(4), u32le(5)...), u32le(6)...)),
		chunk(TagVoxels, xyziContent(
			Voxel{0, 0, 0, 5},
			Voxel{1, 2, 3, 9},
		)),
	)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []Voxel{{0, 0, 0, 5}, {1, 2, 3, 9}}
	if len(m.Voxels) != len(want) {
		t.Fatalf("got %d voxels, want %d", len(m.Voxels), len(want))
	}
	for i, v := range want {
		if m.Voxels[i] != v {
			t.Errorf("voxel %d = %+v, want %+v", i, m.Voxels[i], v)
		}
	}

	e := m.Extent
	if !e.HasAny {
		t.Fatal("extent.HasAny = false after two voxels")
	}
	if e.MinX != 0 || e.MinY != 0 || e.MinZ != 0 || e.MaxX != 1 || e.MaxY != 2 || e.MaxZ != 3 {
		t.Errorf("extent = %+v, want min (0,0,0) max (1,2,3)", e)
	}

	if len(m.Dims) != 1 || (m.Dims[0] != Dims{4, 5, 6}) {
		t.Errorf("dims = %+v, want [{4 5 6}]", m.Dims)
	}
}

func TestDecodeMultipleVoxelLists(t *testing.T) {
	data := voxFile(
		chunk(TagVoxels, xyziContent(Voxel{1, 1, 1, 1})),
		chunk(TagVoxels, xyziContent(Voxel{2, 2, 2, 2}, Voxel{9, 0, 0, 3})),
	)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// Records accumulate across every XYZI chunk, in file order.
	if len(m.Voxels) != 3 {
		t.Fatalf("got %d voxels, want 3", len(m.Voxels))
	}
	if m.Voxels[0].ColorIndex != 1 || m.Voxels[2].X != 9 {
		t.Errorf("voxels out of file order: %+v", m.Voxels)
	}
	if m.Extent.MaxX != 9 || m.Extent.MinX != 1 {
		t.Errorf("extent = %+v, want x range 1..9", m.Extent)
	}
}

func TestDecodeEmptyModel(t *testing.T) {
	m, err := Decode(voxFile())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(m.Voxels) != 0 {
		t.Errorf("got %d voxels, want 0", len(m.Voxels))
	}
	if m.Extent.HasAny {
		t.Error("extent.HasAny = true with no voxels")
	}

	r := Resolve(m)
	if r.Framing.Radius != 0 {
		t.Errorf("degenerate framing radius = %v, want 0", r.Framing.Radius)
	}
	if r.CustomPalette {
		t.Error("CustomPalette = true with no RGBA chunk")
	}
}

func TestDecodeMaterialLastWriteWins(t *testing.T) {
	data := voxFile(
		chunk(TagMaterial, matlContent(3,
			"_rough", "0.4",
			"_ior", "1.3",
			"_rough", "0.9",
		)),
	)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	mat, ok := m.Materials[3]
	if !ok {
		t.Fatalf("material 3 missing; have %v", m.Materials)
	}
	if v, _ := mat.Props.Get("_rough"); v != "0.9" {
		t.Errorf("_rough = %q, want %q (last write wins)", v, "0.9")
	}
	if v, _ := mat.Props.Get("_ior"); v != "1.3" {
		t.Errorf("_ior = %q, want %q", v, "1.3")
	}
	if got := mat.Props.Keys(); len(got) != 2 || got[0] != "_rough" || got[1] != "_ior" {
		t.Errorf("key order = %v, want [_rough _ior]", got)
	}
}

func TestDecodeMaterialRepeatedIDOverwrites(t *testing.T) {
	data := voxFile(
		chunk(TagMaterial, matlContent(7, "_type", "_glass")),
		chunk(TagMaterial, matlContent(7, "_type", "_metal")),
	)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v, _ := m.Materials[7].Props.Get("_type"); v != "_metal" {
		t.Errorf("_type = %q, want _metal", v)
	}
}

func TestDecodeUnknownTagChildrenTraversed(t *testing.T) {
	// A tag nothing dispatches on, wrapping a real voxel list as its child.
	data := voxFile(
		chunk("ZZZZ", []byte{0xDE, 0xAD},
			chunk(TagVoxels, xyziContent(Voxel{4, 4, 4, 1})),
		),
	)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(m.Voxels) != 1 || m.Voxels[0].X != 4 {
		t.Errorf("child of unknown tag not folded: %+v", m.Voxels)
	}
}

func TestDecodeOpaqueKnownTags(t *testing.T) {
	for _, tag := range []string{"rCAM", "PACK", "rOBJ", "nTRN", "nGRP", "nSHP", "MATT", "LAYR", "IMAP", "NOTE"} {
		t.Run(tag, func(t *testing.T) {
			data := voxFile(
				chunk(tag, []byte{1, 2, 3, 4}),
				chunk(TagVoxels, xyziContent(Voxel{1, 1, 1, 1})),
			)
			m, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(m.Voxels) != 1 {
				t.Errorf("sibling after %s chunk lost", tag)
			}
			if !KnownTag(tag) {
				t.Errorf("KnownTag(%q) = false", tag)
			}
		})
	}
}

func TestDecodePalettePresence(t *testing.T) {
	colors := make([]byte, 256*4)
	// Slot 1 = opaque red: bytes r, g, b, a.
	colors[4], colors[7] = 0xFF, 0xFF

	// RGBA after the voxel list; placement must not matter.
	data := voxFile(
		chunk(TagVoxels, xyziContent(Voxel{0, 0, 0, 1})),
		chunk(TagPalette, colors),
	)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Palette == nil {
		t.Fatal("palette not recorded")
	}

	r := Resolve(m)
	if !r.CustomPalette {
		t.Fatal("CustomPalette = false with RGBA chunk present")
	}
	if (r.Colors[1] != RGBA{R: 0xFF, A: 0xFF}) {
		t.Errorf("slot 1 = %+v, want opaque red", r.Colors[1])
	}
	if (r.Colors[0] != RGBA{}) {
		t.Errorf("slot 0 = %+v, want zero", r.Colors[0])
	}
}

func TestDecodeErrors(t *testing.T) {
	truncated := voxFile(chunk(TagVoxels, xyziContent(Voxel{1, 1, 1, 1})))
	truncated = truncated[:len(truncated)-2] // cut into the last record

	// Content ends two bytes into a length prefix.
	prefixCut := voxFile(chunk(TagMaterial, append(matlContent(1), 0x06, 0x00)))

	// Key body declared longer than the bytes that follow it.
	bodyCut := voxFile(chunk(TagMaterial, matlContent(1, "_rough", "0.4")[:14]))

	overlongString := matlContent(1, "_rough", "0.4")
	binary.LittleEndian.PutUint32(overlongString[8:], 1<<20) // key claims a megabyte

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", []byte("VOXX\x96\x00\x00\x00"), ErrInvalidSignature},
		{"empty file", nil, ErrInvalidSignature},
		{"header cut short", append(voxFile(), 'X', 'Y', 'Z'), ErrTruncatedHeader},
		{"content past eof", voxFile(chunk(TagSize, u32le(1)))[:16], ErrTruncatedHeader},
		{"size content short", voxFile(chunk(TagSize, u32le(1))), ErrTruncatedContent},
		{"voxel count short", voxFile(chunk(TagVoxels, []byte{1, 0})), ErrTruncatedVoxelList},
		{"voxel records short", truncated, ErrTruncatedContent},
		{"dict prefix cut", prefixCut, ErrTruncatedDictEntry},
		{"dict body cut", bodyCut, ErrMalformedDictEntry},
		{"dict string overlong", voxFile(chunk(TagMaterial, overlongString)), ErrMalformedDictEntry},
		{"palette short", voxFile(chunk(TagPalette, make([]byte, 100))), ErrTruncatedContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode err = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Error("partial model returned alongside error")
			}
		})
	}
}

func TestDecodeChildrenOvershoot(t *testing.T) {
	// MAIN declares more children bytes than the file holds.
	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.Write(u32le(150))
	buf.WriteString("MAIN")
	buf.Write(u32le(0))
	buf.Write(u32le(500))

	if _, err := Decode(buf.Bytes()); !errors.Is(err, ErrTruncatedContent) {
		t.Errorf("err = %v, want ErrTruncatedContent", err)
	}
}

func TestDecodeDepthCeiling(t *testing.T) {
	// Nest empty containers one past the ceiling.
	inner := chunk("ZZZZ", nil)
	for i := 0; i < maxDepth+1; i++ {
		inner = chunk("ZZZZ", nil, inner)
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.Write(u32le(150))
	buf.Write(inner)

	if _, err := Decode(buf.Bytes()); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("err = %v, want ErrNestingTooDeep", err)
	}
}

func TestDecodeSignatureStopsEarly(t *testing.T) {
	// Anything after a bad signature must never be touched; garbage lengths
	// here would panic a reader that kept going.
	data := append([]byte("NOPE"), bytes.Repeat([]byte{0xFF}, 64)...)
	if _, err := Decode(data); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("err = %v, want ErrInvalidSignature", err)
	}
}
