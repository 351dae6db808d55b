package vox

// Voxel is one unit cube: a position inside the 0..255 grid and an index
// into the 256-entry palette.
type Voxel struct {
	X, Y, Z    uint8
	ColorIndex uint8
}

// Dims is a declared grid size from a SIZE chunk. It is diagnostic only;
// voxels outside the declared box are still accepted.
type Dims struct {
	X, Y, Z uint32
}

// Material is a decoded MATL chunk: a material id and its properties in
// file order. The wire format carries values as strings; see TypedProperties
// for the numeric/bool interpretation of known keys.
type Material struct {
	ID    int32
	Props *Dict
}

// Extent is the axis-aligned bounding box over every voxel seen. Before the
// first voxel HasAny is false and the bounds are meaningless; afterward each
// voxel only ever widens the box.
type Extent struct {
	MinX, MinY, MinZ uint8
	MaxX, MaxY, MaxZ uint8
	HasAny           bool
}

func (e *Extent) add(v Voxel) {
	if !e.HasAny {
		e.MinX, e.MinY, e.MinZ = v.X, v.Y, v.Z
		e.MaxX, e.MaxY, e.MaxZ = v.X, v.Y, v.Z
		e.HasAny = true
		return
	}
	e.MinX = min(e.MinX, v.X)
	e.MinY = min(e.MinY, v.Y)
	e.MinZ = min(e.MinZ, v.Z)
	e.MaxX = max(e.MaxX, v.X)
	e.MaxY = max(e.MaxY, v.Y)
	e.MaxZ = max(e.MaxZ, v.Z)
}

// Model is the decoded file: every voxel record in file order (across all
// XYZI chunks), the bounding extent, the custom palette if an RGBA chunk was
// present, and the materials keyed by id.
type Model struct {
	Voxels    []Voxel
	Extent    Extent
	Dims      []Dims
	Palette   *[256]uint32
	Materials map[int32]Material
}

// fold applies one decoded chunk payload to the in-progress model.
func (m *Model) fold(p payload) {
	switch p := p.(type) {
	case dimsPayload:
		m.Dims = append(m.Dims, Dims(p))
	case voxelsPayload:
		for _, v := range p {
			m.Voxels = append(m.Voxels, v)
			m.Extent.add(v)
		}
	case palettePayload:
		colors := [256]uint32(p)
		m.Palette = &colors
	case materialPayload:
		if m.Materials == nil {
			m.Materials = make(map[int32]Material)
		}
		m.Materials[p.ID] = Material(p)
	case opaquePayload:
		// Uninterpreted; children are still walked by the caller.
	}
}

// payload is the result of decoding one chunk's content bytes.
type payload interface{ isPayload() }

type dimsPayload Dims

type voxelsPayload []Voxel

type palettePayload [256]uint32

type materialPayload Material

type opaquePayload struct {
	tag string
	raw []byte
}

func (dimsPayload) isPayload()     {}
func (voxelsPayload) isPayload()   {}
func (palettePayload) isPayload()  {}
func (materialPayload) isPayload() {}
func (opaquePayload) isPayload()   {}
