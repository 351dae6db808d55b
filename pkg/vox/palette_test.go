package vox

import (
	"math"
	"testing"
)

func TestUnpackColor(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want RGBA
	}{
		{"zero", 0x00000000, RGBA{}},
		{"white", 0xFFFFFFFF, RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
		{"red", 0xFF0000FF, RGBA{R: 0xFF, A: 0xFF}},
		{"blue", 0xFFFF0000, RGBA{B: 0xFF, A: 0xFF}},
		{"mixed", 0xFFCC99FF, RGBA{R: 0xFF, G: 0x99, B: 0xCC, A: 0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unpackColor(tt.in); got != tt.want {
				t.Errorf("unpackColor(%#x) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultPaletteTable(t *testing.T) {
	// Spot-check the built-in table against known MagicaVoxel entries.
	if defaultPalette[0] != 0x00000000 {
		t.Errorf("slot 0 = %#x, want 0", defaultPalette[0])
	}
	if defaultPalette[1] != 0xFFFFFFFF {
		t.Errorf("slot 1 = %#x, want opaque white", defaultPalette[1])
	}
	if defaultPalette[255] != 0xFF111111 {
		t.Errorf("slot 255 = %#x, want 0xff111111", defaultPalette[255])
	}
}

func TestResolveDefaultVsCustom(t *testing.T) {
	m := &Model{}
	r := Resolve(m)
	if r.CustomPalette {
		t.Error("CustomPalette = true without RGBA chunk")
	}
	if (r.Colors[1] != RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("default slot 1 = %+v, want opaque white", r.Colors[1])
	}

	var custom [256]uint32
	custom[1] = 0xFF0000FF // opaque red
	m.Palette = &custom
	r = Resolve(m)
	if !r.CustomPalette {
		t.Error("CustomPalette = false with palette set")
	}
	if (r.Colors[1] != RGBA{R: 0xFF, A: 0xFF}) {
		t.Errorf("custom slot 1 = %+v, want opaque red", r.Colors[1])
	}
}

func TestResolveFraming(t *testing.T) {
	m := &Model{}
	m.Extent.add(Voxel{X: 0, Y: 0, Z: 0})
	m.Extent.add(Voxel{X: 10, Y: 4, Z: 2})

	f := Resolve(m).Framing
	if f.CenterX != 5 || f.CenterY != 2 || f.CenterZ != 1 {
		t.Errorf("center = (%v,%v,%v), want (5,2,1)", f.CenterX, f.CenterY, f.CenterZ)
	}
	want := math.Sqrt(10*10+4*4+2*2) / 2
	if math.Abs(f.Radius-want) > 1e-12 {
		t.Errorf("radius = %v, want %v", f.Radius, want)
	}
}

func TestResolveSingleVoxelFraming(t *testing.T) {
	m := &Model{}
	m.Extent.add(Voxel{X: 7, Y: 7, Z: 7})

	f := Resolve(m).Framing
	if f.CenterX != 7 || f.CenterY != 7 || f.CenterZ != 7 {
		t.Errorf("center = (%v,%v,%v), want (7,7,7)", f.CenterX, f.CenterY, f.CenterZ)
	}
	if f.Radius != 0 {
		t.Errorf("radius = %v, want 0 for a point extent", f.Radius)
	}
}
