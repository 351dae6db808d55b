// Package convert turns a decoded voxel model into a bella scene: the
// render scaffold, one positioning node per voxel instancing a shared box,
// and one material per palette slot.
package convert

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/oomer/vox2bella/internal/config"
	"github.com/oomer/vox2bella/pkg/bella"
	"github.com/oomer/vox2bella/pkg/vox"
)

// viewDir is the direction from the model center toward the camera,
// matching the stock framing of the original scaffold.
var viewDir = normalize(-88.12259018466, -54.468125200218, 50.706001690932)

// defaultCameraXform frames an empty scene; used when the model has no
// voxels and there is nothing to aim at.
var defaultCameraXform = bella.Mat4{
	0.525768608156, -0.850627633385, 0, 0,
	-0.234464751651, -0.144921468924, -0.961261695938, 0,
	0.817675761479, 0.505401223947, -0.275637355817, 0,
	-88.12259018466, -54.468125200218, 50.706001690932, 1,
}

// Build assembles the scene for a decoded model. The resolved palette
// decides the material style: a file-supplied palette gets dielectrics,
// the built-in default gets diffuse oren-nayar surfaces.
func Build(m *vox.Model, cfg *config.Config, log *slog.Logger) (*bella.Scene, error) {
	r := vox.Resolve(m)
	s := bella.NewScene()

	box, err := buildScaffold(s, cfg, r.Framing)
	if err != nil {
		return nil, err
	}
	if err := buildVoxels(s, m, box); err != nil {
		return nil, err
	}
	if err := buildMaterials(s, cfg, r); err != nil {
		return nil, err
	}
	if err := bindMaterials(s, m); err != nil {
		return nil, err
	}

	log.Info("scene assembled",
		"voxels", len(m.Voxels),
		"materials", len(m.Materials),
		"customPalette", r.CustomPalette,
		"radius", r.Framing.Radius,
	)
	return s, nil
}

// buildScaffold creates the fixed nodes every converted scene carries and
// returns the shared box geometry.
func buildScaffold(s *bella.Scene, cfg *config.Config, f vox.Framing) (*bella.Node, error) {
	beautyPass, err := s.CreateNode("beautyPass", "beautyPass1")
	if err != nil {
		return nil, err
	}
	cameraXform, err := s.CreateNode("xform", "cameraXform1")
	if err != nil {
		return nil, err
	}
	camera, err := s.CreateNode("camera", "camera1")
	if err != nil {
		return nil, err
	}
	sensor, err := s.CreateNode("sensor", "sensor1")
	if err != nil {
		return nil, err
	}
	lens, err := s.CreateNode("thinLens", "thinLens1")
	if err != nil {
		return nil, err
	}
	imageDome, err := s.CreateNode("imageDome", "imageDome1")
	if err != nil {
		return nil, err
	}
	groundPlane, err := s.CreateNode("groundPlane", "groundPlane1")
	if err != nil {
		return nil, err
	}
	box, err := s.CreateNode("box", "box1")
	if err != nil {
		return nil, err
	}
	groundMat, err := s.CreateNode("quickMaterial", "groundMat1")
	if err != nil {
		return nil, err
	}
	if _, err := s.CreateNode("sun", "sun1"); err != nil {
		return nil, err
	}

	camera.Set("resolution", bella.Vec2{X: float64(cfg.Width), Y: float64(cfg.Height)})
	camera.Set("lens", bella.Ref{Node: lens})
	camera.Set("sensor", bella.Ref{Node: sensor})
	camera.ParentTo(cameraXform)
	cameraXform.ParentTo(s.World())
	cameraXform.Set("steps[0].xform", cameraXformFor(f))

	imageDome.Set("ext", bella.Str(cfg.Environment.Ext))
	imageDome.Set("dir", bella.Str(cfg.Environment.Dir))
	imageDome.Set("multiplier", bella.Float(cfg.Environment.Multiplier))
	imageDome.Set("file", bella.Str(cfg.Environment.File))

	groundPlane.Set("elevation", bella.Float(cfg.Ground.Elevation))
	groundPlane.Set("material", bella.Ref{Node: groundMat})
	groundMat.Set("type", bella.Str(cfg.Ground.Type))
	groundMat.Set("roughness", bella.Float(cfg.Ground.Roughness))

	box.Set("radius", bella.Float(cfg.Voxel.Radius))
	box.Set("sizeX", bella.Float(cfg.Voxel.Size))
	box.Set("sizeY", bella.Float(cfg.Voxel.Size))
	box.Set("sizeZ", bella.Float(cfg.Voxel.Size))

	settings := s.Settings()
	settings.Set("beautyPass", bella.Ref{Node: beautyPass})
	settings.Set("camera", bella.Ref{Node: camera})
	settings.Set("environment", bella.Ref{Node: imageDome})
	settings.Set("iprScale", bella.Float(100))
	settings.Set("threads", bella.Int(0))
	settings.Set("groundPlane", bella.Ref{Node: groundPlane})
	settings.Set("iprNavigation", bella.Str("maya"))

	return box, nil
}

// buildVoxels creates one positioning node per voxel record, each
// instancing the shared box.
func buildVoxels(s *bella.Scene, m *vox.Model, box *bella.Node) error {
	for i, v := range m.Voxels {
		xform, err := s.CreateNode("xform", fmt.Sprintf("voxXform%d", i))
		if err != nil {
			return fmt.Errorf("voxel %d: %w", i, err)
		}
		xform.ParentTo(s.World())
		box.ParentTo(xform)
		xform.Set("steps[0].xform", bella.Translation(float64(v.X), float64(v.Y), float64(v.Z)))
	}
	return nil
}

// buildMaterials creates voxMat0..voxMat255 from the resolved palette.
func buildMaterials(s *bella.Scene, cfg *config.Config, r vox.Resolved) error {
	for i, c := range r.Colors {
		name := fmt.Sprintf("voxMat%d", i)
		color := bella.Rgba{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
			A: float64(c.A) / 255.0,
		}

		if r.CustomPalette {
			mat, err := s.CreateNode("dielectric", name)
			if err != nil {
				return fmt.Errorf("palette slot %d: %w", i, err)
			}
			mat.Set("ior", bella.Float(cfg.Material.IOR))
			mat.Set("roughness", bella.Float(cfg.Material.Roughness))
			mat.Set("depth", bella.Float(cfg.Material.Depth))
			mat.Set("transmittance", color)
			continue
		}

		mat, err := s.CreateNode("orenNayar", name)
		if err != nil {
			return fmt.Errorf("palette slot %d: %w", i, err)
		}
		mat.Set("reflectance", color)
	}
	return nil
}

// bindMaterials points each positioning node at the material for its
// voxel's color index. Done as a second pass so every material exists
// regardless of chunk order in the file.
func bindMaterials(s *bella.Scene, m *vox.Model) error {
	for i, v := range m.Voxels {
		xform := s.Find(fmt.Sprintf("voxXform%d", i))
		mat := s.Find(fmt.Sprintf("voxMat%d", v.ColorIndex))
		if xform == nil || mat == nil {
			return fmt.Errorf("voxel %d: node pair missing for color %d", i, v.ColorIndex)
		}
		xform.Set("material", bella.Ref{Node: mat})
	}
	return nil
}

// cameraXformFor aims the camera at the framing center from the stock view
// direction, far enough back to cover the bounding sphere. A degenerate
// framing keeps the stock transform.
func cameraXformFor(f vox.Framing) bella.Mat4 {
	if f.Radius == 0 {
		return defaultCameraXform
	}

	dist := f.Radius * 2.5
	eyeX := f.CenterX + viewDir[0]*dist
	eyeY := f.CenterY + viewDir[1]*dist
	eyeZ := f.CenterZ + viewDir[2]*dist

	// Camera-to-world basis: z points from target to eye, x and y complete
	// a right-handed frame with world +z up.
	zx, zy, zz := normalize3(eyeX-f.CenterX, eyeY-f.CenterY, eyeZ-f.CenterZ)
	xx, xy, xz := normalize3(cross(0, 0, 1, zx, zy, zz))
	yx, yy, yz := cross(zx, zy, zz, xx, xy, xz)

	return bella.Mat4{
		xx, xy, xz, 0,
		yx, yy, yz, 0,
		zx, zy, zz, 0,
		eyeX, eyeY, eyeZ, 1,
	}
}

func normalize(x, y, z float64) [3]float64 {
	nx, ny, nz := normalize3(x, y, z)
	return [3]float64{nx, ny, nz}
}

func normalize3(x, y, z float64) (float64, float64, float64) {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 1
	}
	return x / l, y / l, z / l
}

func cross(ax, ay, az, bx, by, bz float64) (float64, float64, float64) {
	return ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx
}
