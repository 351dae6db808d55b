// Package config holds the render settings applied to every converted
// scene, with defaults matching the stock scaffold and optional overrides
// from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the scene scaffold configuration.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Environment Environment `yaml:"environment"`
	Ground      Ground      `yaml:"ground"`
	Voxel       Voxel       `yaml:"voxel"`
	Material    Material    `yaml:"material"`
}

// Environment is the image dome lighting the scene.
type Environment struct {
	Dir        string  `yaml:"dir"`
	File       string  `yaml:"file"`
	Ext        string  `yaml:"ext"`
	Multiplier float64 `yaml:"multiplier"`
}

// Ground is the ground plane under the model.
type Ground struct {
	Elevation float64 `yaml:"elevation"`
	Type      string  `yaml:"type"`
	Roughness float64 `yaml:"roughness"`
}

// Voxel is the shared unit-box geometry every voxel instances.
type Voxel struct {
	Radius float64 `yaml:"radius"`
	Size   float64 `yaml:"size"`
}

// Material is the dielectric used for custom-palette materials.
type Material struct {
	IOR       float64 `yaml:"ior"`
	Roughness float64 `yaml:"roughness"`
	Depth     float64 `yaml:"depth"`
}

// DefaultConfig returns the stock scaffold values.
func DefaultConfig() *Config {
	return &Config{
		Width:  1920,
		Height: 1080,
		Environment: Environment{
			Dir:        "./resources",
			File:       "DayEnvironmentHDRI019_1K-TONEMAPPED",
			Ext:        ".jpg",
			Multiplier: 6.0,
		},
		Ground: Ground{
			Elevation: -0.5,
			Type:      "metal",
			Roughness: 22.0,
		},
		Voxel: Voxel{
			Radius: 0.33,
			Size:   0.99,
		},
		Material: Material{
			IOR:       1.41,
			Roughness: 40.0,
			Depth:     33.0,
		},
	}
}

// Load reads a YAML settings file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("resolution %dx%d out of range", c.Width, c.Height)
	}
	if c.Voxel.Size <= 0 {
		return fmt.Errorf("voxel size %v out of range", c.Voxel.Size)
	}
	return nil
}

// Merge applies file-loaded values into cfg, but only for fields that were
// NOT explicitly set via CLI flags. explicitFlags contains the flag names
// that were provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["env"] {
		cfg.Environment = fromFile.Environment
	}
	cfg.Ground = fromFile.Ground
	cfg.Voxel = fromFile.Voxel
	cfg.Material = fromFile.Material
}
