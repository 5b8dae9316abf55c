package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// File is the on-disk YAML form of a scene
type File struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Group       string                  `yaml:"group"`
	Background  *BackgroundSpec         `yaml:"background"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Spheres     []SphereSpec            `yaml:"spheres"`
}

// BackgroundSpec holds the sky gradient endpoints
type BackgroundSpec struct {
	Top    []float64 `yaml:"top"`
	Bottom []float64 `yaml:"bottom"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type        string    `yaml:"type"` // diffuse, metal or dielectric
	Albedo      []float64 `yaml:"albedo"`
	Fuzz        float64   `yaml:"fuzz"`
	IOR         float64   `yaml:"ior"`
	Attenuation []float64 `yaml:"attenuation"`
}

// SphereSpec places a sphere with a material referenced by name
type SphereSpec struct {
	Center   []float64 `yaml:"center"`
	Radius   float64   `yaml:"radius"`
	Material string    `yaml:"material"`
}

// LoadSceneFile reads and builds a scene from a YAML file
func LoadSceneFile(path string, aspectRatio float64) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(data, aspectRatio)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// ParseScene builds a scene from YAML data.
// Spheres naming the same material share a single instance.
func ParseScene(data []byte, aspectRatio float64) (*Scene, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return file.Build(aspectRatio)
}

// Build validates the file contents and creates the scene
func (f *File) Build(aspectRatio float64) (*Scene, error) {
	if len(f.Spheres) == 0 {
		return nil, fmt.Errorf("scene has no spheres")
	}

	name := f.Name
	if name == "" {
		name = "unnamed"
	}
	s := NewScene(name, renderer.NewDefaultCamera(aspectRatio, DefaultZoom))

	if f.Background != nil {
		if f.Background.Top != nil {
			top, err := toVec3(f.Background.Top)
			if err != nil {
				return nil, fmt.Errorf("background top: %w", err)
			}
			s.TopColor = top
		}
		if f.Background.Bottom != nil {
			bottom, err := toVec3(f.Background.Bottom)
			if err != nil {
				return nil, fmt.Errorf("background bottom: %w", err)
			}
			s.BottomColor = bottom
		}
	}

	materials := make(map[string]core.Material, len(f.Materials))
	for matName, spec := range f.Materials {
		mat, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", matName, err)
		}
		materials[matName] = mat
	}

	for i, spec := range f.Spheres {
		center, err := toVec3(spec.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d center: %w", i, err)
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, spec.Radius)
		}
		mat, ok := materials[spec.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, spec.Material)
		}
		s.AddSphere(center, spec.Radius, mat)
	}

	return s, nil
}

// Build creates the material described by the spec
func (m MaterialSpec) Build() (core.Material, error) {
	switch m.Type {
	case "diffuse", "lambertian":
		albedo, err := toVec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := toVec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("albedo: %w", err)
		}
		if m.Fuzz < 0 || m.Fuzz > 1 {
			return nil, fmt.Errorf("fuzz must be within [0, 1], got %g", m.Fuzz)
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric", "glass":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("ior must be positive, got %g", m.IOR)
		}
		if m.Attenuation == nil {
			return material.NewDielectric(m.IOR), nil
		}
		attenuation, err := toVec3(m.Attenuation)
		if err != nil {
			return nil, fmt.Errorf("attenuation: %w", err)
		}
		return material.NewTintedDielectric(m.IOR, attenuation), nil
	case "":
		return nil, fmt.Errorf("missing material type")
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func toVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
