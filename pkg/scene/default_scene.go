package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// DefaultZoom is the viewport height of built-in scene cameras
const DefaultZoom = 2.0

// builtinScenes maps scene IDs to their constructors
var builtinScenes = map[string]func(aspectRatio float64) *Scene{
	"default":       NewDefaultScene,
	"single-sphere": NewSingleSphereScene,
}

// BuiltinSceneNames returns the IDs of all built-in scenes in sorted order
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates the built-in scene with the given ID
func NewBuiltinScene(name string, aspectRatio float64) (*Scene, error) {
	constructor, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in scene %q", name)
	}
	return constructor(aspectRatio), nil
}

// NewDefaultScene creates three spheres resting on a large ground sphere:
// glass in the center and on the left, brushed gold on the right
func NewDefaultScene(aspectRatio float64) *Scene {
	s := NewScene("default", renderer.NewDefaultCamera(aspectRatio, DefaultZoom))

	// Create materials
	groundYellow := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	glassCenter := material.NewDielectric(1.5)
	glassLeft := material.NewDielectric(1.5)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, glassCenter)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, groundYellow)
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, glassLeft)
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, metalGold)

	return s
}

// NewSingleSphereScene creates one matte sphere directly in front of the camera
func NewSingleSphereScene(aspectRatio float64) *Scene {
	s := NewScene("single-sphere", renderer.NewDefaultCamera(aspectRatio, DefaultZoom))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	return s
}
