package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Default sky gradient: white at the horizon blending to blue overhead
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// Scene contains all the elements needed for rendering.
// It only grows during setup and is read-only while rendering.
type Scene struct {
	Name        string
	Camera      *renderer.Camera
	World       *geometry.HittableList // Objects in the scene
	TopColor    core.Vec3              // Sky color straight up
	BottomColor core.Vec3              // Sky color straight down
}

// NewScene creates an empty scene with the default sky
func NewScene(name string, camera *renderer.Camera) *Scene {
	return &Scene{
		Name:        name,
		Camera:      camera,
		World:       geometry.NewHittableList(),
		TopColor:    DefaultTopColor,
		BottomColor: DefaultBottomColor,
	}
}

// Add appends any shape to the scene
func (s *Scene) Add(shape core.Shape) {
	s.World.Add(shape)
}

// AddSphere adds a sphere; several spheres may share one material
func (s *Scene) AddSphere(center core.Vec3, radius float64, material core.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, material)
	s.World.Add(sphere)
	return sphere
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient endpoints
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetWorld returns the shape answering hit queries for the whole scene
func (s *Scene) GetWorld() core.Shape {
	return s.World
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

// countPrimitives counts shapes, descending into nested lists
func countPrimitives(shape core.Shape) int {
	switch obj := shape.(type) {
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects() {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}
