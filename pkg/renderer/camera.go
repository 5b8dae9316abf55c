package renderer

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Camera is a pinhole camera looking down -z.
// Derived vectors are recomputed on every call, so changing a field never leaves stale state.
type Camera struct {
	Width       float64 // Viewport width in world units
	Height      float64 // Viewport height in world units
	FocalLength float64 // Distance from position to the viewport plane
	Position    core.Vec3
}

// NewCamera creates a camera with an explicit viewport
func NewCamera(width, height, focalLength float64, position core.Vec3) *Camera {
	return &Camera{
		Width:       width,
		Height:      height,
		FocalLength: focalLength,
		Position:    position,
	}
}

// NewDefaultCamera creates a camera at the origin whose viewport is zoom units tall
func NewDefaultCamera(aspectRatio, zoom float64) *Camera {
	return NewCamera(zoom*aspectRatio, zoom, 1.0, core.NewVec3(0, 0, 0))
}

// Horizontal returns the vector spanning the viewport from left to right
func (c *Camera) Horizontal() core.Vec3 {
	return core.NewVec3(c.Width, 0, 0)
}

// Vertical returns the vector spanning the viewport from bottom to top
func (c *Camera) Vertical() core.Vec3 {
	return core.NewVec3(0, c.Height, 0)
}

// TopLeft returns the world position of the viewport's top-left corner
func (c *Camera) TopLeft() core.Vec3 {
	return c.Position.
		Subtract(c.Horizontal().Divide(2)).
		Add(c.Vertical().Divide(2)).
		Subtract(core.NewVec3(0, 0, c.FocalLength))
}

// GetRay generates a ray for viewport fractions (u, v) where u grows to the right
// and v grows downward, both in [0, 1]
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.TopLeft().
		Add(c.Horizontal().Multiply(u)).
		Subtract(c.Vertical().Multiply(v)).
		Subtract(c.Position)

	return core.NewRay(c.Position, direction)
}
