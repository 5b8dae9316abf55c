package geometry

import "github.com/df07/go-weekend-raytracer/pkg/core"

// HittableList is an unordered collection of shapes answering nearest-hit queries
// by testing every member. It is itself a core.Shape.
type HittableList struct {
	objects []core.Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...core.Shape) *HittableList {
	list := &HittableList{}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape to the list
func (l *HittableList) Add(shape core.Shape) {
	l.objects = append(l.objects, shape)
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the shapes in insertion order
func (l *HittableList) Objects() []core.Shape {
	return l.objects
}

// Hit returns the closest intersection among all shapes
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range l.objects {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
