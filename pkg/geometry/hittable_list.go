package geometry

import (
	"github.com/df07/luminara/pkg/core"
)

// HittableList is an aggregate shape that scans its children linearly.
// It holds references only; the shapes belong to the scene.
type HittableList struct {
	Objects []Shape
}

// NewHittableList creates a list over the given shapes
func NewHittableList(objects ...Shape) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends shapes to the list
func (l *HittableList) Add(objects ...Shape) {
	l.Objects = append(l.Objects, objects...)
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest intersection among all children
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
