package geometry

import (
	"math"

	"github.com/df07/luminara/pkg/core"
)

// Epsilon guards the Möller-Trumbore determinant against parallel rays
const Epsilon = 1e-6

// Triangle represents a single triangle with per-vertex normals
type Triangle struct {
	Vertices    [3]core.Vec3
	Normals     [3]core.Vec3 // Interpolated across the face with barycentric weights
	Material    core.MaterialID
	BackCulling bool // Ignore hits where the ray approaches from behind the winding order
}

// NewTriangle creates a triangle with explicit vertex normals
func NewTriangle(vertices, normals [3]core.Vec3, material core.MaterialID, backCulling bool) *Triangle {
	return &Triangle{
		Vertices:    vertices,
		Normals:     normals,
		Material:    material,
		BackCulling: backCulling,
	}
}

// NewFlatTriangle creates a triangle whose vertex normals all equal the face normal
func NewFlatTriangle(v0, v1, v2 core.Vec3, material core.MaterialID, backCulling bool) *Triangle {
	normal := FaceNormal(v0, v1, v2)
	return NewTriangle(
		[3]core.Vec3{v0, v1, v2},
		[3]core.Vec3{normal, normal, normal},
		material,
		backCulling,
	)
}

// FaceNormal returns the unit normal of the winding v0 → v1 → v2
func FaceNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (tri *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	t, u, v, ok := tri.intersect(ray)
	if !ok || t <= tMin || t >= tMax {
		return nil, false
	}

	// Interpolate the vertex normals
	n := tri.Normals[0].Multiply(1 - u - v).
		Add(tri.Normals[1].Multiply(u)).
		Add(tri.Normals[2].Multiply(v))

	return &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   n.Normalize(),
		Material: tri.Material,
	}, true
}

// intersect returns the ray parameter and barycentric coordinates of the hit
func (tri *Triangle) intersect(ray core.Ray) (t, u, v float64, ok bool) {
	p0, p1, p2 := tri.Vertices[0], tri.Vertices[1], tri.Vertices[2]

	// Edges sharing p0
	e1 := p1.Subtract(p0)
	e2 := p2.Subtract(p0)

	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)

	// Back faces and parallel rays are rejected when culling; without
	// culling only the near-parallel case is
	if tri.BackCulling {
		if det < Epsilon {
			return 0, 0, 0, false
		}
	} else if math.Abs(det) < Epsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det

	// Distance from p0 to ray origin
	s := ray.Origin.Subtract(p0)

	u = s.Dot(p) * invDet
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = ray.Direction.Dot(q) * invDet
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * invDet
	return t, u, v, true
}
