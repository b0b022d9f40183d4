package scene

import (
	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/geometry"
	"github.com/df07/luminara/pkg/material"
)

// NewSimpleScene creates a small hand-authored scene: three spheres on a
// large ground sphere with two triangles behind them
func NewSimpleScene(aspectRatio float64, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 0, -10),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig, core.NewVec3(1.0, 0.9, 1.0), core.NewVec3(0.4, 0.5, 1.0))

	green := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.5, 0.1)))
	blue := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	gold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))
	glass := s.AddMaterial(material.NewDielectric(1.5))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, green),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, blue),
		geometry.NewSphere(core.NewVec3(1, 0, 0), 0.5, gold),
		geometry.NewSphere(core.NewVec3(-1, 0, 0), 0.5, glass),
	)

	// Both triangles share the normal of the first one
	front := [3]core.Vec3{
		core.NewVec3(0, 1, 0.5),
		core.NewVec3(1, 0, 0.5),
		core.NewVec3(-1, 0, 0.5),
	}
	back := [3]core.Vec3{
		core.NewVec3(0.5, 1, 1),
		core.NewVec3(1.5, 0, 1),
		core.NewVec3(-0.5, 0, 1),
	}
	n := front[0].Cross(front[1])
	normals := [3]core.Vec3{n, n, n}

	s.Add(
		geometry.NewTriangle(front, normals, glass, true),
		geometry.NewTriangle(back, normals, blue, true),
	)

	return s
}
