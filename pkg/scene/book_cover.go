package scene

import (
	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/geometry"
	"github.com/df07/luminara/pkg/material"
)

// bookCoverCamera returns the camera used by the book-cover and mesh scenes
func bookCoverCamera(aspectRatio float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10,
	}
}

// NewBookCoverScene creates the randomized field of small spheres around three
// large ones. The layout is drawn from sampler, so a seeded sampler gives a
// reproducible scene.
func NewBookCoverScene(aspectRatio float64, sampler core.Sampler, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := bookCoverCamera(aspectRatio)
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig, core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.5, 0.7, 1.0))

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	// Shared glass for all small dielectric spheres
	glass := s.AddMaterial(material.NewDielectric(1.5))
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var id core.MaterialID
			switch {
			case chooseMat < 0.8:
				// Diffuse
				albedo := core.RandomVec3(0, 1, sampler).MultiplyVec(core.RandomVec3(0, 1, sampler))
				id = s.AddMaterial(material.NewLambertian(albedo))
			case chooseMat < 0.95:
				// Metal
				albedo := core.RandomVec3(0.5, 1, sampler)
				fuzz := core.RandomInRange(0, 0.5, sampler)
				id = s.AddMaterial(material.NewMetal(albedo, fuzz))
			default:
				id = glass
			}
			s.Add(geometry.NewSphere(center, 0.2, id))
		}
	}

	s.addBookCoverSpheres(glass)

	return s
}

// addBookCoverSpheres adds the three large spheres in the middle of the scene
func (s *Scene) addBookCoverSpheres(glass core.MaterialID) {
	brown := s.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	mirror := s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, brown),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, mirror),
	)
}
