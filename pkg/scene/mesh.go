package scene

import (
	"fmt"

	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/geometry"
	"github.com/df07/luminara/pkg/material"
)

// defaultMeshOBJ is an octahedron used when no OBJ file is given
const defaultMeshOBJ = `# octahedron
o octahedron
v 0 1 0
v 1 0 0
v 0 0 1
v -1 0 0
v 0 0 -1
v 0 -1 0
f 1 3 2
f 1 4 3
f 1 5 4
f 1 2 5
f 6 2 3
f 6 3 4
f 6 4 5
f 6 5 2
`

// MeshConfig describes the mesh placed in a mesh scene
type MeshConfig struct {
	Path   string      // OBJ file to load; empty uses the built-in octahedron
	Scale  float64     // Uniform scale (0 = 1)
	Offset core.Vec3   // Translation applied after scaling
	Logger core.Logger // Receives OBJ parser statistics when set
}

// NewMeshScene places a triangle mesh loaded from a Wavefront OBJ file on the
// book-cover ground, flanked by a glass and a metal sphere
func NewMeshScene(aspectRatio float64, config MeshConfig, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	cameraConfig := bookCoverCamera(aspectRatio)
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene(cameraConfig, core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.5, 0.7, 1.0))

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	red := s.AddMaterial(material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	glass := s.AddMaterial(material.NewDielectric(1.5))
	mirror := s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	options := geometry.MeshOptions{
		Material:    red,
		BackCulling: true,
		Scale:       config.Scale,
		Offset:      config.Offset,
		Logger:      config.Logger,
		Resolve: func(name string, diffuse core.Vec3) core.MaterialID {
			// MTL diffuse colors become lambertian materials
			return s.AddMaterial(material.NewLambertian(diffuse))
		},
	}

	var triangles []*geometry.Triangle
	var err error
	if config.Path == "" {
		if options.Offset.Equals(core.Vec3{}) {
			// Rest the octahedron on the ground
			options.Offset = core.NewVec3(0, 1, 0)
		}
		triangles, err = geometry.ParseOBJ("octahedron", []byte(defaultMeshOBJ), options)
	} else {
		triangles, err = geometry.LoadOBJ(config.Path, options)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh scene: %w", err)
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("mesh %q has no faces", config.Path)
	}

	for _, tri := range triangles {
		s.Add(tri)
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 2.5), 1.0, glass),
		geometry.NewSphere(core.NewVec3(0, 1, -2.5), 1.0, mirror),
	)

	if config.Logger != nil {
		config.Logger.Printf("Mesh scene: %d triangles\n", len(triangles))
	}

	return s, nil
}
