package scene

import (
	"fmt"

	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/geometry"
	"github.com/df07/luminara/pkg/material"
)

// Scene contains all the elements needed for rendering.
// Shapes refer to entries of Materials by index.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         []geometry.Shape       // Objects in the scene
	World          *geometry.HittableList // Closest-hit aggregate over Shapes
	Materials      []material.Material    // Scene-owned material table
	SkyColor1      core.Vec3              // Sky color at the bottom of the gradient
	SkyColor2      core.Vec3              // Sky color at the top of the gradient
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the sampling settings used by the built-in scenes
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        20,
	}
}

// NewScene creates an empty scene with the given camera and sky gradient
func NewScene(cameraConfig geometry.CameraConfig, skyColor1, skyColor2 core.Vec3) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Shapes:         make([]geometry.Shape, 0),
		World:          geometry.NewHittableList(),
		Materials:      make([]material.Material, 0),
		SkyColor1:      skyColor1,
		SkyColor2:      skyColor2,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// AddMaterial stores a material in the scene and returns its index
func (s *Scene) AddMaterial(m material.Material) core.MaterialID {
	s.Materials = append(s.Materials, m)
	return core.MaterialID(len(s.Materials) - 1)
}

// Add appends shapes to the scene and its aggregate
func (s *Scene) Add(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.Shapes = append(s.Shapes, shape)
		s.World.Add(shape)
	}
}

// Material resolves a material index from a hit record
func (s *Scene) Material(id core.MaterialID) material.Material {
	return s.Materials[id]
}

// Validate checks that every shape refers to a material the scene owns
func (s *Scene) Validate() error {
	for i, shape := range s.Shapes {
		id, ok := materialOf(shape)
		if !ok {
			continue
		}
		if int(id) < 0 || int(id) >= len(s.Materials) {
			return fmt.Errorf("shape %d refers to material %d, scene has %d materials", i, id, len(s.Materials))
		}
	}
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

func materialOf(shape geometry.Shape) (core.MaterialID, bool) {
	switch obj := shape.(type) {
	case *geometry.Sphere:
		return obj.Material, true
	case *geometry.Triangle:
		return obj.Material, true
	default:
		return 0, false
	}
}
