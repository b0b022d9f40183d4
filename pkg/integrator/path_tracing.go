package integrator

import (
	"math"

	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/scene"
)

// ShadowEpsilon is the minimum hit distance for secondary rays, avoiding
// self-intersection at the surface a ray leaves from
const ShadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a sky
// gradient as the only light source
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray using the configured bounce limit
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.Shade(ray, scene, pt.config.MaxDepth, sampler)
}

// Shade follows a ray through at most depth bounces
func (pt *PathTracingIntegrator) Shade(ray core.Ray, scene *scene.Scene, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := scene.World.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray, scene)
	}

	scatter, didScatter := scene.Material(hit.Material).Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(pt.Shade(scatter.Scattered, scene, depth-1, sampler))
}

// BackgroundGradient blends the scene's two sky colors by the ray's height
func BackgroundGradient(ray core.Ray, scene *scene.Scene) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return scene.SkyColor1.Multiply(1.0 - t).Add(scene.SkyColor2.Multiply(t))
}
