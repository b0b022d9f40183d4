package material

import (
	"math"

	"github.com/df07/luminara/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Exactly one ray is produced, reflected or refracted at random.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass does not tint
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	direction := rayIn.Direction
	reflected := direction.Reflect(hit.Normal)

	// Hit normals point outward, so the sign tells entering from exiting
	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	dirDotNormal := direction.Dot(hit.Normal)
	if dirDotNormal > 0 {
		// Exiting the material (glass to air)
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = dirDotNormal / direction.Length()
		cosine = math.Sqrt(1 - d.RefractiveIndex*d.RefractiveIndex*(1-cosine*cosine))
	} else {
		// Entering the material (air to glass)
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -dirDotNormal / direction.Length()
	}

	reflectProb := 1.0
	refracted, canRefract := direction.Refract(outwardNormal, refractionRatio)
	if canRefract {
		reflectProb = core.Schlick(cosine, d.RefractiveIndex)
	}

	scattered := core.NewRay(hit.Point, refracted)
	if sampler.Get1D() < reflectProb {
		scattered = core.NewRay(hit.Point, reflected)
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
	}, true
}
