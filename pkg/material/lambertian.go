package material

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{kind: KindLambertian, albedo: albedo}
}

// scatterLambertian aims the new ray at normal + a random point in the unit sphere,
// which approximates a cosine-weighted lobe. It never absorbs.
func scatterLambertian(hit HitRecord, sampler core.Sampler) (core.Ray, bool) {
	direction := hit.Normal.Add(core.RandomInUnitSphere(sampler))

	// The sample can cancel the normal exactly; fall back to the normal itself
	if direction.LengthSquared() < 1e-16 {
		direction = hit.Normal
	}

	return core.NewRay(hit.Point, direction), true
}
