package material

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Material {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Material{kind: KindMetal, albedo: albedo, fuzzness: fuzzness}
}

// Fuzzness returns the reflection perturbation radius, 0 for a perfect mirror
func (m *Material) Fuzzness() float64 {
	return m.fuzzness
}

func (m *Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (core.Ray, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.fuzzness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.fuzzness))
	}

	// Fuzz pushed the ray into the surface: absorbed
	if reflected.Dot(hit.Normal) <= 0 {
		return core.Ray{}, false
	}

	return core.NewRay(hit.Point, reflected), true
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
