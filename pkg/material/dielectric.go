package material

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewDielectric creates a clear transparent material like glass
func NewDielectric(refractiveIndex float64) *Material {
	return NewTintedDielectric(core.NewVec3(1, 1, 1), refractiveIndex)
}

// NewTintedDielectric creates a transparent material that attenuates by albedo on every bounce
func NewTintedDielectric(albedo core.Vec3, refractiveIndex float64) *Material {
	return &Material{kind: KindDielectric, albedo: albedo, refractiveIndex: refractiveIndex}
}

// RefractiveIndex returns the index of refraction relative to the surrounding medium
func (m *Material) RefractiveIndex() float64 {
	return m.refractiveIndex
}

func (m *Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (core.Ray, bool) {
	direction := rayIn.Direction
	dirDotNormal := direction.Dot(hit.Normal)
	length := direction.Length()

	// The hit normal always faces out of the medium, so its sign tells
	// whether the ray is leaving or entering
	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	if dirDotNormal > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = m.refractiveIndex
		cosine = m.refractiveIndex * dirDotNormal / length
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / m.refractiveIndex
		cosine = -dirDotNormal / length
	}

	// Total internal reflection leaves the reflection probability at 1
	reflectProbability := 1.0
	refracted, canRefract := refract(direction, outwardNormal, niOverNt)
	if canRefract {
		reflectProbability = Reflectance(cosine, m.refractiveIndex)
	}

	if sampler.Get1D() < reflectProbability {
		return core.NewRay(hit.Point, reflect(direction.Normalize(), hit.Normal)), true
	}
	return core.NewRay(hit.Point, refracted), true
}

// refract bends v through a surface with normal n using Snell's law.
// It reports false when the discriminant is negative (total internal reflection).
func refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
