package material

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Kind identifies which scattering model a Material uses
type Kind uint8

const (
	KindLambertian Kind = iota // diffuse
	KindMetal                  // specular reflection with fuzz
	KindDielectric             // refraction/reflection (glass, water)
	KindEmission               // light source, never scatters
)

// String returns the name used in scene descriptions and logs
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "Lambertian"
	case KindMetal:
		return "Metal"
	case KindDielectric:
		return "Dielectric"
	case KindEmission:
		return "Emission"
	default:
		return "Unknown"
	}
}

// defaultAlbedo is used for materials whose albedo does not matter (emitters)
var defaultAlbedo = core.NewVec3(0.5, 0.5, 0.5)

// Material is a closed set of scattering models selected by Kind.
// Only the fields relevant to Kind are meaningful. Materials are immutable
// after construction and safe to share between goroutines.
type Material struct {
	kind            Kind
	albedo          core.Vec3
	fuzzness        float64   // Metal only
	refractiveIndex float64   // Dielectric only
	emission        core.Vec3 // Emission only
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal at intersection
	Material *Material // Material of the hit object, owned by the scene
}

// Kind reports the scattering model of the material
func (m *Material) Kind() Kind {
	return m.kind
}

// Albedo returns the constant color used to attenuate light gathered through this material
func (m *Material) Albedo() core.Vec3 {
	return m.albedo
}

// Scatter computes the outgoing ray for an incoming ray at a hit point.
// It returns false when the ray is absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (core.Ray, bool) {
	switch m.kind {
	case KindLambertian:
		return scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	case KindEmission:
		return core.Ray{}, false
	default:
		return core.Ray{}, false
	}
}

// Emitted returns the radiance emitted by the material; black for everything but emitters
func (m *Material) Emitted() core.Vec3 {
	if m.kind == KindEmission {
		return m.emission
	}
	return core.Vec3{}
}
