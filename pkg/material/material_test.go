package material

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// fixedSampler returns the same values on every call so scattering is reproducible
type fixedSampler struct {
	value float64   // returned by Get1D and both Get2D components
	point core.Vec3 // returned by Get3D
}

func (s fixedSampler) Get1D() float64   { return s.value }
func (s fixedSampler) Get2D() core.Vec2 { return core.NewVec2(s.value, s.value) }
func (s fixedSampler) Get3D() core.Vec3 { return s.point }

// centerSample maps to the center of the unit sphere (zero perturbation)
var centerSample = core.NewVec3(0, 0.25, 0.5)

func floorHit(m *Material) HitRecord {
	return HitRecord{
		T:        1.0,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 0, 1),
		Material: m,
	}
}
