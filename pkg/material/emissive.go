package material

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// NewEmission creates a light-emitting material. Emitters never scatter.
func NewEmission(emission core.Vec3) *Material {
	return &Material{kind: KindEmission, albedo: defaultAlbedo, emission: emission}
}
