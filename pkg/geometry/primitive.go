package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Kind identifies the shape of a Primitive
type Kind uint8

const (
	KindNone Kind = iota // placeholder that is never hit
	KindSphere
	KindRectXY
	KindRectXZ
	KindRectYZ
	KindTriangle
)

// String returns the name used in scene descriptions
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindSphere:
		return "Sphere"
	case KindRectXY:
		return "RectXY"
	case KindRectXZ:
		return "RectXZ"
	case KindRectYZ:
		return "RectYZ"
	case KindTriangle:
		return "Triangle"
	default:
		return "Unknown"
	}
}

// Primitive is a closed set of intersectable shapes selected by Kind.
// The zero value is the None primitive: an inverted bounding box that no ray hits.
// Primitives hold a non-owning reference to their material, which must outlive them.
type Primitive struct {
	kind     Kind
	material *material.Material
	bbox     core.AABB

	// Sphere
	center core.Vec3
	radius float64

	// Axis-aligned rectangles: span [a0,a1]x[b0,b1] on the two free axes, plane at k
	a0, a1, b0, b1 float64
	k              float64
	flip           bool

	// Triangle
	v0, v1, v2 core.Vec3
	normal     core.Vec3 // also the rectangle normal
}

// None returns the never-hit placeholder primitive
func None() Primitive {
	return Primitive{}
}

// Kind reports the shape of the primitive
func (p Primitive) Kind() Kind {
	return p.kind
}

// Material returns the material referenced by the primitive (nil for None)
func (p Primitive) Material() *material.Material {
	return p.material
}

// BoundingBox returns the axis-aligned bounding box for this primitive
func (p Primitive) BoundingBox() core.AABB {
	if p.kind == KindNone {
		return core.EmptyAABB()
	}
	return p.bbox
}

// Hit tests the ray against the primitive for t in [tMin, tMax)
func (p Primitive) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch p.kind {
	case KindSphere:
		return p.hitSphere(ray, tMin, tMax)
	case KindRectXY, KindRectXZ, KindRectYZ:
		return p.hitRect(ray, tMin, tMax)
	case KindTriangle:
		return p.hitTriangle(ray, tMin, tMax)
	default:
		return material.HitRecord{}, false
	}
}

// inRange reports whether t lies in [tMin, tMax); NaN is never in range
func inRange(t, tMin, tMax float64) bool {
	return t >= tMin && t < tMax
}
