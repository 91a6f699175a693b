package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// rectThickness is the half thickness of a rectangle's bounding box on its fixed axis
const rectThickness = core.FlatPadding

// NewRectXY creates a rectangle spanning [x0,x1]x[y0,y1] in the plane z=k.
// The normal is +Z, or -Z when flip is set.
func NewRectXY(x0, x1, y0, y1, k float64, flip bool, mat *material.Material) Primitive {
	return newRect(KindRectXY, x0, x1, y0, y1, k, flip, mat)
}

// NewRectXZ creates a rectangle spanning [x0,x1]x[z0,z1] in the plane y=k.
// The normal is +Y, or -Y when flip is set.
func NewRectXZ(x0, x1, z0, z1, k float64, flip bool, mat *material.Material) Primitive {
	return newRect(KindRectXZ, x0, x1, z0, z1, k, flip, mat)
}

// NewRectYZ creates a rectangle spanning [y0,y1]x[z0,z1] in the plane x=k.
// The normal is +X, or -X when flip is set.
func NewRectYZ(y0, y1, z0, z1, k float64, flip bool, mat *material.Material) Primitive {
	return newRect(KindRectYZ, y0, y1, z0, z1, k, flip, mat)
}

func newRect(kind Kind, a0, a1, b0, b1, k float64, flip bool, mat *material.Material) Primitive {
	if a0 > a1 {
		a0, a1 = a1, a0
	}
	if b0 > b1 {
		b0, b1 = b1, b0
	}
	p := Primitive{
		kind:     kind,
		material: mat,
		a0:       a0,
		a1:       a1,
		b0:       b0,
		b1:       b1,
		k:        k,
		flip:     flip,
	}

	fixed, a, b := p.rectAxes()
	var normal, lo, hi [3]float64
	normal[fixed] = 1
	if flip {
		normal[fixed] = -1
	}
	lo[a], hi[a] = a0, a1
	lo[b], hi[b] = b0, b1
	lo[fixed], hi[fixed] = k, k

	p.normal = core.NewVec3(normal[0], normal[1], normal[2])
	p.bbox = core.NewAABBUnchecked(core.NewVec3(lo[0], lo[1], lo[2]), core.NewVec3(hi[0], hi[1], hi[2])).PadFlat(rectThickness)
	return p
}

// rectAxes returns the fixed axis followed by the two spanned axes
func (p Primitive) rectAxes() (fixed, a, b int) {
	switch p.kind {
	case KindRectXY:
		return 2, 0, 1
	case KindRectXZ:
		return 1, 0, 2
	default:
		return 0, 1, 2
	}
}

// Flipped reports whether the rectangle normal points along the negative axis
func (p Primitive) Flipped() bool {
	return p.flip
}

func (p Primitive) hitRect(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	fixed, a, b := p.rectAxes()

	// A ray parallel to the plane yields ±Inf or NaN, both rejected here
	t := (p.k - ray.Origin.Axis(fixed)) / ray.Direction.Axis(fixed)
	if !inRange(t, tMin, tMax) {
		return material.HitRecord{}, false
	}

	u := ray.Origin.Axis(a) + t*ray.Direction.Axis(a)
	v := ray.Origin.Axis(b) + t*ray.Direction.Axis(b)
	if u < p.a0 || u > p.a1 || v < p.b0 || v > p.b1 {
		return material.HitRecord{}, false
	}

	return material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   p.normal,
		Material: p.material,
	}, true
}
