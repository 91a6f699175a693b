package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewTriangle creates a new triangle from three vertices.
// The normal follows the winding (v1-v0)×(v2-v0) and is computed once.
// Triangles lying in an axis-aligned plane get a padded bounding box.
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) Primitive {
	return Primitive{
		kind:     KindTriangle,
		material: mat,
		v0:       v0,
		v1:       v1,
		v2:       v2,
		normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
		bbox:     core.NewAABBFromPoints(v0, v1, v2).PadFlat(core.FlatPadding),
	}
}

// Vertices returns the three triangle vertices
func (p Primitive) Vertices() (core.Vec3, core.Vec3, core.Vec3) {
	return p.v0, p.v1, p.v2
}

// Normal returns the cached unit normal of a triangle or rectangle
func (p Primitive) Normal() core.Vec3 {
	return p.normal
}

// hitTriangle solves origin + t*dir = v0 + β(v1-v0) + γ(v2-v0) with Cramer's rule.
// Edges are inclusive so rays through a shared edge hit at least one neighbour.
func (p Primitive) hitTriangle(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Columns of the system matrix and the right-hand side
	colA := p.v0.Subtract(p.v1)
	colB := p.v0.Subtract(p.v2)
	dir := ray.Direction
	rhs := p.v0.Subtract(ray.Origin)

	bCrossD := colB.Cross(dir)
	det := colA.Dot(bCrossD)
	if det == 0 {
		// Ray parallel to the triangle plane
		return material.HitRecord{}, false
	}

	gamma := colA.Dot(rhs.Cross(dir)) / det
	if !(gamma >= 0 && gamma <= 1) {
		return material.HitRecord{}, false
	}

	beta := rhs.Dot(bCrossD) / det
	if !(beta >= 0 && beta <= 1-gamma) {
		return material.HitRecord{}, false
	}

	t := colA.Dot(colB.Cross(rhs)) / det
	if !inRange(t, tMin, tMax) {
		return material.HitRecord{}, false
	}

	return material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   p.normal,
		Material: p.material,
	}, true
}
