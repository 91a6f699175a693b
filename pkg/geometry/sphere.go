package geometry

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) Primitive {
	r := core.NewVec3(radius, radius, radius)
	return Primitive{
		kind:     KindSphere,
		material: mat,
		center:   center,
		radius:   radius,
		bbox:     core.NewAABB(center.Subtract(r), center.Add(r)),
	}
}

// Center returns the sphere center
func (p Primitive) Center() core.Vec3 {
	return p.center
}

// Radius returns the sphere radius
func (p Primitive) Radius() float64 {
	return p.radius
}

func (p Primitive) hitSphere(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(p.center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - p.radius*p.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return material.HitRecord{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inRange(root, tMin, tMax) {
		root = (-halfB + sqrtD) / a
		if !inRange(root, tMin, tMax) {
			return material.HitRecord{}, false
		}
	}

	point := ray.At(root)
	return material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   point.Subtract(p.center).Divide(p.radius),
		Material: p.material,
	}, true
}
