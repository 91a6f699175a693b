package integrator

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// World is the closest-hit query an integrator needs; *scene.Scene implements it
type World interface {
	Hit(ray core.Ray) (material.HitRecord, bool)
}

// RayGenerator maps a film coordinate in [0,1]x[0,1] to a primary ray
type RayGenerator interface {
	GetRay(u, v float64) core.Ray
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, world World, sampler core.Sampler) core.Vec3
}
