package integrator

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// DefaultMaxDepth bounds recursion; paths still bouncing at this depth contribute black
const DefaultMaxDepth = 100

// PathTracingIntegrator implements unidirectional path tracing with a fixed depth cutoff
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a path tracer with the default depth limit
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: DefaultMaxDepth}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world World, sampler core.Sampler) core.Vec3 {
	return pt.trace(ray, world, sampler, 0)
}

func (pt *PathTracingIntegrator) trace(ray core.Ray, world World, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth >= pt.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray)
	if !isHit {
		// Black background
		return core.Vec3{}
	}

	mat := hit.Material
	emitted := mat.Emitted()

	scattered, didScatter := mat.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	return emitted.Add(mat.Albedo().MultiplyVec(pt.trace(scattered, world, sampler, depth+1)))
}

// SamplePixel averages samplesPerPixel rays jittered uniformly inside pixel (x, y).
// Pixel (0, 0) sits at film coordinate (0, 0), the lower left corner.
func (pt *PathTracingIntegrator) SamplePixel(camera RayGenerator, x, y, width, height, samplesPerPixel int, world World, sampler core.Sampler) core.Vec3 {
	var color core.Vec3
	for s := 0; s < samplesPerPixel; s++ {
		jitter := sampler.Get2D()
		u := (float64(x) + jitter.X) / float64(width)
		v := (float64(y) + jitter.Y) / float64(height)
		color = color.Add(pt.RayColor(camera.GetRay(u, v), world, sampler))
	}
	return color.Divide(float64(samplesPerPixel))
}
