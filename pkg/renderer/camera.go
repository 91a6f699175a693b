package renderer

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction (usually (0,1,0))
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// CameraConfigFromView combines a scene view with the output image shape
func CameraConfigFromView(view scene.View, width, height int) CameraConfig {
	return CameraConfig{
		Center:      view.Center,
		LookAt:      view.LookAt,
		Up:          view.Up,
		VFov:        view.VFov,
		AspectRatio: float64(width) / float64(height),
	}
}

// Camera generates primary rays. It holds no mutable state and is safe for concurrent use.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a pinhole camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	// Orthonormal basis: w points backwards, u to the right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	return &Camera{
		origin: config.Center,
		lowerLeftCorner: config.Center.
			Subtract(u.Multiply(halfWidth)).
			Subtract(v.Multiply(halfHeight)).
			Subtract(w),
		horizontal: u.Multiply(2 * halfWidth),
		vertical:   v.Multiply(2 * halfHeight),
	}
}

// GetRay generates a ray for film coordinates (s, t) where 0 <= s,t <= 1.
// (0, 0) is the lower left corner of the view.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
