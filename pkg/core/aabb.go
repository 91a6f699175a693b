package core

import "math"

// FlatPadding is the half thickness given to the boxes of flat primitives
const FlatPadding = 0.0001

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates an AABB spanning two corner points, ordering each component
func NewAABB(p1, p2 Vec3) AABB {
	return AABB{
		Min: Vec3{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y), Z: math.Min(p1.Z, p2.Z)},
		Max: Vec3{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y), Z: math.Max(p1.Z, p2.Z)},
	}
}

// NewAABBUnchecked creates an AABB from corners the caller already knows are ordered.
// Nothing is validated, so it can also express the inverted empty box.
func NewAABBUnchecked(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the inverted box that bounds nothing. Its union with any box B is B.
func EmptyAABB() AABB {
	return NewAABBUnchecked(
		NewVec3(math.MaxFloat64, math.MaxFloat64, math.MaxFloat64),
		NewVec3(-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64),
	)
}

// Hit tests if a ray intersects with this AABB using the slab method.
// A zero direction component yields a signed infinity that the min/max resolve.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invDirection := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invDirection
		t1 := (aabb.Max.Axis(axis) - origin) * invDirection
		if invDirection < 0 {
			t0, t1 = t1, t0
		}

		// NaN (0 * Inf for an origin on the slab plane) leaves the interval untouched
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// PadFlat widens every axis thinner than amount by amount on both sides.
// A ray travelling along a zero-extent axis sees t0 == t1 in the slab test,
// so flat primitives need the padding to be found at all.
func (aabb AABB) PadFlat(amount float64) AABB {
	size := aabb.Size()
	min, max := aabb.Min, aabb.Max
	if size.X < amount {
		min.X, max.X = min.X-amount, max.X+amount
	}
	if size.Y < amount {
		min.Y, max.Y = min.Y-amount, max.Y+amount
	}
	if size.Z < amount {
		min.Z, max.Z = min.Z-amount, max.Z+amount
	}
	return AABB{Min: min, Max: max}
}
