package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// ErrEmptyScene is returned when a BVH is built from no primitives
var ErrEmptyScene = errors.New("scene has no primitives")

// SplitStrategy selects the axis each BVH node is sorted and split along
type SplitStrategy int

const (
	// SplitRandomAxis picks a uniformly random axis per node
	SplitRandomAxis SplitStrategy = iota
	// SplitLongestAxis always splits along the longest axis of the node's bounds
	SplitLongestAxis
)

// String returns the flag spelling of the strategy
func (s SplitStrategy) String() string {
	switch s {
	case SplitRandomAxis:
		return "random"
	case SplitLongestAxis:
		return "longest"
	default:
		return "unknown"
	}
}

// ParseSplitStrategy converts a flag value into a SplitStrategy
func ParseSplitStrategy(name string) (SplitStrategy, error) {
	switch name {
	case "random", "":
		return SplitRandomAxis, nil
	case "longest":
		return SplitLongestAxis, nil
	default:
		return 0, fmt.Errorf("unknown split strategy %q", name)
	}
}

// BVHOptions configures BVH construction
type BVHOptions struct {
	Strategy SplitStrategy
	Random   *rand.Rand // axis source for SplitRandomAxis; time-seeded when nil
}

// DefaultBVHOptions returns the random-axis split with a time-seeded source
func DefaultBVHOptions() BVHOptions {
	return BVHOptions{Strategy: SplitRandomAxis}
}

// bvhChild refers either to another node in the arena or to a primitive
type bvhChild struct {
	index int32
	leaf  bool
}

// bvhNode is an internal node; its box is the union of its children's boxes
type bvhNode struct {
	box         core.AABB
	left, right bvhChild
}

// BVH is a binary bounding volume hierarchy stored as a flat node arena.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	nodes      []bvhNode
	primitives []Primitive // leaf storage; the last entry is the None padding primitive
	root       int32
}

// BVHStats summarizes the shape of a built hierarchy
type BVHStats struct {
	Primitives int // primitives supplied by the caller
	Nodes      int // internal nodes
	Leaves     int // leaves referencing a real primitive
	MaxDepth   int // internal nodes on the longest root-to-leaf path
}

// NewBVH constructs a BVH from a slice of primitives.
// The input slice is copied and left untouched.
func NewBVH(prims []Primitive, opts BVHOptions) (*BVH, error) {
	if len(prims) == 0 {
		return nil, ErrEmptyScene
	}

	random := opts.Random
	if random == nil && opts.Strategy == SplitRandomAxis {
		random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Leaves are stored by index, so keep the None placeholder at the end
	primitives := make([]Primitive, len(prims), len(prims)+1)
	copy(primitives, prims)
	primitives = append(primitives, None())

	b := &bvhBuilder{
		primitives: primitives,
		noneIndex:  int32(len(prims)),
		strategy:   opts.Strategy,
		random:     random,
		nodes:      make([]bvhNode, 0, len(prims)),
	}
	root := b.build(0, len(prims))

	return &BVH{nodes: b.nodes, primitives: primitives, root: root}, nil
}

type bvhBuilder struct {
	primitives []Primitive
	noneIndex  int32
	strategy   SplitStrategy
	random     *rand.Rand
	nodes      []bvhNode
}

// build creates the node covering primitives[lo:hi] and returns its arena index
func (b *bvhBuilder) build(lo, hi int) int32 {
	span := b.primitives[lo:hi]
	axis := b.chooseAxis(span)
	sort.Slice(span, func(i, j int) bool {
		return span[i].BoundingBox().Min.Axis(axis) < span[j].BoundingBox().Min.Axis(axis)
	})

	var left, right bvhChild
	switch n := hi - lo; n {
	case 1:
		left = bvhChild{index: int32(lo), leaf: true}
		right = bvhChild{index: b.noneIndex, leaf: true}
	case 2:
		left = bvhChild{index: int32(lo), leaf: true}
		right = bvhChild{index: int32(lo + 1), leaf: true}
	default:
		mid := lo + n/2
		left = bvhChild{index: b.build(lo, mid)}
		right = bvhChild{index: b.build(mid, hi)}
	}

	b.nodes = append(b.nodes, bvhNode{
		box:   b.childBox(left).Union(b.childBox(right)),
		left:  left,
		right: right,
	})
	return int32(len(b.nodes) - 1)
}

func (b *bvhBuilder) chooseAxis(span []Primitive) int {
	if b.strategy == SplitLongestAxis {
		bounds := core.EmptyAABB()
		for _, p := range span {
			bounds = bounds.Union(p.BoundingBox())
		}
		return bounds.LongestAxis()
	}
	return b.random.Intn(3)
}

func (b *bvhBuilder) childBox(c bvhChild) core.AABB {
	if c.leaf {
		return b.primitives[c.index].BoundingBox()
	}
	return b.nodes[c.index].box
}

// Bounds returns the bounding box of the whole hierarchy
func (bvh *BVH) Bounds() core.AABB {
	return bvh.nodes[bvh.root].box
}

// Hit returns the closest intersection with t in [tMin, tMax)
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	return bvh.hitNode(bvh.root, ray, tMin, tMax)
}

func (bvh *BVH) hitNode(index int32, ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	node := &bvh.nodes[index]
	if !node.box.Hit(ray, tMin, tMax) {
		return material.HitRecord{}, false
	}

	// Both children are always visited; the second only needs to beat the first
	leftHit, hitLeft := bvh.hitChild(node.left, ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}
	rightHit, hitRight := bvh.hitChild(node.right, ray, tMin, tMax)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

func (bvh *BVH) hitChild(c bvhChild, ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if c.leaf {
		return bvh.primitives[c.index].Hit(ray, tMin, tMax)
	}
	return bvh.hitNode(c.index, ray, tMin, tMax)
}

// Stats walks the hierarchy and reports its size and depth
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Primitives: len(bvh.primitives) - 1, Nodes: len(bvh.nodes)}
	var walk func(index int32, depth int)
	walk = func(index int32, depth int) {
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		node := bvh.nodes[index]
		for _, c := range [2]bvhChild{node.left, node.right} {
			switch {
			case !c.leaf:
				walk(c.index, depth+1)
			case bvh.primitives[c.index].Kind() != KindNone:
				stats.Leaves++
			}
		}
	}
	walk(bvh.root, 1)
	return stats
}
