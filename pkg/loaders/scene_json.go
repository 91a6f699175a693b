package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// ErrInvalidScene marks scene descriptions that decode but describe nothing renderable
var ErrInvalidScene = errors.New("invalid scene description")

// sceneJSON is the top level of a scene description file
type sceneJSON struct {
	Title     *string        `json:"title"`
	Camera    *cameraJSON    `json:"camera"`
	Materials []materialJSON `json:"materials"`
	Objects   []objectJSON   `json:"objects"`
}

type cameraJSON struct {
	Center []float64 `json:"center"`
	LookAt []float64 `json:"lookat"`
	Up     []float64 `json:"up"`
	VFov   *float64  `json:"vfov"`
}

type materialJSON struct {
	Type            string    `json:"type"`
	Albedo          []float64 `json:"albedo"`
	Emit            []float64 `json:"emit"`
	Fuzzness        *float64  `json:"fuzzness"`
	RefractiveIndex *float64  `json:"refractive_index"`
}

type objectJSON struct {
	Type     string `json:"type"`
	Material *int   `json:"material"`

	// Sphere
	Center []float64 `json:"center"`
	Radius *float64  `json:"radius"`

	// Rectangles: 2D span on the free axes plus the fixed coordinate
	Min             []float64 `json:"min"`
	Max             []float64 `json:"max"`
	X               *float64  `json:"x"`
	Y               *float64  `json:"y"`
	Z               *float64  `json:"z"`
	NormalDirection *float64  `json:"normal_direction"`

	// Triangle
	Points [][]float64 `json:"points"`
}

// LoadScene reads a JSON scene description from disk
func LoadScene(filename string, opts geometry.BVHOptions) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("while opening scene file: %w", err)
	}
	defer file.Close()

	return ParseScene(file, opts)
}

// ParseScene decodes a JSON scene description and builds its BVH
func ParseScene(reader io.Reader, opts geometry.BVHOptions) (*scene.Scene, error) {
	var doc sceneJSON
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("while decoding scene JSON: %w", err)
	}

	if doc.Title == nil {
		return nil, fmt.Errorf("%w: missing title", ErrInvalidScene)
	}
	if doc.Materials == nil {
		return nil, fmt.Errorf("%w: missing materials", ErrInvalidScene)
	}
	if doc.Objects == nil {
		return nil, fmt.Errorf("%w: missing objects", ErrInvalidScene)
	}

	view, err := parseView(doc.Camera)
	if err != nil {
		return nil, fmt.Errorf("while parsing camera: %w", err)
	}

	materials := make([]*material.Material, len(doc.Materials))
	for i, m := range doc.Materials {
		if materials[i], err = parseMaterial(m); err != nil {
			return nil, fmt.Errorf("while parsing material %d: %w", i, err)
		}
	}

	prims := make([]geometry.Primitive, len(doc.Objects))
	for i, o := range doc.Objects {
		if prims[i], err = parseObject(o, materials); err != nil {
			return nil, fmt.Errorf("while parsing object %d (%s): %w", i, o.Type, err)
		}
	}

	return scene.New(*doc.Title, view, materials, prims, opts)
}

func parseView(c *cameraJSON) (scene.View, error) {
	view := scene.DefaultView()
	if c == nil {
		return view, nil
	}

	var err error
	if c.Center != nil {
		if view.Center, err = vec3("center", c.Center); err != nil {
			return view, err
		}
	}
	if c.LookAt != nil {
		if view.LookAt, err = vec3("lookat", c.LookAt); err != nil {
			return view, err
		}
	}
	if c.Up != nil {
		if view.Up, err = vec3("up", c.Up); err != nil {
			return view, err
		}
	}
	if c.VFov != nil {
		if *c.VFov <= 0 || *c.VFov >= 180 {
			return view, fmt.Errorf("%w: vfov %v outside (0, 180)", ErrInvalidScene, *c.VFov)
		}
		view.VFov = *c.VFov
	}
	return view, nil
}

func parseMaterial(m materialJSON) (*material.Material, error) {
	switch m.Type {
	case "Lambertian":
		albedo, err := vec3("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil

	case "Metal":
		albedo, err := vec3("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		fuzz := 0.0
		if m.Fuzzness != nil {
			fuzz = *m.Fuzzness
		}
		return material.NewMetal(albedo, fuzz), nil

	case "Dielectric", "Dialectic":
		if m.RefractiveIndex == nil {
			return nil, fmt.Errorf("%w: missing refractive_index", ErrInvalidScene)
		}
		if m.Albedo == nil {
			return material.NewDielectric(*m.RefractiveIndex), nil
		}
		albedo, err := vec3("albedo", m.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewTintedDielectric(albedo, *m.RefractiveIndex), nil

	case "Emission":
		emit, err := vec3("emit", m.Emit)
		if err != nil {
			return nil, err
		}
		return material.NewEmission(emit), nil

	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidScene, m.Type)
	}
}

func parseObject(o objectJSON, materials []*material.Material) (geometry.Primitive, error) {
	if o.Material == nil {
		return geometry.Primitive{}, fmt.Errorf("%w: missing material index", ErrInvalidScene)
	}
	if *o.Material < 0 || *o.Material >= len(materials) {
		return geometry.Primitive{}, fmt.Errorf("%w: material index %d out of range, %d materials",
			ErrInvalidScene, *o.Material, len(materials))
	}
	mat := materials[*o.Material]

	switch o.Type {
	case "Sphere":
		center, err := vec3("center", o.Center)
		if err != nil {
			return geometry.Primitive{}, err
		}
		if o.Radius == nil || *o.Radius <= 0 {
			return geometry.Primitive{}, fmt.Errorf("%w: sphere needs a positive radius", ErrInvalidScene)
		}
		return geometry.NewSphere(center, *o.Radius, mat), nil

	case "RectXY":
		return parseRect(o, "z", o.Z, mat, geometry.NewRectXY)
	case "RectXZ":
		return parseRect(o, "y", o.Y, mat, geometry.NewRectXZ)
	case "RectYZ":
		return parseRect(o, "x", o.X, mat, geometry.NewRectYZ)

	case "Triangle":
		if len(o.Points) != 3 {
			return geometry.Primitive{}, fmt.Errorf("%w: triangle needs 3 points, got %d", ErrInvalidScene, len(o.Points))
		}
		var v [3]core.Vec3
		for i, p := range o.Points {
			var err error
			if v[i], err = vec3(fmt.Sprintf("points[%d]", i), p); err != nil {
				return geometry.Primitive{}, err
			}
		}
		return geometry.NewTriangle(v[0], v[1], v[2], mat), nil

	default:
		return geometry.Primitive{}, fmt.Errorf("%w: unknown object type %q", ErrInvalidScene, o.Type)
	}
}

type rectConstructor func(a0, a1, b0, b1, k float64, flip bool, mat *material.Material) geometry.Primitive

func parseRect(o objectJSON, axis string, k *float64, mat *material.Material, newRect rectConstructor) (geometry.Primitive, error) {
	if len(o.Min) != 2 || len(o.Max) != 2 {
		return geometry.Primitive{}, fmt.Errorf("%w: rectangle min and max need 2 components", ErrInvalidScene)
	}
	if k == nil {
		return geometry.Primitive{}, fmt.Errorf("%w: missing %q", ErrInvalidScene, axis)
	}
	// Normals point along the positive axis unless normal_direction says otherwise
	flip := o.NormalDirection != nil && *o.NormalDirection <= 0
	return newRect(o.Min[0], o.Max[0], o.Min[1], o.Max[1], *k, flip, mat), nil
}

func vec3(field string, v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidScene, field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
