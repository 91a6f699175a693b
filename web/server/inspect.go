package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// inspectPixel casts an unjittered ray through the center of a pixel.
// Pixel rows count from the top of the image, as in the encoded PNG.
func inspectPixel(sc *scene.Scene, width, height, pixelX, pixelY int) (material.HitRecord, bool) {
	camera := renderer.NewCamera(renderer.CameraConfigFromView(sc.View, width, height))
	u := (float64(pixelX) + 0.5) / float64(width)
	v := 1 - (float64(pixelY)+0.5)/float64(height)
	return sc.Hit(camera.GetRay(u, v))
}

// materialInfo describes a material for display
func materialInfo(m *material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	albedo := m.Albedo()

	switch m.Kind() {
	case material.KindLambertian:
		properties["albedo"] = [3]float64{albedo.X, albedo.Y, albedo.Z}
		properties["color"] = hexColor(albedo.X, albedo.Y, albedo.Z)
	case material.KindMetal:
		properties["albedo"] = [3]float64{albedo.X, albedo.Y, albedo.Z}
		properties["color"] = hexColor(albedo.X, albedo.Y, albedo.Z)
		properties["fuzzness"] = m.Fuzzness()
	case material.KindDielectric:
		properties["albedo"] = [3]float64{albedo.X, albedo.Y, albedo.Z}
		properties["refractiveIndex"] = m.RefractiveIndex()
	case material.KindEmission:
		emission := m.Emitted()
		properties["emission"] = [3]float64{emission.X, emission.Y, emission.Z}
	}
	return m.Kind().String(), properties
}

func hexColor(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(c float64) int {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 255
	}
	return int(c * 255)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := parseRenderRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sc, err := loaders.OpenScene(req.Scene, s.scenesDir, s.bvhOpts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hit, ok := inspectPixel(sc, req.Width, req.Height, pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, properties := materialInfo(hit.Material)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		Properties:   properties,
	})
}
