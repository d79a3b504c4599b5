package server

import (
	"fmt"
	"net/http"

	"github.com/df07/skirt/pkg/core"
	"github.com/df07/skirt/pkg/geometry"
	"github.com/df07/skirt/pkg/material"
	"github.com/df07/skirt/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the hit record of an inspection ray and the
// top-level shape it struck
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a material, evaluating textures at the hit
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Value(hit.UV, hit.Point)
		properties["albedo"] = vec(albedo)
		properties["color"] = hexColor(albedo)
		return "lambertian", properties

	case *material.Metal:
		albedo := m.Albedo.Value(hit.UV, hit.Point)
		properties["albedo"] = vec(albedo)
		properties["color"] = hexColor(albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emitted(hit.UV, hit.Point)
		properties["emission"] = vec(emission)
		properties["color"] = hexColor(emission)
		return "light", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a top-level shape
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if shape == nil {
		return "unknown", properties
	}

	bbox := shape.BoundingBox()
	properties["boundingBox"] = map[string]interface{}{
		"min":    vec(bbox.Min),
		"max":    vec(bbox.Max),
		"center": vec(bbox.Center()),
		"size":   vec(bbox.Size()),
	}

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties
	case *geometry.RectXY:
		return "rectXY", properties
	case *geometry.RectXZ:
		return "rectXZ", properties
	case *geometry.RectYZ:
		return "rectYZ", properties
	case *geometry.Box:
		return "box", properties
	case *geometry.Quad:
		properties["corner"] = vec(geom.Corner)
		properties["u"] = vec(geom.U)
		properties["v"] = vec(geom.V)
		return "quad", properties
	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{vec(geom.V0), vec(geom.V1), vec(geom.V2)}
		return "triangle", properties
	case *geometry.ShapeList:
		properties["shapeCount"] = len(geom.Shapes)
		return "list", properties
	case *geometry.Transform:
		innerType, innerProps := extractGeometryInfo(geom.Shape)
		properties["shape"] = map[string]interface{}{"type": innerType, "properties": innerProps}
		properties["matrix"] = geom.Matrix()
		return "transform", properties
	case *geometry.FlipNormals:
		innerType, innerProps := extractGeometryInfo(geom.Shape)
		properties["shape"] = map[string]interface{}{"type": innerType, "properties": innerProps}
		return "flip", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y), row 0 at the
// top, and reports the first intersection
func inspectPixel(sc *scene.Scene, x, y int) InspectResult {
	cfg := sc.SamplingConfig
	s := (float64(x) + 0.5) / float64(cfg.Width)
	t := (float64(cfg.Height-1-y) + 0.5) / float64(cfg.Height)

	// Fixed lens sample so repeated inspections agree
	ray := sc.Camera.GetRay(s, t, core.NewSeededSampler(0))

	hit, isHit := sc.Hit(ray)
	if !isHit {
		return InspectResult{Ray: ray}
	}

	// The BVH does not report the shape, so find the top-level shape that
	// produces the same intersection
	for _, shape := range sc.Shapes {
		if shapeHit, ok := shape.Hit(ray); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, Ray: ray, HitRecord: hit, Shape: shape}
		}
	}
	return InspectResult{Hit: true, Ray: ray, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := parseRenderRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pixelX, err := requireIntParam(values, "x", 0, maxResolution-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pixelY, err := requireIntParam(values, "y", 0, maxResolution-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneStatus(err), err)
		return
	}

	cfg := sc.SamplingConfig
	if pixelX >= cfg.Width || pixelY >= cfg.Height {
		writeError(w, http.StatusBadRequest, fmt.Errorf("pixel (%d, %d) outside %dx%d image", pixelX, pixelY, cfg.Width, cfg.Height))
		return
	}

	result := inspectPixel(sc, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	hit := result.HitRecord
	materialType, materialProps := extractMaterialInfo(hit.Material, hit)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(hit.Normal),
		Distance:     hit.T,
		FrontFace:    result.Ray.Direction.Dot(hit.Normal) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
