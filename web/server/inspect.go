package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the nearest hit of an inspection ray and the shape it belongs to
type InspectResult struct {
	Hit       bool
	HitRecord *core.HitRecord
	Shape     core.Shape
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), without jitter
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(pixelY) + 0.5) / float64(height)
	ray := sceneObj.GetCamera().GetRay(u, v)

	hit, isHit := sceneObj.GetWorld().Hit(ray, renderer.ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The list only reports the record, so find the shape with the same intersection
	for _, shape := range sceneObj.World.Objects() {
		if shapeHit, shapeIsHit := shape.Hit(ray, renderer.ShadowAcneEpsilon, hit.T+renderer.ShadowAcneEpsilon); shapeIsHit {
			if shapeHit.T == hit.T {
				return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
			}
		}
	}

	// Fallback: return hit without specific shape
	return InspectResult{Hit: true, HitRecord: hit}
}

// extractMaterialInfo describes a material with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["attenuation"] = [3]float64{m.Attenuation.X, m.Attenuation.Y, m.Attenuation.Z}
		properties["color"] = hexColor(m.Attenuation)
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a shape with type assertions
func extractGeometryInfo(shape core.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{g.Center.X, g.Center.Y, g.Center.Z}
		properties["radius"] = g.Radius
		return "sphere", properties

	case *geometry.HittableList:
		properties["objects"] = g.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	width, height := inspectReq.Width, inspectReq.Height()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := s.createScene(inspectReq.Scene, inspectReq.AspectRatio)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{result.HitRecord.Point.X, result.HitRecord.Point.Y, result.HitRecord.Point.Z},
		Normal:       [3]float64{result.HitRecord.Normal.X, result.HitRecord.Normal.Y, result.HitRecord.Normal.Z},
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
	writeJSON(w, http.StatusOK, response)
}
