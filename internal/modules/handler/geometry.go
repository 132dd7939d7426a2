package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldmap-io/fieldmap/internal/modules/serializer"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

type GeometryHandler struct {
	svc service.GeometryService
}

func NewGeometryHandler(s service.GeometryService) *GeometryHandler {
	return &GeometryHandler{svc: s}
}

type AnalyzeReq struct {
	FeatureCollection json.RawMessage `json:"feature_collection" binding:"required"`
}

// Analyze summarizes a feature collection: counts, types, bounds, and
// area/length statistics.
func (h *GeometryHandler) Analyze(c *gin.Context) {
	req := AnalyzeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	stats, err := h.svc.Analyze(req.FeatureCollection)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}

type SimplifyReq struct {
	Geometry  json.RawMessage `json:"geometry" binding:"required"`
	Tolerance float64         `json:"tolerance" binding:"omitempty,min=0"`
}

func (h *GeometryHandler) Simplify(c *gin.Context) {
	req := SimplifyReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if req.Tolerance == 0 {
		req.Tolerance = 0.0001
	}

	out, err := h.svc.Simplify(req.Geometry, req.Tolerance)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type ConvertReq struct {
	Geometry json.RawMessage `json:"geometry,omitempty"`
	WKT      string          `json:"wkt,omitempty"`
	Format   string          `json:"format" binding:"required,oneof=wkt geojson"`
}

// Convert translates a geometry between GeoJSON and WKT. format names the
// output: "wkt" takes the geometry field, "geojson" takes the wkt field.
func (h *GeometryHandler) Convert(c *gin.Context) {
	req := ConvertReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	switch req.Format {
	case "wkt":
		if len(req.Geometry) == 0 {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("geometry is required for wkt output", nil))
			return
		}
		text, err := h.svc.ToWKT(req.Geometry)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"wkt": text}})
	case "geojson":
		if req.WKT == "" {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("wkt is required for geojson output", nil))
			return
		}
		out, err := h.svc.FromWKT(req.WKT)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"geometry": out}})
	}
}

type BufferReq struct {
	Geometry json.RawMessage `json:"geometry" binding:"required"`
	Meters   float64         `json:"meters" binding:"required,gt=0"`
}

func (h *GeometryHandler) Buffer(c *gin.Context) {
	req := BufferReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Buffer(req.Geometry, req.Meters)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
