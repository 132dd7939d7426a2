package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/fieldmap-io/fieldmap/internal/middleware"
	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/serializer"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

type LayerHandler struct {
	svc service.LayerService
}

func NewLayerHandler(s service.LayerService) *LayerHandler {
	return &LayerHandler{svc: s}
}

type CreateLayerReq struct {
	Name         string              `json:"name" binding:"required,trimmed,max=200"`
	Description  string              `json:"description" binding:"omitempty,max=2000"`
	ProjectID    string              `json:"project_id" binding:"required"`
	LayerType    string              `json:"layer_type" binding:"omitempty,oneof=point line polygon mixed"`
	Style        datatypes.JSONMap   `json:"style"`
	CustomFields []model.CustomField `json:"custom_fields"`
}

func (h *LayerHandler) CreateLayer(c *gin.Context) {
	req := CreateLayerReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u := middleware.CurrentUser(c)

	l, err := h.svc.Create(c.Request.Context(), service.CreateLayerInput{
		Name:         req.Name,
		Description:  req.Description,
		ProjectID:    req.ProjectID,
		UserID:       u.ID,
		LayerType:    req.LayerType,
		Style:        req.Style,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: l})
}

func (h *LayerHandler) GetLayer(c *gin.Context) {
	l, err := h.svc.Get(c.Request.Context(), c.Param("layer_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("layer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: l})
}

func (h *LayerHandler) ListLayers(c *gin.Context) {
	layers, err := h.svc.ListByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: layers})
}

type UpdateLayerReq struct {
	Name         *string              `json:"name" binding:"omitempty,trimmed,max=200"`
	Description  *string              `json:"description" binding:"omitempty,max=2000"`
	LayerType    *string              `json:"layer_type" binding:"omitempty,oneof=point line polygon mixed"`
	Style        *datatypes.JSONMap   `json:"style"`
	Visible      *bool                `json:"visible"`
	CustomFields *[]model.CustomField `json:"custom_fields"`
}

func (h *LayerHandler) UpdateLayer(c *gin.Context) {
	req := UpdateLayerReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	l, err := h.svc.Update(c.Request.Context(), c.Param("layer_id"), service.UpdateLayerInput{
		Name:         req.Name,
		Description:  req.Description,
		LayerType:    req.LayerType,
		Style:        req.Style,
		Visible:      req.Visible,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("layer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: l})
}

// DeleteLayer removes the layer together with its assets and their photos.
func (h *LayerHandler) DeleteLayer(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("layer_id")); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
