package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldmap-io/fieldmap/internal/modules/serializer"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

type PhotoHandler struct {
	svc service.PhotoService
}

func NewPhotoHandler(s service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: s}
}

type AddPhotoReq struct {
	Data     string   `json:"data" binding:"required"`
	Filename string   `json:"filename" binding:"omitempty,max=255"`
	Lat      *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng      *float64 `json:"lng" binding:"omitempty,min=-180,max=180"`
}

func (h *PhotoHandler) AddPhoto(c *gin.Context) {
	req := AddPhotoReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Add(c.Request.Context(), service.AddPhotoInput{
		AssetID:  c.Param("asset_id"),
		Data:     req.Data,
		Filename: req.Filename,
		Lat:      req.Lat,
		Lng:      req.Lng,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("asset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	photos, err := h.svc.ListByAsset(c.Request.Context(), c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: photos})
}

func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("photo_id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("photo not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
