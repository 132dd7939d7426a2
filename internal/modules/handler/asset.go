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
	"github.com/fieldmap-io/fieldmap/internal/pkg/paging"
)

type AssetHandler struct {
	svc service.AssetService
}

func NewAssetHandler(s service.AssetService) *AssetHandler {
	return &AssetHandler{svc: s}
}

type CreateAssetReq struct {
	ID          string            `json:"id" binding:"omitempty,max=64"`
	Name        string            `json:"name" binding:"required,trimmed,max=200"`
	Description string            `json:"description" binding:"omitempty,max=2000"`
	AssetType   string            `json:"asset_type" binding:"required,max=64"`
	Geometry    datatypes.JSON    `json:"geometry" binding:"required"`
	Properties  datatypes.JSONMap `json:"properties"`
	ProjectID   string            `json:"project_id" binding:"required"`
	LayerID     string            `json:"layer_id"`
	Style       datatypes.JSONMap `json:"style"`
	Photos      []model.Photo     `json:"photos"`
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	req := CreateAssetReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u := middleware.CurrentUser(c)

	a, err := h.svc.Create(c.Request.Context(), service.CreateAssetInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		AssetType:   req.AssetType,
		Geometry:    req.Geometry,
		Properties:  req.Properties,
		ProjectID:   req.ProjectID,
		UserID:      u.ID,
		LayerID:     req.LayerID,
		Style:       req.Style,
		Photos:      req.Photos,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), c.Param("asset_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("asset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

type ListAssetsReq struct {
	Limit    *int   `form:"limit" binding:"omitempty,min=0,max=500"`
	Cursor   string `form:"cursor"`
	TimeDesc bool   `form:"time_desc,default=false"`
}

// ListAssets pages through a project's assets. Use the cursor from the
// previous response to fetch the next page.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	req := ListAssetsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
	}

	out, err := h.svc.ListByProject(c.Request.Context(), service.ListAssetsInput{
		ProjectID: c.Param("project_id"),
		Limit:     limit,
		Cursor:    req.Cursor,
		TimeDesc:  req.TimeDesc,
	})
	if err != nil {
		if errors.Is(err, paging.ErrBadCursor) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("malformed cursor", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *AssetHandler) ListLayerAssets(c *gin.Context) {
	assets, err := h.svc.ListByLayer(c.Request.Context(), c.Param("layer_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: assets})
}

type UpdateAssetReq struct {
	Name        *string            `json:"name" binding:"omitempty,trimmed,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=2000"`
	AssetType   *string            `json:"asset_type" binding:"omitempty,max=64"`
	Geometry    *datatypes.JSON    `json:"geometry"`
	Properties  *datatypes.JSONMap `json:"properties"`
	LayerID     *string            `json:"layer_id"`
	Style       *datatypes.JSONMap `json:"style"`
	Photos      *[]model.Photo     `json:"photos"`
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	req := UpdateAssetReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a, err := h.svc.Update(c.Request.Context(), c.Param("asset_id"), service.UpdateAssetInput{
		Name:        req.Name,
		Description: req.Description,
		AssetType:   req.AssetType,
		Geometry:    req.Geometry,
		Properties:  req.Properties,
		LayerID:     req.LayerID,
		Style:       req.Style,
		Photos:      req.Photos,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("asset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: a})
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("asset_id")); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
