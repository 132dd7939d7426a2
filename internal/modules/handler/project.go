package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldmap-io/fieldmap/internal/middleware"
	"github.com/fieldmap-io/fieldmap/internal/modules/serializer"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name        string `json:"name" binding:"required,trimmed,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// CreateProject opens a project for the authenticated user. Clients check
// the name with NameTaken first; creation itself never rejects duplicates.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u := middleware.CurrentUser(c)

	p, err := h.svc.Create(c.Request.Context(), service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		UserID:      u.ID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	u := middleware.CurrentUser(c)
	projects, err := h.svc.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

type NameTakenReq struct {
	Name      string `form:"name" binding:"required"`
	ExcludeID string `form:"exclude_id"`
}

type NameTakenResp struct {
	Taken bool `json:"taken"`
}

func (h *ProjectHandler) NameTaken(c *gin.Context) {
	req := NameTakenReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	u := middleware.CurrentUser(c)

	taken, err := h.svc.NameTaken(c.Request.Context(), req.Name, u.ID, req.ExcludeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: NameTakenResp{Taken: taken}})
}

type UpdateProjectReq struct {
	Name        *string `json:"name" binding:"omitempty,trimmed,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("project_id"), service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("project_id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

func (h *ProjectHandler) RestoreProject(c *gin.Context) {
	p, err := h.svc.Restore(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
		case errors.Is(err, service.ErrNameTaken):
			c.JSON(http.StatusConflict, serializer.ConflictErr("project name already in use"))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: p})
}
