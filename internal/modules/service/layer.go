package service

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/repo"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
)

type LayerService interface {
	Create(ctx context.Context, in CreateLayerInput) (*model.Layer, error)
	Get(ctx context.Context, id string) (*model.Layer, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Layer, error)
	Update(ctx context.Context, id string, in UpdateLayerInput) (*model.Layer, error)
	Delete(ctx context.Context, id string) error
}

type CreateLayerInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	ProjectID    string              `json:"project_id"`
	UserID       string              `json:"user_id"`
	LayerType    string              `json:"layer_type"`
	Style        datatypes.JSONMap   `json:"style,omitempty"`
	CustomFields []model.CustomField `json:"custom_fields,omitempty"`
}

type UpdateLayerInput struct {
	Name         *string              `json:"name,omitempty"`
	Description  *string              `json:"description,omitempty"`
	LayerType    *string              `json:"layer_type,omitempty"`
	Style        *datatypes.JSONMap   `json:"style,omitempty"`
	Visible      *bool                `json:"visible,omitempty"`
	CustomFields *[]model.CustomField `json:"custom_fields,omitempty"`
}

type layerService struct {
	r repo.LayerRepo
}

func NewLayerService(r repo.LayerRepo) LayerService {
	return &layerService{r: r}
}

func (s *layerService) Create(ctx context.Context, in CreateLayerInput) (*model.Layer, error) {
	if in.Name == "" {
		return nil, errors.New("layer name is empty")
	}
	if in.ProjectID == "" {
		return nil, errors.New("layer project is empty")
	}
	fields := in.CustomFields
	if fields == nil {
		fields = []model.CustomField{}
	}
	l := &model.Layer{
		ID:           ids.New(),
		Name:         in.Name,
		Description:  in.Description,
		ProjectID:    in.ProjectID,
		UserID:       in.UserID,
		LayerType:    in.LayerType,
		Style:        in.Style,
		Visible:      true,
		CustomFields: fields,
	}
	if err := s.r.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *layerService) Get(ctx context.Context, id string) (*model.Layer, error) {
	l, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotFound
	}
	return l, nil
}

func (s *layerService) ListByProject(ctx context.Context, projectID string) ([]model.Layer, error) {
	return s.r.ListByProject(ctx, projectID)
}

func (s *layerService) Update(ctx context.Context, id string, in UpdateLayerInput) (*model.Layer, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.LayerType != nil {
		fields["layer_type"] = *in.LayerType
	}
	if in.Style != nil {
		fields["style"] = *in.Style
	}
	if in.Visible != nil {
		fields["visible"] = *in.Visible
	}
	if in.CustomFields != nil {
		fields["custom_fields"] = *in.CustomFields
	}
	l, err := s.r.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// Delete removes the layer and every asset on it, photos included.
func (s *layerService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, id)
}
