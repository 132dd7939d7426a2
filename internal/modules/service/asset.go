package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/repo"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
	"github.com/fieldmap-io/fieldmap/internal/pkg/paging"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
)

const defaultAssetPageSize = 100

type AssetService interface {
	Create(ctx context.Context, in CreateAssetInput) (*model.Asset, error)
	Get(ctx context.Context, id string) (*model.Asset, error)
	ListByProject(ctx context.Context, in ListAssetsInput) (*ListAssetsOutput, error)
	ListByLayer(ctx context.Context, layerID string) ([]model.Asset, error)
	Update(ctx context.Context, id string, in UpdateAssetInput) (*model.Asset, error)
	Delete(ctx context.Context, id string) error
}

type CreateAssetInput struct {
	// ID is optional; clients that pre-assign feature ids while drawing may
	// pass theirs through.
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	AssetType   string            `json:"asset_type"`
	Geometry    datatypes.JSON    `json:"geometry"`
	Properties  datatypes.JSONMap `json:"properties,omitempty"`
	ProjectID   string            `json:"project_id"`
	UserID      string            `json:"user_id"`
	LayerID     string            `json:"layer_id,omitempty"`
	Style       datatypes.JSONMap `json:"style,omitempty"`
	Photos      []model.Photo     `json:"photos,omitempty"`
}

type UpdateAssetInput struct {
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	AssetType   *string            `json:"asset_type,omitempty"`
	Geometry    *datatypes.JSON    `json:"geometry,omitempty"`
	Properties  *datatypes.JSONMap `json:"properties,omitempty"`
	LayerID     *string            `json:"layer_id,omitempty"`
	Style       *datatypes.JSONMap `json:"style,omitempty"`
	// Photos, when present, replaces the asset's whole photo set.
	Photos *[]model.Photo `json:"photos,omitempty"`
}

type ListAssetsInput struct {
	ProjectID string `form:"-" json:"project_id"`
	Limit     int    `form:"limit" json:"limit"`
	Cursor    string `form:"cursor" json:"cursor"`
	TimeDesc  bool   `form:"time_desc" json:"time_desc"`
}

type ListAssetsOutput struct {
	Assets     []model.Asset `json:"assets"`
	NextCursor string        `json:"next_cursor,omitempty"`
	HasMore    bool          `json:"has_more"`
}

type assetService struct {
	r repo.AssetRepo
}

func NewAssetService(r repo.AssetRepo) AssetService {
	return &assetService{r: r}
}

func (s *assetService) Create(ctx context.Context, in CreateAssetInput) (*model.Asset, error) {
	if in.Name == "" {
		return nil, errors.New("asset name is empty")
	}
	if in.ProjectID == "" {
		return nil, errors.New("asset project is empty")
	}
	id := in.ID
	if id == "" {
		id = ids.New()
	}
	photos := in.Photos
	if photos == nil {
		photos = []model.Photo{}
	}
	for i := range photos {
		if photos[i].ID == "" {
			photos[i].ID = ids.New()
		}
		photos[i].AssetID = id
		if photos[i].CapturedAt.IsZero() {
			photos[i].CapturedAt = ids.Now()
		}
	}
	a := &model.Asset{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		AssetType:   in.AssetType,
		Geometry:    in.Geometry,
		Properties:  in.Properties,
		ProjectID:   in.ProjectID,
		UserID:      in.UserID,
		LayerID:     in.LayerID,
		Style:       in.Style,
		Photos:      photos,
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assetService) Get(ctx context.Context, id string) (*model.Asset, error) {
	a, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// ListByProject returns one page of a project's assets ordered by creation
// time. The returned cursor, fed back on the next call, continues from where
// the page ended.
func (s *assetService) ListByProject(ctx context.Context, in ListAssetsInput) (*ListAssetsOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultAssetPageSize
	}

	var afterCreatedAt time.Time
	afterID := ""
	if in.Cursor != "" {
		at, id, err := paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
		afterCreatedAt, afterID = at, id
	}

	assets, err := s.r.ListByProjectPage(ctx, in.ProjectID, afterCreatedAt, afterID, limit+1, in.TimeDesc)
	if err != nil {
		return nil, err
	}

	out := &ListAssetsOutput{}
	if len(assets) > limit {
		out.HasMore = true
		assets = assets[:limit]
	}
	out.Assets = assets
	if out.HasMore && len(assets) > 0 {
		last := assets[len(assets)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}
	return out, nil
}

func (s *assetService) ListByLayer(ctx context.Context, layerID string) ([]model.Asset, error) {
	return s.r.ListByLayer(ctx, layerID)
}

func (s *assetService) Update(ctx context.Context, id string, in UpdateAssetInput) (*model.Asset, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.AssetType != nil {
		fields["asset_type"] = *in.AssetType
	}
	if in.Geometry != nil {
		fields["geometry"] = *in.Geometry
	}
	if in.Properties != nil {
		fields["properties"] = *in.Properties
	}
	if in.LayerID != nil {
		fields["layer_id"] = *in.LayerID
	}
	if in.Style != nil {
		fields["style"] = *in.Style
	}

	var photos []model.Photo
	if in.Photos != nil {
		photos = *in.Photos
		if photos == nil {
			photos = []model.Photo{}
		}
		for i := range photos {
			if photos[i].ID == "" {
				photos[i].ID = ids.New()
			}
			photos[i].AssetID = id
			if photos[i].CapturedAt.IsZero() {
				photos[i].CapturedAt = ids.Now()
			}
		}
	}

	a, err := s.r.Update(ctx, id, fields, photos)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *assetService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, id)
}
