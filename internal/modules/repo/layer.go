package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
)

type LayerRepo interface {
	Create(ctx context.Context, l *model.Layer) error
	Get(ctx context.Context, id string) (*model.Layer, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Layer, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.Layer, error)
	Delete(ctx context.Context, id string) error
}

type layerRepo struct {
	db     *gorm.DB
	layers *store.Table[model.Layer]
	assets *store.Table[model.Asset]
	photos *store.Table[model.Photo]
}

func NewLayerRepo(db *gorm.DB) LayerRepo {
	return &layerRepo{
		db:     db,
		layers: store.New[model.Layer](db, func(l *model.Layer) string { return l.ID }),
		assets: store.New[model.Asset](db, func(a *model.Asset) string { return a.ID }),
		photos: store.New[model.Photo](db, func(p *model.Photo) string { return p.ID }),
	}
}

func (r *layerRepo) Create(ctx context.Context, l *model.Layer) error {
	return r.layers.Add(ctx, l)
}

func (r *layerRepo) Get(ctx context.Context, id string) (*model.Layer, error) {
	return r.layers.Get(ctx, id)
}

func (r *layerRepo) ListByProject(ctx context.Context, projectID string) ([]model.Layer, error) {
	return r.layers.ByField(ctx, "project_id", projectID)
}

func (r *layerRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Layer, error) {
	merged := map[string]any{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		merged[k] = v
	}
	if cf, ok := merged["custom_fields"].([]model.CustomField); ok {
		encoded, err := store.JSONColumn(cf)
		if err != nil {
			return nil, err
		}
		merged["custom_fields"] = encoded
	}
	return r.layers.Update(ctx, id, merged)
}

// Delete removes the layer together with every asset on it and those assets'
// photos. The whole cascade commits as one transaction so an interrupted
// delete never leaves orphaned assets behind.
func (r *layerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := r.assets.WithTx(tx)
		photos := r.photos.WithTx(tx)

		owned, err := assets.ByField(ctx, "layer_id", id)
		if err != nil {
			return err
		}
		for _, a := range owned {
			if err := photos.DeleteByField(ctx, "asset_id", a.ID); err != nil {
				return err
			}
			if err := assets.Delete(ctx, a.ID); err != nil {
				return err
			}
		}
		return r.layers.WithTx(tx).Delete(ctx, id)
	})
}
