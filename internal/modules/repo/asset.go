package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
)

type AssetRepo interface {
	Create(ctx context.Context, a *model.Asset) error
	Get(ctx context.Context, id string) (*model.Asset, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Asset, error)
	ListByProjectPage(ctx context.Context, projectID string, afterCreatedAt time.Time, afterID string, limit int, timeDesc bool) ([]model.Asset, error)
	ListByLayer(ctx context.Context, layerID string) ([]model.Asset, error)
	Update(ctx context.Context, id string, fields map[string]any, photos []model.Photo) (*model.Asset, error)
	Delete(ctx context.Context, id string) error
}

type assetRepo struct {
	db     *gorm.DB
	assets *store.Table[model.Asset]
	photos *store.Table[model.Photo]
}

func NewAssetRepo(db *gorm.DB) AssetRepo {
	return &assetRepo{
		db:     db,
		assets: store.New[model.Asset](db, func(a *model.Asset) string { return a.ID }),
		photos: store.New[model.Photo](db, func(p *model.Photo) string { return p.ID }),
	}
}

// Create inserts the asset and persists any embedded photos into the photo
// table in the same transaction, keeping the two representations aligned
// from the start.
func (r *assetRepo) Create(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.assets.WithTx(tx).Add(ctx, a); err != nil {
			return err
		}
		photos := r.photos.WithTx(tx)
		for i := range a.Photos {
			p := a.Photos[i]
			p.AssetID = a.ID
			if err := photos.Add(ctx, &p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *assetRepo) Get(ctx context.Context, id string) (*model.Asset, error) {
	return r.assets.Get(ctx, id)
}

func (r *assetRepo) ListByProject(ctx context.Context, projectID string) ([]model.Asset, error) {
	return r.assets.ByField(ctx, "project_id", projectID)
}

// ListByProjectPage returns one page of a project's assets ordered by
// (created_at, id), using limit+1 semantics: callers pass their page size
// plus one and trim the overflow row themselves.
func (r *assetRepo) ListByProjectPage(ctx context.Context, projectID string, afterCreatedAt time.Time, afterID string, limit int, timeDesc bool) ([]model.Asset, error) {
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)

	if !afterCreatedAt.IsZero() && afterID != "" {
		cmp := ">"
		if timeDesc {
			cmp = "<"
		}
		q = q.Where(
			"(created_at "+cmp+" ?) OR (created_at = ? AND id "+cmp+" ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	orderBy := "created_at ASC, id ASC"
	if timeDesc {
		orderBy = "created_at DESC, id DESC"
	}

	var assets []model.Asset
	query := q.Order(orderBy)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return assets, query.Find(&assets).Error
}

func (r *assetRepo) ListByLayer(ctx context.Context, layerID string) ([]model.Asset, error) {
	return r.assets.ByField(ctx, "layer_id", layerID)
}

// Update merges fields into the asset. When photos is non-nil the asset's
// entire photo set is replaced: existing photo rows are dropped, the new
// list is written to both the photo table and the embedded copy, all in one
// transaction.
func (r *assetRepo) Update(ctx context.Context, id string, fields map[string]any, photos []model.Photo) (*model.Asset, error) {
	var updated *model.Asset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := r.assets.WithTx(tx)

		merged := map[string]any{"updated_at": time.Now().UTC()}
		for k, v := range fields {
			merged[k] = v
		}

		if photos != nil {
			table := r.photos.WithTx(tx)
			if err := table.DeleteByField(ctx, "asset_id", id); err != nil {
				return err
			}
			for i := range photos {
				p := photos[i]
				p.AssetID = id
				if err := table.Add(ctx, &p); err != nil {
					return err
				}
			}
			embedded, err := store.JSONColumn(photos)
			if err != nil {
				return err
			}
			merged["photos"] = embedded
		}

		var err error
		updated, err = assets.Update(ctx, id, merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the asset and its photo rows in one transaction.
func (r *assetRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.photos.WithTx(tx).DeleteByField(ctx, "asset_id", id); err != nil {
			return err
		}
		return r.assets.WithTx(tx).Delete(ctx, id)
	})
}
