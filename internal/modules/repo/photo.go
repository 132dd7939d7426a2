package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
)

type PhotoRepo interface {
	Add(ctx context.Context, p *model.Photo) error
	Get(ctx context.Context, id string) (*model.Photo, error)
	ListByAsset(ctx context.Context, assetID string) ([]model.Photo, error)
	CountByAsset(ctx context.Context, assetID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type photoRepo struct {
	db     *gorm.DB
	photos *store.Table[model.Photo]
	assets *store.Table[model.Asset]
}

func NewPhotoRepo(db *gorm.DB) PhotoRepo {
	return &photoRepo{
		db:     db,
		photos: store.New[model.Photo](db, func(p *model.Photo) string { return p.ID }),
		assets: store.New[model.Asset](db, func(a *model.Asset) string { return a.ID }),
	}
}

// Add persists the photo and appends it to the owning asset's embedded list
// in one transaction. Fails with store.ErrNotFound when the asset does not
// exist; nothing is written in that case.
func (r *photoRepo) Add(ctx context.Context, p *model.Photo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := r.assets.WithTx(tx)

		asset, err := assets.Get(ctx, p.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return fmt.Errorf("%w: asset %s", store.ErrNotFound, p.AssetID)
		}

		if err := r.photos.WithTx(tx).Add(ctx, p); err != nil {
			return err
		}

		embedded, err := store.JSONColumn(append(asset.Photos, *p))
		if err != nil {
			return err
		}
		_, err = assets.Update(ctx, asset.ID, map[string]any{
			"photos":     embedded,
			"updated_at": time.Now().UTC(),
		})
		return err
	})
}

func (r *photoRepo) Get(ctx context.Context, id string) (*model.Photo, error) {
	return r.photos.Get(ctx, id)
}

func (r *photoRepo) ListByAsset(ctx context.Context, assetID string) ([]model.Photo, error) {
	return r.photos.ByField(ctx, "asset_id", assetID)
}

func (r *photoRepo) CountByAsset(ctx context.Context, assetID string) (int64, error) {
	return r.photos.CountByField(ctx, "asset_id", assetID)
}

// Delete removes the photo row and the matching entry in the owning asset's
// embedded list. Fails with store.ErrNotFound when the photo id is absent.
// A missing asset only skips the embedded-list update; the row deletion
// still goes through.
func (r *photoRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		photos := r.photos.WithTx(tx)

		p, err := photos.Get(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: photo %s", store.ErrNotFound, id)
		}
		if err := photos.Delete(ctx, id); err != nil {
			return err
		}

		assets := r.assets.WithTx(tx)
		asset, err := assets.Get(ctx, p.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return nil
		}

		remaining := make([]model.Photo, 0, len(asset.Photos))
		for _, e := range asset.Photos {
			if e.ID != id {
				remaining = append(remaining, e)
			}
		}
		embedded, err := store.JSONColumn(remaining)
		if err != nil {
			return err
		}
		_, err = assets.Update(ctx, asset.ID, map[string]any{
			"photos":     embedded,
			"updated_at": time.Now().UTC(),
		})
		return err
	})
}
