package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id string) (*model.Project, error)
	ListByUser(ctx context.Context, userID string) ([]model.Project, error)
	NameExists(ctx context.Context, name, userID, excludeID string) (bool, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.Project, error)
	SetActive(ctx context.Context, id string, active bool) (*model.Project, error)
}

type projectRepo struct {
	projects *store.Table[model.Project]
}

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{
		projects: store.New[model.Project](db, func(p *model.Project) string { return p.ID }),
	}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.projects.Add(ctx, p)
}

func (r *projectRepo) Get(ctx context.Context, id string) (*model.Project, error) {
	return r.projects.Get(ctx, id)
}

// ListByUser returns the user's active projects. Soft-deleted projects stay
// out of every listing.
func (r *projectRepo) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	return r.projects.Filter(ctx, func(p *model.Project) bool {
		return p.IsActive && p.UserID == userID
	})
}

// NameExists reports whether another active project of the same user already
// carries the name. Comparison is case-insensitive; "Site A" and "site a"
// collide.
func (r *projectRepo) NameExists(ctx context.Context, name, userID, excludeID string) (bool, error) {
	matches, err := r.projects.Filter(ctx, func(p *model.Project) bool {
		return p.IsActive &&
			p.UserID == userID &&
			p.ID != excludeID &&
			strings.EqualFold(p.Name, name)
	})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func (r *projectRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Project, error) {
	merged := map[string]any{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		merged[k] = v
	}
	return r.projects.Update(ctx, id, merged)
}

// SetActive flips the soft-delete flag. Layers and assets are left in place
// so deactivated projects can be restored intact.
func (r *projectRepo) SetActive(ctx context.Context, id string, active bool) (*model.Project, error) {
	return r.Update(ctx, id, map[string]any{"is_active": active})
}
