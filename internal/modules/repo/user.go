package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
)

type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepo struct {
	users *store.Table[model.User]
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{
		users: store.New[model.User](db, func(u *model.User) string { return u.ID }),
	}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.users.Add(ctx, u)
}

func (r *userRepo) Get(ctx context.Context, id string) (*model.User, error) {
	return r.users.Get(ctx, id)
}

// GetByEmail returns the user registered under email, or nil. Emails are
// compared exactly as stored.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	matches, err := r.users.ByField(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	return r.users.All(ctx)
}

func (r *userRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.User, error) {
	return r.users.Update(ctx, id, fields)
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.users.Delete(ctx, id)
}
