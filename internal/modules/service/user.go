package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/repo"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/secrets"
)

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type CreateUserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

type UpdateUserInput struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type userService struct {
	r      repo.UserRepo
	pepper string
}

func NewUserService(r repo.UserRepo, pepper string) UserService {
	return &userService{r: r, pepper: pepper}
}

// Create registers a new account. The password is hashed before anything is
// written and is never part of the returned record.
func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if in.Email == "" {
		return nil, errors.New("email is empty")
	}
	if in.Password == "" {
		return nil, errors.New("password is empty")
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}

	existing, err := s.r.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := secrets.HashPassword(in.Password, s.pepper)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           ids.New(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         role,
	}
	if err := s.r.Create(ctx, u); err != nil {
		// unique email index may still fire under a racing registration
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u.Sanitized(), nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out, nil
}

// Update merges the supplied fields. A new password is re-hashed before the
// merge; the stored hash never travels back out.
func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	fields := map[string]any{}
	if in.Email != nil {
		owner, err := s.r.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ID != id {
			return nil, ErrEmailTaken
		}
		fields["email"] = *in.Email
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if in.Password != nil {
		hash, err := secrets.HashPassword(*in.Password, s.pepper)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}

	u, err := s.r.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		// unique email index may still fire under a racing update
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.r.Delete(ctx, id)
}
