package service

import (
	"context"
	"errors"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/repo"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
)

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	ListByUser(ctx context.Context, userID string) ([]model.Project, error)
	NameTaken(ctx context.Context, name, userID, excludeID string) (bool, error)
	Update(ctx context.Context, id string, in UpdateProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*model.Project, error)
}

type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UserID      string `json:"user_id"`
}

type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type projectService struct {
	r repo.ProjectRepo
}

func NewProjectService(r repo.ProjectRepo) ProjectService {
	return &projectService{r: r}
}

// Create opens a new active project. Name uniqueness is advisory: callers
// run NameTaken first, and the store accepts duplicates from callers that
// skip the check.
func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if in.Name == "" {
		return nil, errors.New("project name is empty")
	}
	if in.UserID == "" {
		return nil, errors.New("project owner is empty")
	}
	p := &model.Project{
		ID:          ids.New(),
		Name:        in.Name,
		Description: in.Description,
		UserID:      in.UserID,
		IsActive:    true,
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *projectService) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *projectService) NameTaken(ctx context.Context, name, userID, excludeID string) (bool, error) {
	return s.r.NameExists(ctx, name, userID, excludeID)
}

func (s *projectService) Update(ctx context.Context, id string, in UpdateProjectInput) (*model.Project, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	p, err := s.r.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete soft-deletes: the project disappears from listings and frees its
// name, while layers and assets stay put for a later Restore.
func (s *projectService) Delete(ctx context.Context, id string) error {
	_, err := s.r.SetActive(ctx, id, false)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Restore re-activates a soft-deleted project, refusing when the name was
// taken by another active project in the meantime.
func (s *projectService) Restore(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	taken, err := s.r.NameExists(ctx, p.Name, p.UserID, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}
	return s.r.SetActive(ctx, id, true)
}
