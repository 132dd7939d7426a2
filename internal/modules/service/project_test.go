package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
)

// MockProjectRepo is a mock implementation of ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Get(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) NameExists(ctx context.Context, name, userID, excludeID string) (bool, error) {
	args := m.Called(ctx, name, userID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Project, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) SetActive(ctx context.Context, id string, active bool) (*model.Project, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateProjectInput
		setup   func(*MockProjectRepo)
		wantErr bool
		errMsg  string
	}{
		{
			name:  "successful creation",
			input: CreateProjectInput{Name: "Site A", UserID: "u1"},
			setup: func(r *MockProjectRepo) {
				r.On("Create", ctx, mock.AnythingOfType("*model.Project")).Return(nil)
			},
		},
		{
			name:    "empty name",
			input:   CreateProjectInput{UserID: "u1"},
			setup:   func(r *MockProjectRepo) {},
			wantErr: true,
			errMsg:  "project name is empty",
		},
		{
			name:    "empty owner",
			input:   CreateProjectInput{Name: "Site A"},
			setup:   func(r *MockProjectRepo) {},
			wantErr: true,
			errMsg:  "project owner is empty",
		},
		{
			name:  "repository error",
			input: CreateProjectInput{Name: "Site A", UserID: "u1"},
			setup: func(r *MockProjectRepo) {
				r.On("Create", ctx, mock.AnythingOfType("*model.Project")).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockProjectRepo{}
			tt.setup(mockRepo)

			service := NewProjectService(mockRepo)
			result, err := service.Create(ctx, tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.True(t, result.IsActive, "new projects start active")
				assert.NotEmpty(t, result.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes", func(t *testing.T) {
		mockRepo := &MockProjectRepo{}
		mockRepo.On("SetActive", ctx, "p1", false).
			Return(&model.Project{ID: "p1", IsActive: false}, nil)

		service := NewProjectService(mockRepo)
		assert.NoError(t, service.Delete(ctx, "p1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("absent id", func(t *testing.T) {
		mockRepo := &MockProjectRepo{}
		mockRepo.On("SetActive", ctx, "nope", false).Return(nil, store.ErrNotFound)

		service := NewProjectService(mockRepo)
		assert.ErrorIs(t, service.Delete(ctx, "nope"), ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestProjectService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("reactivates when the name is free", func(t *testing.T) {
		p := &model.Project{ID: "p1", Name: "Site A", UserID: "u1", IsActive: false}
		mockRepo := &MockProjectRepo{}
		mockRepo.On("Get", ctx, "p1").Return(p, nil)
		mockRepo.On("NameExists", ctx, "Site A", "u1", "p1").Return(false, nil)
		mockRepo.On("SetActive", ctx, "p1", true).
			Return(&model.Project{ID: "p1", Name: "Site A", UserID: "u1", IsActive: true}, nil)

		service := NewProjectService(mockRepo)
		got, err := service.Restore(ctx, "p1")
		assert.NoError(t, err)
		assert.True(t, got.IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("name reused while inactive", func(t *testing.T) {
		p := &model.Project{ID: "p1", Name: "Site A", UserID: "u1", IsActive: false}
		mockRepo := &MockProjectRepo{}
		mockRepo.On("Get", ctx, "p1").Return(p, nil)
		mockRepo.On("NameExists", ctx, "Site A", "u1", "p1").Return(true, nil)

		service := NewProjectService(mockRepo)
		_, err := service.Restore(ctx, "p1")
		assert.ErrorIs(t, err, ErrNameTaken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("absent id", func(t *testing.T) {
		mockRepo := &MockProjectRepo{}
		mockRepo.On("Get", ctx, "nope").Return(nil, nil)

		service := NewProjectService(mockRepo)
		_, err := service.Restore(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestProjectService_NameTaken(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockProjectRepo{}
	mockRepo.On("NameExists", ctx, "Site A", "u1", "").Return(true, nil)

	service := NewProjectService(mockRepo)
	taken, err := service.NameTaken(ctx, "Site A", "u1", "")
	assert.NoError(t, err)
	assert.True(t, taken)
	mockRepo.AssertExpectations(t)
}
