package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
)

// MockLayerRepo is a mock implementation of LayerRepo
type MockLayerRepo struct {
	mock.Mock
}

func (m *MockLayerRepo) Create(ctx context.Context, l *model.Layer) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLayerRepo) Get(ctx context.Context, id string) (*model.Layer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Layer), args.Error(1)
}

func (m *MockLayerRepo) ListByProject(ctx context.Context, projectID string) ([]model.Layer, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Layer), args.Error(1)
}

func (m *MockLayerRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Layer, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Layer), args.Error(1)
}

func (m *MockLayerRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestLayerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		mockRepo := &MockLayerRepo{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Layer")).Return(nil)

		service := NewLayerService(mockRepo)
		l, err := service.Create(ctx, CreateLayerInput{
			Name: "Hydrants", ProjectID: "p1", UserID: "u1", LayerType: "point",
		})
		require.NoError(t, err)
		assert.True(t, l.Visible, "new layers start visible")
		assert.NotNil(t, l.CustomFields, "custom fields serialize as [], not null")
		assert.Empty(t, l.CustomFields)
		assert.NotEmpty(t, l.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty name", func(t *testing.T) {
		service := NewLayerService(&MockLayerRepo{})
		_, err := service.Create(ctx, CreateLayerInput{ProjectID: "p1"})
		assert.Error(t, err)
	})

	t.Run("empty project", func(t *testing.T) {
		service := NewLayerService(&MockLayerRepo{})
		_, err := service.Create(ctx, CreateLayerInput{Name: "Hydrants"})
		assert.Error(t, err)
	})
}

func TestLayerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("toggles visibility", func(t *testing.T) {
		mockRepo := &MockLayerRepo{}
		mockRepo.On("Update", ctx, "l1", map[string]any{"visible": false}).
			Return(&model.Layer{ID: "l1", Visible: false}, nil)

		service := NewLayerService(mockRepo)
		visible := false
		l, err := service.Update(ctx, "l1", UpdateLayerInput{Visible: &visible})
		require.NoError(t, err)
		assert.False(t, l.Visible)
		mockRepo.AssertExpectations(t)
	})

	t.Run("absent id", func(t *testing.T) {
		mockRepo := &MockLayerRepo{}
		mockRepo.On("Update", ctx, "nope", mock.Anything).Return(nil, store.ErrNotFound)

		service := NewLayerService(mockRepo)
		name := "x"
		_, err := service.Update(ctx, "nope", UpdateLayerInput{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestLayerService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := &MockLayerRepo{}
	mockRepo.On("Delete", ctx, "l1").Return(nil)

	service := NewLayerService(mockRepo)
	assert.NoError(t, service.Delete(ctx, "l1"))
	mockRepo.AssertExpectations(t)
}
