package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
	"github.com/fieldmap-io/fieldmap/internal/pkg/paging"
)

// MockAssetRepo is a mock implementation of AssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, a *model.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepo) Get(ctx context.Context, id string) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) ListByProject(ctx context.Context, projectID string) ([]model.Asset, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetRepo) ListByProjectPage(ctx context.Context, projectID string, afterCreatedAt time.Time, afterID string, limit int, timeDesc bool) ([]model.Asset, error) {
	args := m.Called(ctx, projectID, afterCreatedAt, afterID, limit, timeDesc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetRepo) ListByLayer(ctx context.Context, layerID string) ([]model.Asset, error) {
	args := m.Called(ctx, layerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetRepo) Update(ctx context.Context, id string, fields map[string]any, photos []model.Photo) (*model.Asset, error) {
	args := m.Called(ctx, id, fields, photos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAssetService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("generates an id when the caller supplies none", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Asset")).Return(nil)

		service := NewAssetService(mockRepo)
		a, err := service.Create(ctx, CreateAssetInput{
			Name: "Hydrant 12", AssetType: "point", ProjectID: "p1", UserID: "u1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		assert.NotNil(t, a.Photos, "photo list starts empty, not null")
		mockRepo.AssertExpectations(t)
	})

	t.Run("keeps a caller-assigned id", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Asset")).Return(nil)

		service := NewAssetService(mockRepo)
		a, err := service.Create(ctx, CreateAssetInput{
			ID: "feature-7", Name: "Hydrant 12", AssetType: "point", ProjectID: "p1", UserID: "u1",
		})
		require.NoError(t, err)
		assert.Equal(t, "feature-7", a.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("stamps embedded photos with ids and the asset id", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Asset")).Return(nil)

		service := NewAssetService(mockRepo)
		a, err := service.Create(ctx, CreateAssetInput{
			Name: "Hydrant 12", AssetType: "point", ProjectID: "p1", UserID: "u1",
			Photos: []model.Photo{{Data: "aGVsbG8=", Filename: "a.jpg"}},
		})
		require.NoError(t, err)
		require.Len(t, a.Photos, 1)
		assert.NotEmpty(t, a.Photos[0].ID)
		assert.Equal(t, a.ID, a.Photos[0].AssetID)
		assert.False(t, a.Photos[0].CapturedAt.IsZero())
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty name", func(t *testing.T) {
		service := NewAssetService(&MockAssetRepo{})
		_, err := service.Create(ctx, CreateAssetInput{ProjectID: "p1"})
		assert.Error(t, err)
	})

	t.Run("empty project", func(t *testing.T) {
		service := NewAssetService(&MockAssetRepo{})
		_, err := service.Create(ctx, CreateAssetInput{Name: "Hydrant 12"})
		assert.Error(t, err)
	})
}

func TestAssetService_ListByProject(t *testing.T) {
	ctx := context.Background()

	makeAssets := func(n int) []model.Asset {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		out := make([]model.Asset, n)
		for i := range out {
			out[i] = model.Asset{
				ID:        string(rune('a' + i)),
				ProjectID: "p1",
				CreatedAt: base.Add(time.Duration(i) * time.Second),
			}
		}
		return out
	}

	t.Run("page without overflow", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("ListByProjectPage", ctx, "p1", time.Time{}, "", 11, false).
			Return(makeAssets(3), nil)

		service := NewAssetService(mockRepo)
		out, err := service.ListByProject(ctx, ListAssetsInput{ProjectID: "p1", Limit: 10})
		require.NoError(t, err)
		assert.Len(t, out.Assets, 3)
		assert.False(t, out.HasMore)
		assert.Empty(t, out.NextCursor)
		mockRepo.AssertExpectations(t)
	})

	t.Run("overflow row sets has_more and the cursor", func(t *testing.T) {
		assets := makeAssets(3)
		mockRepo := &MockAssetRepo{}
		mockRepo.On("ListByProjectPage", ctx, "p1", time.Time{}, "", 3, false).
			Return(assets, nil)

		service := NewAssetService(mockRepo)
		out, err := service.ListByProject(ctx, ListAssetsInput{ProjectID: "p1", Limit: 2})
		require.NoError(t, err)
		assert.Len(t, out.Assets, 2)
		assert.True(t, out.HasMore)

		at, id, err := paging.DecodeCursor(out.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, assets[1].ID, id)
		assert.True(t, at.Equal(assets[1].CreatedAt))
		mockRepo.AssertExpectations(t)
	})

	t.Run("cursor resumes from the last row", func(t *testing.T) {
		after := time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
		cursor := paging.EncodeCursor(after, "b")

		mockRepo := &MockAssetRepo{}
		mockRepo.On("ListByProjectPage", ctx, "p1",
			mock.MatchedBy(func(at time.Time) bool { return at.Equal(after) }),
			"b", 11, false).
			Return([]model.Asset{}, nil)

		service := NewAssetService(mockRepo)
		out, err := service.ListByProject(ctx, ListAssetsInput{ProjectID: "p1", Limit: 10, Cursor: cursor})
		require.NoError(t, err)
		assert.Empty(t, out.Assets)
		assert.False(t, out.HasMore)
		mockRepo.AssertExpectations(t)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		service := NewAssetService(&MockAssetRepo{})
		_, err := service.ListByProject(ctx, ListAssetsInput{ProjectID: "p1", Cursor: "!!!"})
		assert.ErrorIs(t, err, paging.ErrBadCursor)
	})
}

func TestAssetService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("photos absent leaves the photo set alone", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("Update", ctx, "a1", map[string]any{"name": "Valve 3"}, []model.Photo(nil)).
			Return(&model.Asset{ID: "a1", Name: "Valve 3"}, nil)

		service := NewAssetService(mockRepo)
		name := "Valve 3"
		a, err := service.Update(ctx, "a1", UpdateAssetInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Valve 3", a.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("photos present replaces the set", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("Update", ctx, "a1", map[string]any{}, mock.MatchedBy(func(photos []model.Photo) bool {
			return len(photos) == 1 && photos[0].ID != "" && photos[0].AssetID == "a1"
		})).Return(&model.Asset{ID: "a1"}, nil)

		service := NewAssetService(mockRepo)
		photos := []model.Photo{{Data: "aGVsbG8=", Filename: "a.jpg"}}
		_, err := service.Update(ctx, "a1", UpdateAssetInput{Photos: &photos})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty photo list clears the set", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("Update", ctx, "a1", map[string]any{}, mock.MatchedBy(func(photos []model.Photo) bool {
			return photos != nil && len(photos) == 0
		})).Return(&model.Asset{ID: "a1"}, nil)

		service := NewAssetService(mockRepo)
		photos := []model.Photo{}
		_, err := service.Update(ctx, "a1", UpdateAssetInput{Photos: &photos})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("absent id", func(t *testing.T) {
		mockRepo := &MockAssetRepo{}
		mockRepo.On("Update", ctx, "nope", mock.Anything, []model.Photo(nil)).
			Return(nil, store.ErrNotFound)

		service := NewAssetService(mockRepo)
		name := "x"
		_, err := service.Update(ctx, "nope", UpdateAssetInput{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}
