package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

// MockPhotoService is a mock implementation of PhotoService
type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) Add(ctx context.Context, in service.AddPhotoInput) (*model.Photo, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Photo), args.Error(1)
}

func (m *MockPhotoService) Get(ctx context.Context, id string) (*model.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Photo), args.Error(1)
}

func (m *MockPhotoService) ListByAsset(ctx context.Context, assetID string) ([]model.Photo, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Photo), args.Error(1)
}

func (m *MockPhotoService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestPhotoHandler_AddPhoto(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(*MockPhotoService)
		expectedStatus int
	}{
		{
			name: "successful upload",
			body: `{"data": "aGVsbG8=", "lat": 51.5, "lng": -0.12}`,
			setup: func(svc *MockPhotoService) {
				svc.On("Add", mock.Anything, mock.MatchedBy(func(in service.AddPhotoInput) bool {
					return in.AssetID == "a1" && in.Data == "aGVsbG8=" &&
						in.Lat != nil && in.Lng != nil
				})).Return(&model.Photo{ID: "ph1", AssetID: "a1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing data",
			body:           `{"lat": 51.5}`,
			setup:          func(svc *MockPhotoService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "latitude out of range",
			body:           `{"data": "aGVsbG8=", "lat": 123.0}`,
			setup:          func(svc *MockPhotoService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown asset",
			body: `{"data": "aGVsbG8="}`,
			setup: func(svc *MockPhotoService) {
				svc.On("Add", mock.Anything, mock.Anything).Return(nil, service.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			mockService := &MockPhotoService{}
			tt.setup(mockService)

			h := NewPhotoHandler(mockService)
			router := gin.New()
			router.POST("/assets/:asset_id/photos", h.AddPhoto)

			req := httptest.NewRequest("POST", "/assets/a1/photos", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestPhotoHandler_DeletePhoto(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("found", func(t *testing.T) {
		mockService := &MockPhotoService{}
		mockService.On("Delete", mock.Anything, "ph1").Return(nil)

		h := NewPhotoHandler(mockService)
		router := gin.New()
		router.DELETE("/photos/:photo_id", h.DeletePhoto)

		req := httptest.NewRequest("DELETE", "/photos/ph1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("already gone", func(t *testing.T) {
		mockService := &MockPhotoService{}
		mockService.On("Delete", mock.Anything, "ph1").Return(service.ErrNotFound)

		h := NewPhotoHandler(mockService)
		router := gin.New()
		router.DELETE("/photos/:photo_id", h.DeletePhoto)

		req := httptest.NewRequest("DELETE", "/photos/ph1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertExpectations(t)
	})
}
