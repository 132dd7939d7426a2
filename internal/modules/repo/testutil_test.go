package repo

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a pooled second connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Layer{},
		&model.Asset{},
		&model.Photo{},
	))
	return db
}

func newTestProject(t *testing.T, r ProjectRepo, name, userID string) *model.Project {
	t.Helper()
	p := &model.Project{
		ID:       ids.New(),
		Name:     name,
		UserID:   userID,
		IsActive: true,
	}
	require.NoError(t, r.Create(t.Context(), p))
	return p
}

func newTestLayer(t *testing.T, r LayerRepo, name, projectID, userID string) *model.Layer {
	t.Helper()
	l := &model.Layer{
		ID:           ids.New(),
		Name:         name,
		ProjectID:    projectID,
		UserID:       userID,
		LayerType:    "point",
		Visible:      true,
		CustomFields: []model.CustomField{},
	}
	require.NoError(t, r.Create(t.Context(), l))
	return l
}

func newTestAsset(t *testing.T, r AssetRepo, name, projectID, layerID, userID string) *model.Asset {
	t.Helper()
	a := &model.Asset{
		ID:        ids.New(),
		Name:      name,
		AssetType: "tree",
		Geometry:  []byte(`{"type":"Point","coordinates":[-122.4,37.8]}`),
		ProjectID: projectID,
		UserID:    userID,
		LayerID:   layerID,
		Photos:    []model.Photo{},
	}
	require.NoError(t, r.Create(t.Context(), a))
	return a
}

func newTestPhoto(t *testing.T, r PhotoRepo, assetID string) *model.Photo {
	t.Helper()
	p := &model.Photo{
		ID:         ids.New(),
		AssetID:    assetID,
		Data:       "aGVsbG8=",
		Filename:   assetID + "_1.jpg",
		CapturedAt: time.Now().UTC(),
	}
	require.NoError(t, r.Add(t.Context(), p))
	return p
}
