package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/repo"
	"github.com/fieldmap-io/fieldmap/internal/modules/store"
	"github.com/fieldmap-io/fieldmap/internal/pkg/utils/ids"
)

type PhotoService interface {
	Add(ctx context.Context, in AddPhotoInput) (*model.Photo, error)
	Get(ctx context.Context, id string) (*model.Photo, error)
	ListByAsset(ctx context.Context, assetID string) ([]model.Photo, error)
	Delete(ctx context.Context, id string) error
}

type AddPhotoInput struct {
	AssetID string `json:"asset_id"`
	// Data is the image as a base64 string, with or without a data-URL
	// prefix.
	Data     string   `json:"data"`
	Filename string   `json:"filename,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
}

type photoService struct {
	r repo.PhotoRepo
}

func NewPhotoService(r repo.PhotoRepo) PhotoService {
	return &photoService{r: r}
}

// Add stores a photo against an asset. When the caller does not name the
// file, one is derived from the asset id, the capture position, the photo's
// sequence number on the asset, and the capture timestamp.
func (s *photoService) Add(ctx context.Context, in AddPhotoInput) (*model.Photo, error) {
	if in.AssetID == "" {
		return nil, errors.New("photo asset is empty")
	}
	if in.Data == "" {
		return nil, errors.New("photo data is empty")
	}

	capturedAt := ids.Now()
	contentType, ext := sniffImage(in.Data)

	filename := in.Filename
	if filename == "" {
		seq, err := s.r.CountByAsset(ctx, in.AssetID)
		if err != nil {
			return nil, err
		}
		filename = photoFilename(in.AssetID, in.Lat, in.Lng, seq+1, capturedAt, ext)
	}

	p := &model.Photo{
		ID:          ids.New(),
		AssetID:     in.AssetID,
		Data:        in.Data,
		Filename:    filename,
		ContentType: contentType,
		CapturedAt:  capturedAt,
	}
	if err := s.r.Add(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *photoService) Get(ctx context.Context, id string) (*model.Photo, error) {
	p, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *photoService) ListByAsset(ctx context.Context, assetID string) ([]model.Photo, error) {
	return s.r.ListByAsset(ctx, assetID)
}

func (s *photoService) Delete(ctx context.Context, id string) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// sniffImage detects the content type and file extension of a base64 image
// payload. Unrecognized payloads fall back to JPEG, the overwhelmingly common
// case for camera uploads.
func sniffImage(data string) (contentType, ext string) {
	b64 := data
	if i := strings.Index(b64, ","); i >= 0 && strings.HasPrefix(b64, "data:") {
		b64 = b64[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(b64)
	}
	if err != nil || len(raw) == 0 {
		return "image/jpeg", ".jpg"
	}
	mt := mimetype.Detect(raw)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "image/jpeg", ".jpg"
	}
	return mt.String(), mt.Extension()
}

func photoFilename(assetID string, lat, lng *float64, seq int64, at time.Time, ext string) string {
	pos := "unknown"
	if lat != nil && lng != nil {
		pos = fmt.Sprintf("%.6f_%.6f", *lat, *lng)
	}
	return fmt.Sprintf("%s_%s_%d_%s%s", assetID, pos, seq, ids.FileStamp(at), ext)
}
