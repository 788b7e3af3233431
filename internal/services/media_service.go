package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/realtime"
	"tunitour/pkg/storage"
	"tunitour/pkg/utils"
)

const (
	mediaTable          = "media_items"
	MaxMediaUploadBytes = 10 << 20
)

// MediaUpload describes one file taken from a multipart form.
type MediaUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Caption     string
}

type MediaServiceInterface interface {
	UploadMedia(ctx context.Context, userID uuid.UUID, citySlug string, upload MediaUpload) (response_models.MediaItem, error)
	ListMedia(ctx context.Context, citySlug string, page, pageSize int) ([]response_models.MediaItem, error)
	DeleteMedia(ctx context.Context, userID uuid.UUID, role, id string) error
}

type MediaService struct {
	mediaRepo repositories.MediaRepository
	bucket    storage.Bucket
	publisher realtime.Publisher
	logger    *zap.Logger
}

func NewMediaService(mediaRepo repositories.MediaRepository, bucket storage.Bucket, publisher realtime.Publisher, logger *zap.Logger) MediaServiceInterface {
	return &MediaService{mediaRepo: mediaRepo, bucket: bucket, publisher: publisher, logger: logger}
}

func (s *MediaService) UploadMedia(ctx context.Context, userID uuid.UUID, citySlug string, upload MediaUpload) (response_models.MediaItem, error) {
	slug := urlCitySlug(citySlug)
	if slug == "" {
		return response_models.MediaItem{}, utils.ErrCityNotFound
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if !strings.HasPrefix(contentType, "image/") {
		return response_models.MediaItem{}, utils.ErrUnsupportedMedia
	}
	if upload.Size > MaxMediaUploadBytes {
		return response_models.MediaItem{}, utils.ErrFileTooLarge
	}

	ext := strings.ToLower(path.Ext(upload.Filename))
	objectPath := fmt.Sprintf("media/%s/%s%s", slug, uuid.NewString(), ext)

	body := &cappedReader{r: upload.Body, left: MaxMediaUploadBytes}
	if err := s.bucket.Upload(ctx, objectPath, body, contentType); err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) {
			return response_models.MediaItem{}, utils.ErrFileTooLarge
		}
		s.logger.Error("storing media failed", zap.String("path", objectPath), zap.Error(err))
		return response_models.MediaItem{}, fmt.Errorf("%w: %s", utils.ErrUploadFailed, err.Error())
	}

	item := &db_models.MediaItem{
		CitySlug:    slug,
		UserID:      userID,
		URL:         s.bucket.PublicURL(objectPath),
		StoragePath: objectPath,
		Caption:     strings.TrimSpace(upload.Caption),
		ContentType: contentType,
	}
	if err := s.mediaRepo.Create(ctx, item); err != nil {
		s.logger.Error("saving media row failed", zap.String("path", objectPath), zap.Error(err))
		if rerr := s.bucket.Remove(ctx, objectPath); rerr != nil {
			s.logger.Warn("removing orphaned object failed", zap.String("path", objectPath), zap.Error(rerr))
		}
		return response_models.MediaItem{}, utils.ErrDatabaseError
	}

	resp := mediaResponse(*item)
	publishRecord(ctx, s.publisher, s.logger, realtime.Insert, mediaTable, resp)
	return resp, nil
}

// cappedReader fails once more than left bytes have been read; the declared size is not trusted.
type cappedReader struct {
	r    io.Reader
	left int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, utils.ErrFileTooLarge
	}
	return n, err
}

func (s *MediaService) ListMedia(ctx context.Context, citySlug string, page, pageSize int) ([]response_models.MediaItem, error) {
	items, err := s.mediaRepo.ListByCity(ctx, urlCitySlug(citySlug), page, pageSize)
	if err != nil {
		s.logger.Error("listing media failed", zap.String("city", citySlug), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.MediaItem, 0, len(items))
	for _, m := range items {
		out = append(out, mediaResponse(m))
	}
	return out, nil
}

// DeleteMedia removes the stored object first, then the row.
func (s *MediaService) DeleteMedia(ctx context.Context, userID uuid.UUID, role, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrMediaNotFound
	}
	item, err := s.mediaRepo.GetByID(ctx, uid)
	if err != nil {
		s.logger.Error("fetching media failed", zap.String("id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if item == nil {
		return utils.ErrMediaNotFound
	}
	if item.UserID != userID && role != db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	if item.StoragePath != "" {
		if err := s.bucket.Remove(ctx, item.StoragePath); err != nil {
			s.logger.Error("removing media object failed", zap.String("path", item.StoragePath), zap.Error(err))
			return fmt.Errorf("%w: %s", utils.ErrUploadFailed, err.Error())
		}
	}
	if err := s.mediaRepo.Delete(ctx, uid); err != nil {
		s.logger.Error("deleting media row failed", zap.String("id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}

	publishRecord(ctx, s.publisher, s.logger, realtime.Delete, mediaTable, mediaResponse(*item))
	return nil
}

func mediaResponse(m db_models.MediaItem) response_models.MediaItem {
	return response_models.MediaItem{
		ID:          m.ID.String(),
		CitySlug:    m.CitySlug,
		UserID:      m.UserID.String(),
		URL:         m.URL,
		Caption:     m.Caption,
		ContentType: m.ContentType,
		CreatedAt:   m.CreatedAt,
	}
}
