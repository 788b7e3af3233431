package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tunitour/internal/models/db_models"
)

type MediaRepository interface {
	Create(ctx context.Context, item *db_models.MediaItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.MediaItem, error)
	ListByCity(ctx context.Context, citySlug string, page, pageSize int) ([]db_models.MediaItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, item *db_models.MediaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.MediaItem, error) {
	var item db_models.MediaItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *mediaRepository) ListByCity(ctx context.Context, citySlug string, page, pageSize int) ([]db_models.MediaItem, error) {
	var items []db_models.MediaItem
	err := r.db.WithContext(ctx).
		Where("city_slug = ?", citySlug).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, err
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&db_models.MediaItem{}, "id = ?", id).Error
}
