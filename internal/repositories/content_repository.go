package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tunitour/internal/models/db_models"
	"tunitour/pkg/utils"
)

// ContentRepository reads and writes the canonical category tables.
type ContentRepository interface {
	GetByID(ctx context.Context, category utils.Category, id uuid.UUID) (*db_models.Content, error)
	ExistsUnscoped(ctx context.Context, category utils.Category, id uuid.UUID) (bool, error)
	ListByCity(ctx context.Context, category utils.Category, citySlug string) ([]db_models.Content, error)
	List(ctx context.Context, category utils.Category, citySlug string, page, pageSize int) ([]db_models.Content, error)

	Create(ctx context.Context, category utils.Category, content *db_models.Content) error
	Update(ctx context.Context, category utils.Category, content *db_models.Content) error
	Delete(ctx context.Context, category utils.Category, id uuid.UUID) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) table(ctx context.Context, category utils.Category) *gorm.DB {
	return r.db.WithContext(ctx).Table(category.Table())
}

func (r *contentRepository) GetByID(ctx context.Context, category utils.Category, id uuid.UUID) (*db_models.Content, error) {
	var content db_models.Content
	err := r.table(ctx, category).Where("id = ?", id).Take(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) ExistsUnscoped(ctx context.Context, category utils.Category, id uuid.UUID) (bool, error) {
	var count int64
	err := r.table(ctx, category).Unscoped().Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) ListByCity(ctx context.Context, category utils.Category, citySlug string) ([]db_models.Content, error) {
	var items []db_models.Content
	err := r.table(ctx, category).
		Where("city_slug = ?", citySlug).
		Order("name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository) List(ctx context.Context, category utils.Category, citySlug string, page, pageSize int) ([]db_models.Content, error) {
	var items []db_models.Content
	q := r.table(ctx, category)
	if citySlug != "" {
		q = q.Where("city_slug = ?", citySlug)
	}

	err := q.Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository) Create(ctx context.Context, category utils.Category, content *db_models.Content) error {
	if err := r.table(ctx, category).Create(content).Error; err != nil {
		return fmt.Errorf("create %s: %w", category, err)
	}
	return nil
}

func (r *contentRepository) Update(ctx context.Context, category utils.Category, content *db_models.Content) error {
	result := r.table(ctx, category).Where("id = ?", content.ID).Updates(map[string]interface{}{
		"name":            content.Name,
		"description":     content.Description,
		"city_slug":       content.CitySlug,
		"city_name":       content.CityName,
		"google_map_link": content.GoogleMapLink,
		"image_url":       content.ImageURL,
		"attributes":      content.Attributes,
		"updated_at":      content.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("update %s: %w", category, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentRepository) Delete(ctx context.Context, category utils.Category, id uuid.UUID) error {
	err := r.table(ctx, category).Delete(&db_models.Content{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
