package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tunitour/internal/models/db_models"
)

type CityRepository interface {
	List(ctx context.Context) ([]db_models.City, error)
	GetBySlug(ctx context.Context, slug string) (*db_models.City, error)
	Create(ctx context.Context, city *db_models.City) error
	Update(ctx context.Context, city *db_models.City) error
	Delete(ctx context.Context, slug string) (bool, error)
	Upsert(ctx context.Context, city *db_models.City) error
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) List(ctx context.Context) ([]db_models.City, error) {
	var cities []db_models.City
	if err := r.db.WithContext(ctx).Order("name").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepository) GetBySlug(ctx context.Context, slug string) (*db_models.City, error) {
	var city db_models.City
	err := r.db.WithContext(ctx).First(&city, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) Create(ctx context.Context, city *db_models.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *cityRepository) Update(ctx context.Context, city *db_models.City) error {
	return r.db.WithContext(ctx).Save(city).Error
}

func (r *cityRepository) Delete(ctx context.Context, slug string) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Delete(&db_models.City{}, "slug = ?", slug)
	return res.RowsAffected > 0, res.Error
}

// Upsert keys on slug; the id of an existing row is kept.
func (r *cityRepository) Upsert(ctx context.Context, city *db_models.City) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "region", "description", "image_url", "hero_image_url", "updated_at"}),
	}).Create(city).Error
}
