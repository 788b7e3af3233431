package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tunitour/internal/models/db_models"
)

type GuideRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Guide, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*db_models.Guide, error)
	List(ctx context.Context) ([]db_models.Guide, error)
	ListByCityLinks(ctx context.Context, citySlug string) ([]db_models.Guide, error)
	Save(ctx context.Context, guide *db_models.Guide) error
	ReplaceCityLinks(ctx context.Context, guideID uuid.UUID, citySlugs []string) error
	LinkCity(ctx context.Context, citySlug string, guideID uuid.UUID) error
}

type guideRepository struct {
	db *gorm.DB
}

func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &guideRepository{db: db}
}

func (r *guideRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Guide, error) {
	var guide db_models.Guide
	err := r.db.WithContext(ctx).First(&guide, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*db_models.Guide, error) {
	var guide db_models.Guide
	err := r.db.WithContext(ctx).First(&guide, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) List(ctx context.Context) ([]db_models.Guide, error) {
	var guides []db_models.Guide
	if err := r.db.WithContext(ctx).Order("display_name").Find(&guides).Error; err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *guideRepository) ListByCityLinks(ctx context.Context, citySlug string) ([]db_models.Guide, error) {
	var guides []db_models.Guide
	err := r.db.WithContext(ctx).
		Joins("JOIN city_guides ON city_guides.guide_id = guides.id").
		Where("city_guides.city_slug = ?", citySlug).
		Order("guides.display_name").
		Find(&guides).Error
	if err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *guideRepository) Save(ctx context.Context, guide *db_models.Guide) error {
	return r.db.WithContext(ctx).Save(guide).Error
}

func (r *guideRepository) ReplaceCityLinks(ctx context.Context, guideID uuid.UUID, citySlugs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", guideID).Delete(&db_models.CityGuide{}).Error; err != nil {
			return err
		}
		if len(citySlugs) == 0 {
			return nil
		}
		links := make([]db_models.CityGuide, 0, len(citySlugs))
		for _, slug := range citySlugs {
			links = append(links, db_models.CityGuide{CitySlug: slug, GuideID: guideID})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

func (r *guideRepository) LinkCity(ctx context.Context, citySlug string, guideID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&db_models.CityGuide{CitySlug: citySlug, GuideID: guideID}).Error
}
