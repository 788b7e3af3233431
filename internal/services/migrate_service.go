package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/utils"
)

type MigrateServiceInterface interface {
	MigrateCity(ctx context.Context, citySlug string) (response_models.MigrationReport, error)
}

type MigrateService struct {
	contentRepo repositories.ContentRepository
	tableRepo   repositories.TableRepository
	cityRepo    repositories.CityRepository
	mapCountry  string
	logger      *zap.Logger
}

func NewMigrateService(
	contentRepo repositories.ContentRepository,
	tableRepo repositories.TableRepository,
	cityRepo repositories.CityRepository,
	mapCountry string,
	logger *zap.Logger,
) MigrateServiceInterface {
	return &MigrateService{
		contentRepo: contentRepo,
		tableRepo:   tableRepo,
		cityRepo:    cityRepo,
		mapCountry:  mapCountry,
		logger:      logger,
	}
}

// MigrateCity copies the city's per-city rows into the canonical tables. Re-running is safe: rows whose
// id already exists canonically are skipped.
func (s *MigrateService) MigrateCity(ctx context.Context, citySlug string) (response_models.MigrationReport, error) {
	slug := urlCitySlug(citySlug)
	report := response_models.MigrationReport{CitySlug: slug, Categories: make([]response_models.CategoryMigration, 0, len(utils.Categories))}
	if slug == "" {
		return report, utils.ErrCityNotFound
	}

	cityName := ""
	city, err := s.cityRepo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Warn("city lookup failed", zap.String("city", slug), zap.Error(err))
	}
	if city != nil {
		cityName = city.Name
	}

	for _, category := range utils.Categories {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Categories = append(report.Categories, s.migrateCategory(ctx, category, slug, cityName))
	}
	return report, nil
}

func (s *MigrateService) migrateCategory(ctx context.Context, category utils.Category, slug, cityName string) response_models.CategoryMigration {
	table := category.CityTable(slug)
	result := response_models.CategoryMigration{Category: string(category), SourceTable: table}

	exists, err := s.tableRepo.HasTable(ctx, table)
	if err != nil {
		s.logger.Warn("table lookup failed", zap.String("table", table), zap.Error(err))
		return result
	}
	if !exists {
		return result
	}
	result.Found = true

	rows, err := s.tableRepo.ListRows(ctx, table, "")
	if err != nil {
		s.logger.Warn("reading per-city rows failed", zap.String("table", table), zap.Error(err))
		return result
	}

	for _, row := range rows {
		content, ok := s.contentFromLegacyRow(category, table, slug, cityName, row)
		if !ok {
			result.Skipped++
			continue
		}

		present, err := s.contentRepo.ExistsUnscoped(ctx, category, content.ID)
		if err != nil {
			s.logger.Warn("existence check failed", zap.String("table", table), zap.String("id", content.ID.String()), zap.Error(err))
			result.Failed++
			continue
		}
		if present {
			result.Skipped++
			continue
		}

		if err := s.contentRepo.Create(ctx, category, content); err != nil {
			s.logger.Warn("copying row failed", zap.String("table", table), zap.String("id", content.ID.String()), zap.Error(err))
			result.Failed++
			continue
		}
		result.Copied++
	}

	s.logger.Info("city table migrated",
		zap.String("table", table), zap.Int("copied", result.Copied),
		zap.Int("skipped", result.Skipped), zap.Int("failed", result.Failed))
	return result
}

// migratedID is the canonical id a per-city row gets when migrated. legacy reports
// whether the original id was replaced.
func migratedID(table, id string) (uuid.UUID, bool) {
	if u, err := uuid.Parse(id); err == nil {
		return u, false
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(table+"/"+id)), true
}

// contentFromLegacyRow keeps uuid ids. Other ids map to a name-based uuid so re-runs land on the
// same row, and the original id is kept in attributes.legacy_id.
func (s *MigrateService) contentFromLegacyRow(category utils.Category, table, slug, cityName string, row repositories.Row) (*db_models.Content, bool) {
	item := contentFromRow(category, table, row)
	if item.ID == "" || item.Name == "" {
		return nil, false
	}

	attrs := item.Attributes
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	delete(attrs, "created_at")
	delete(attrs, "updated_at")

	id, legacy := migratedID(table, item.ID)
	if legacy {
		attrs["legacy_id"] = item.ID
	}

	raw, err := encodeAttributes(attrs)
	if err != nil {
		s.logger.Warn("row attributes not encodable", zap.String("table", table), zap.String("id", item.ID), zap.Error(err))
		raw, _ = encodeAttributes(nil)
	}

	content := &db_models.Content{
		Name:          item.Name,
		Description:   item.Description,
		CitySlug:      slug,
		CityName:      firstNonEmpty(cityName, item.CityName),
		GoogleMapLink: item.GoogleMapLink,
		ImageURL:      item.ImageURL,
		Attributes:    raw,
	}
	content.ID = id
	if content.GoogleMapLink == "" {
		content.GoogleMapLink = utils.BuildMapLink(content.Name, firstNonEmpty(content.CityName, cityLabel(slug)), s.mapCountry)
	}
	return content, true
}
