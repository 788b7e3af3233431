package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/utils"
)

const (
	descriptionColumn  = "description"
	defaultEnrichLimit = 20
	maxEnrichLimit     = 200
)

type EnrichServiceInterface interface {
	EnrichDescriptions(ctx context.Context, table string, limit int) (response_models.EnrichReport, error)
}

type EnrichService struct {
	tableRepo repositories.TableRepository
	writer    DescriptionWriter
	logger    *zap.Logger
}

// NewEnrichService accepts a nil writer; the service then reports ErrEnrichmentDisabled.
func NewEnrichService(tableRepo repositories.TableRepository, writer DescriptionWriter, logger *zap.Logger) EnrichServiceInterface {
	return &EnrichService{tableRepo: tableRepo, writer: writer, logger: logger}
}

// EnrichDescriptions writes generated descriptions into rows that have none, one row at a time.
func (s *EnrichService) EnrichDescriptions(ctx context.Context, table string, limit int) (response_models.EnrichReport, error) {
	report := response_models.EnrichReport{Table: table}
	if s.writer == nil {
		return report, utils.ErrEnrichmentDisabled
	}
	if limit <= 0 {
		limit = defaultEnrichLimit
	}
	if limit > maxEnrichLimit {
		limit = maxEnrichLimit
	}

	category, ok := utils.CategoryOfTable(table)
	if !ok {
		return report, fmt.Errorf("%w: %s", utils.ErrTableNotFound, table)
	}
	exists, err := s.tableRepo.HasTable(ctx, table)
	if err != nil {
		return report, utils.ErrDatabaseError
	}
	if !exists {
		return report, fmt.Errorf("%w: %s", utils.ErrTableNotFound, table)
	}
	has, err := s.tableRepo.HasColumn(ctx, table, descriptionColumn)
	if err != nil {
		return report, utils.ErrDatabaseError
	}
	if !has {
		return report, fmt.Errorf("%w: %s.%s", utils.ErrColumnMissing, table, descriptionColumn)
	}

	rows, err := s.tableRepo.RowsMissing(ctx, table, descriptionColumn)
	if err != nil {
		s.logger.Error("reading rows failed", zap.String("table", table), zap.Error(err))
		return report, utils.ErrDatabaseError
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	for _, row := range rows {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		id := cellString(row["id"])
		name := firstNonEmpty(cellString(row["name"]), cellString(row["title"]))
		if id == "" || name == "" {
			continue
		}
		report.Scanned++

		city := firstNonEmpty(
			cellString(row["city_name"]),
			cellString(row["city"]),
			cityLabel(cellString(row["city_slug"])),
			cityLabel(utils.CitySlugFromTable(category, table)),
		)
		text, err := s.writer.Describe(ctx, name, city, string(category))
		if err != nil {
			s.logger.Warn("describing row failed", zap.String("table", table), zap.String("id", id), zap.Error(err))
			report.Failed++
			continue
		}
		if err := s.tableRepo.UpdateColumnForID(ctx, table, descriptionColumn, id, text); err != nil {
			s.logger.Warn("saving description failed", zap.String("table", table), zap.String("id", id), zap.Error(err))
			report.Failed++
			continue
		}
		report.Updated++
	}
	return report, nil
}
