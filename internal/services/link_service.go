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
	mapLinkColumn    = "google_map_link"
	mapLinkBatchSize = 100
)

type LinkServiceInterface interface {
	GenerateMapLinks(ctx context.Context, table string) (response_models.LinkReport, error)
	GenerateAllMapLinks(ctx context.Context) ([]response_models.LinkReport, error)
}

type LinkService struct {
	tableRepo  repositories.TableRepository
	mapCountry string
	logger     *zap.Logger
}

func NewLinkService(tableRepo repositories.TableRepository, mapCountry string, logger *zap.Logger) LinkServiceInterface {
	return &LinkService{tableRepo: tableRepo, mapCountry: mapCountry, logger: logger}
}

// GenerateMapLinks fills google_map_link for rows that lack one. Rows that already have a link are
// never touched.
func (s *LinkService) GenerateMapLinks(ctx context.Context, table string) (response_models.LinkReport, error) {
	report := response_models.LinkReport{Table: table}

	category, ok := utils.CategoryOfTable(table)
	if !ok {
		return report, fmt.Errorf("%w: %s", utils.ErrTableNotFound, table)
	}
	exists, err := s.tableRepo.HasTable(ctx, table)
	if err != nil {
		s.logger.Error("table lookup failed", zap.String("table", table), zap.Error(err))
		return report, utils.ErrDatabaseError
	}
	if !exists {
		return report, fmt.Errorf("%w: %s", utils.ErrTableNotFound, table)
	}
	has, err := s.tableRepo.HasColumn(ctx, table, mapLinkColumn)
	if err != nil {
		s.logger.Error("column lookup failed", zap.String("table", table), zap.Error(err))
		return report, utils.ErrDatabaseError
	}
	if !has {
		return report, fmt.Errorf("%w: %s.%s", utils.ErrColumnMissing, table, mapLinkColumn)
	}

	rows, err := s.tableRepo.RowsMissing(ctx, table, mapLinkColumn)
	if err != nil {
		s.logger.Error("reading rows failed", zap.String("table", table), zap.Error(err))
		return report, utils.ErrDatabaseError
	}
	report.Scanned = len(rows)

	batch := make(map[string]string, mapLinkBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		n, err := s.tableRepo.UpdateColumnByIDs(ctx, table, mapLinkColumn, batch)
		if err != nil {
			s.logger.Warn("map link batch failed", zap.String("table", table), zap.Int("rows", len(batch)), zap.Error(err))
			report.Failed += len(batch)
		} else {
			report.Updated += int(n)
		}
		batch = make(map[string]string, mapLinkBatchSize)
	}

	for _, row := range rows {
		id := cellString(row["id"])
		name := firstNonEmpty(cellString(row["name"]), cellString(row["title"]))
		if id == "" || name == "" {
			report.Skipped++
			continue
		}
		city := firstNonEmpty(
			cellString(row["city_name"]),
			cellString(row["city"]),
			cityLabel(cellString(row["city_slug"])),
			cityLabel(utils.CitySlugFromTable(category, table)),
		)
		batch[id] = utils.BuildMapLink(name, city, s.mapCountry)
		if len(batch) >= mapLinkBatchSize {
			flush()
		}
	}
	flush()

	s.logger.Info("map links generated",
		zap.String("table", table), zap.Int("scanned", report.Scanned),
		zap.Int("updated", report.Updated), zap.Int("failed", report.Failed))
	return report, nil
}

// GenerateAllMapLinks runs over every canonical and per-city content table. A table that fails is
// reported with its error and the run moves on.
func (s *LinkService) GenerateAllMapLinks(ctx context.Context) ([]response_models.LinkReport, error) {
	tables, err := s.tableRepo.ListTables(ctx)
	if err != nil {
		s.logger.Error("listing tables failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	reports := make([]response_models.LinkReport, 0)
	for _, table := range tables {
		if _, ok := utils.CategoryOfTable(table); !ok {
			continue
		}
		if ctx.Err() != nil {
			return reports, ctx.Err()
		}
		report, err := s.GenerateMapLinks(ctx, table)
		if err != nil {
			report.Error = err.Error()
		}
		reports = append(reports, report)
	}
	return reports, nil
}
