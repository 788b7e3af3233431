package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/request_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/utils"
)

type ContentServiceInterface interface {
	ResolveContent(ctx context.Context, category utils.Category, id string) (response_models.ContentItem, error)
	AggregateCity(ctx context.Context, citySlug string) (response_models.CityContent, error)

	ListContent(ctx context.Context, category utils.Category, citySlug string, page, pageSize int) ([]response_models.ContentItem, error)
	CreateContent(ctx context.Context, category utils.Category, req request_models.UpsertContentRequest) (response_models.ContentItem, error)
	UpdateContent(ctx context.Context, category utils.Category, id string, req request_models.UpsertContentRequest) (response_models.ContentItem, error)
	DeleteContent(ctx context.Context, category utils.Category, id string) error
}

type ContentService struct {
	contentRepo repositories.ContentRepository
	tableRepo   repositories.TableRepository
	mapCountry  string
	logger      *zap.Logger
}

func NewContentService(
	contentRepo repositories.ContentRepository,
	tableRepo repositories.TableRepository,
	mapCountry string,
	logger *zap.Logger,
) ContentServiceInterface {
	return &ContentService{
		contentRepo: contentRepo,
		tableRepo:   tableRepo,
		mapCountry:  mapCountry,
		logger:      logger,
	}
}

// ResolveContent looks in the canonical table first, then probes every per-city
// table of the category in name order. Lookup failures count as misses.
func (s *ContentService) ResolveContent(ctx context.Context, category utils.Category, id string) (response_models.ContentItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return response_models.ContentItem{}, utils.ErrContentNotFound
	}

	if uid, err := uuid.Parse(id); err == nil {
		content, err := s.contentRepo.GetByID(ctx, category, uid)
		switch {
		case err != nil:
			s.logger.Warn("canonical lookup failed",
				zap.String("table", category.Table()), zap.String("id", id), zap.Error(err))
		case content != nil:
			return contentFromModel(category, *content), nil
		}
	}

	tables, err := s.tableRepo.CityTables(ctx, category)
	if err != nil {
		s.logger.Warn("per-city table discovery failed", zap.String("category", string(category)), zap.Error(err))
		return response_models.ContentItem{}, utils.ErrContentNotFound
	}

	for _, table := range tables {
		if ctx.Err() != nil {
			return response_models.ContentItem{}, ctx.Err()
		}
		row, err := s.tableRepo.FindRowByID(ctx, table, id)
		if err != nil {
			s.logger.Warn("per-city lookup failed", zap.String("table", table), zap.String("id", id), zap.Error(err))
			continue
		}
		if row != nil {
			return contentFromRow(category, table, row), nil
		}
	}

	return response_models.ContentItem{}, utils.ErrContentNotFound
}

// AggregateCity merges canonical rows for the city with its three per-city tables.
func (s *ContentService) AggregateCity(ctx context.Context, citySlug string) (response_models.CityContent, error) {
	slug := urlCitySlug(citySlug)
	out := response_models.CityContent{CitySlug: slug}
	if slug == "" {
		return out, utils.ErrCityNotFound
	}

	results := make([][]response_models.ContentItem, len(utils.Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range utils.Categories {
		i, category := i, category
		g.Go(func() error {
			items, err := s.categoryForCity(gctx, category, slug)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	out.Attractions = results[0]
	out.Restaurants = results[1]
	out.Activities = results[2]
	return out, nil
}

func (s *ContentService) categoryForCity(ctx context.Context, category utils.Category, slug string) ([]response_models.ContentItem, error) {
	items := make([]response_models.ContentItem, 0)
	seen := map[string]bool{}

	canonical, err := s.contentRepo.ListByCity(ctx, category, slug)
	if err != nil {
		s.logger.Warn("canonical city listing failed",
			zap.String("table", category.Table()), zap.String("city", slug), zap.Error(err))
	}
	for _, c := range canonical {
		item := contentFromModel(category, c)
		seen[item.ID] = true
		items = append(items, item)
	}

	table := category.CityTable(slug)
	rows, err := s.cityTableRows(ctx, table)
	if err != nil {
		s.logger.Warn("per-city listing failed", zap.String("table", table), zap.Error(err))
	}
	for _, row := range rows {
		item := contentFromRow(category, table, row)
		if item.ID != "" {
			// a migrated row lives on in the canonical table under its mapped id
			if id, _ := migratedID(table, item.ID); seen[item.ID] || seen[id.String()] {
				continue
			}
		}
		item.CitySlug = slug
		items = append(items, item)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

// cityTableRows treats a missing table as empty.
func (s *ContentService) cityTableRows(ctx context.Context, table string) ([]repositories.Row, error) {
	exists, err := s.tableRepo.HasTable(ctx, table)
	if err != nil || !exists {
		return nil, err
	}

	orderBy := ""
	if ok, err := s.tableRepo.HasColumn(ctx, table, "name"); err == nil && ok {
		orderBy = "name"
	}
	return s.tableRepo.ListRows(ctx, table, orderBy)
}

func (s *ContentService) ListContent(ctx context.Context, category utils.Category, citySlug string, page, pageSize int) ([]response_models.ContentItem, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}
	if citySlug != "" {
		citySlug = urlCitySlug(citySlug)
	}

	rows, err := s.contentRepo.List(ctx, category, citySlug, page, pageSize)
	if err != nil {
		s.logger.Error("listing content failed", zap.String("table", category.Table()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.ContentItem, 0, len(rows))
	for _, c := range rows {
		items = append(items, contentFromModel(category, c))
	}
	return items, nil
}

func (s *ContentService) CreateContent(ctx context.Context, category utils.Category, req request_models.UpsertContentRequest) (response_models.ContentItem, error) {
	content := &db_models.Content{}
	if err := s.applyContentRequest(content, req); err != nil {
		return response_models.ContentItem{}, err
	}

	if err := s.contentRepo.Create(ctx, category, content); err != nil {
		s.logger.Error("creating content failed", zap.String("table", category.Table()), zap.Error(err))
		return response_models.ContentItem{}, utils.ErrDatabaseError
	}
	return contentFromModel(category, *content), nil
}

func (s *ContentService) UpdateContent(ctx context.Context, category utils.Category, id string, req request_models.UpsertContentRequest) (response_models.ContentItem, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return response_models.ContentItem{}, utils.ErrContentNotFound
	}

	existing, err := s.contentRepo.GetByID(ctx, category, uid)
	if err != nil {
		s.logger.Error("fetching content failed", zap.String("id", id), zap.Error(err))
		return response_models.ContentItem{}, utils.ErrDatabaseError
	}
	if existing == nil {
		return response_models.ContentItem{}, utils.ErrContentNotFound
	}

	if err := s.applyContentRequest(existing, req); err != nil {
		return response_models.ContentItem{}, err
	}
	existing.UpdatedAt = time.Now().Unix()

	if err := s.contentRepo.Update(ctx, category, existing); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response_models.ContentItem{}, utils.ErrContentNotFound
		}
		s.logger.Error("updating content failed", zap.String("id", id), zap.Error(err))
		return response_models.ContentItem{}, utils.ErrDatabaseError
	}
	return contentFromModel(category, *existing), nil
}

func (s *ContentService) DeleteContent(ctx context.Context, category utils.Category, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrContentNotFound
	}

	existing, err := s.contentRepo.GetByID(ctx, category, uid)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrContentNotFound
	}

	if err := s.contentRepo.Delete(ctx, category, uid); err != nil {
		s.logger.Error("deleting content failed", zap.String("id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ContentService) applyContentRequest(content *db_models.Content, req request_models.UpsertContentRequest) error {
	var errs utils.ValidationErrors
	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs.Add("name", "Name is required")
	}
	attrs, err := encodeAttributes(req.Attributes)
	if err != nil {
		errs.Add("attributes", "Attributes must be a JSON object")
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	content.Name = name
	content.Description = strings.TrimSpace(req.Description)
	content.CitySlug = ""
	if req.CitySlug != "" {
		content.CitySlug = urlCitySlug(req.CitySlug)
	}
	content.CityName = strings.TrimSpace(req.CityName)
	content.ImageURL = strings.TrimSpace(req.ImageURL)
	content.Attributes = attrs

	content.GoogleMapLink = strings.TrimSpace(req.GoogleMapLink)
	if content.GoogleMapLink == "" {
		city := firstNonEmpty(content.CityName, cityLabel(content.CitySlug))
		content.GoogleMapLink = utils.BuildMapLink(content.Name, city, s.mapCountry)
	}
	return nil
}
