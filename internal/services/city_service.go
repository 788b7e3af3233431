package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/request_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/utils"
)

type CityServiceInterface interface {
	ListCities(ctx context.Context) ([]response_models.City, error)
	GetCity(ctx context.Context, slug string) (response_models.City, error)
	CreateCity(ctx context.Context, req request_models.CreateCityRequest) (response_models.City, error)
	UpdateCity(ctx context.Context, slug string, req request_models.UpdateCityRequest) (response_models.City, error)
	DeleteCity(ctx context.Context, slug string) error
	SeedCities(ctx context.Context, seeds []request_models.CreateCityRequest) (int, error)
}

type CityService struct {
	cityRepo repositories.CityRepository
	logger   *zap.Logger
}

func NewCityService(cityRepo repositories.CityRepository, logger *zap.Logger) CityServiceInterface {
	return &CityService{cityRepo: cityRepo, logger: logger}
}

func (s *CityService) ListCities(ctx context.Context) ([]response_models.City, error) {
	cities, err := s.cityRepo.List(ctx)
	if err != nil {
		s.logger.Error("listing cities failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.City, 0, len(cities))
	for _, c := range cities {
		out = append(out, cityResponse(c))
	}
	return out, nil
}

func (s *CityService) GetCity(ctx context.Context, slug string) (response_models.City, error) {
	city, err := s.cityRepo.GetBySlug(ctx, urlCitySlug(slug))
	if err != nil {
		s.logger.Error("fetching city failed", zap.String("slug", slug), zap.Error(err))
		return response_models.City{}, utils.ErrDatabaseError
	}
	if city == nil {
		return response_models.City{}, utils.ErrCityNotFound
	}
	return cityResponse(*city), nil
}

func (s *CityService) CreateCity(ctx context.Context, req request_models.CreateCityRequest) (response_models.City, error) {
	city, err := cityFromRequest(req)
	if err != nil {
		return response_models.City{}, err
	}

	existing, err := s.cityRepo.GetBySlug(ctx, city.Slug)
	if err != nil {
		s.logger.Error("fetching city failed", zap.String("slug", city.Slug), zap.Error(err))
		return response_models.City{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.City{}, utils.ErrCityExists
	}

	if err := s.cityRepo.Create(ctx, city); err != nil {
		s.logger.Error("creating city failed", zap.String("slug", city.Slug), zap.Error(err))
		return response_models.City{}, utils.ErrDatabaseError
	}
	return cityResponse(*city), nil
}

func (s *CityService) UpdateCity(ctx context.Context, slug string, req request_models.UpdateCityRequest) (response_models.City, error) {
	city, err := s.cityRepo.GetBySlug(ctx, urlCitySlug(slug))
	if err != nil {
		return response_models.City{}, utils.ErrDatabaseError
	}
	if city == nil {
		return response_models.City{}, utils.ErrCityNotFound
	}

	if req.Name != nil {
		city.Name = strings.TrimSpace(*req.Name)
	}
	if req.Region != nil {
		city.Region = *req.Region
	}
	if req.Description != nil {
		city.Description = *req.Description
	}
	if req.ImageURL != nil {
		city.ImageURL = *req.ImageURL
	}
	if req.HeroImageURL != nil {
		city.HeroImageURL = *req.HeroImageURL
	}

	if err := s.cityRepo.Update(ctx, city); err != nil {
		s.logger.Error("updating city failed", zap.String("slug", city.Slug), zap.Error(err))
		return response_models.City{}, utils.ErrDatabaseError
	}
	return cityResponse(*city), nil
}

func (s *CityService) DeleteCity(ctx context.Context, slug string) error {
	deleted, err := s.cityRepo.Delete(ctx, urlCitySlug(slug))
	if err != nil {
		s.logger.Error("deleting city failed", zap.String("slug", slug), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrCityNotFound
	}
	return nil
}

// SeedCities upserts by slug and returns how many cities were written. Invalid entries fail the
// whole seed before anything is written.
func (s *CityService) SeedCities(ctx context.Context, seeds []request_models.CreateCityRequest) (int, error) {
	cities := make([]*db_models.City, 0, len(seeds))
	for _, seed := range seeds {
		city, err := cityFromRequest(seed)
		if err != nil {
			return 0, err
		}
		cities = append(cities, city)
	}

	written := 0
	for _, city := range cities {
		if err := s.cityRepo.Upsert(ctx, city); err != nil {
			s.logger.Error("seeding city failed", zap.String("slug", city.Slug), zap.Error(err))
			return written, utils.ErrDatabaseError
		}
		written++
	}
	return written, nil
}

func cityFromRequest(req request_models.CreateCityRequest) (*db_models.City, error) {
	var errs utils.ValidationErrors
	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs.Add("name", "City name is required")
	}
	slug := urlCitySlug(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" && name != "" {
		errs.Add("slug", "City slug could not be derived from the name")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	return &db_models.City{
		Slug:         slug,
		Name:         name,
		Region:       strings.TrimSpace(req.Region),
		Description:  strings.TrimSpace(req.Description),
		ImageURL:     strings.TrimSpace(req.ImageURL),
		HeroImageURL: strings.TrimSpace(req.HeroImageURL),
	}, nil
}

func cityResponse(c db_models.City) response_models.City {
	return response_models.City{
		ID:           c.ID.String(),
		Slug:         c.Slug,
		Name:         c.Name,
		Region:       c.Region,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		HeroImageURL: c.HeroImageURL,
	}
}
