package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/request_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/utils"
)

type GuideServiceInterface interface {
	ListGuidesForCity(ctx context.Context, citySlug string) ([]response_models.Guide, error)
	GetGuide(ctx context.Context, id string) (response_models.Guide, error)
	UpsertMyGuideProfile(ctx context.Context, userID uuid.UUID, req request_models.GuideProfileRequest) (response_models.Guide, error)
}

type GuideService struct {
	guideRepo repositories.GuideRepository
	logger    *zap.Logger
}

func NewGuideService(guideRepo repositories.GuideRepository, logger *zap.Logger) GuideServiceInterface {
	return &GuideService{guideRepo: guideRepo, logger: logger}
}

// ListGuidesForCity prefers the city_guides links and falls back to guides whose locations name the city.
func (s *GuideService) ListGuidesForCity(ctx context.Context, citySlug string) ([]response_models.Guide, error) {
	slug := urlCitySlug(citySlug)

	guides, err := s.guideRepo.ListByCityLinks(ctx, slug)
	if err != nil {
		s.logger.Warn("city_guides lookup failed, using guide locations", zap.String("city", slug), zap.Error(err))
	}

	if len(guides) == 0 {
		all, err := s.guideRepo.List(ctx)
		if err != nil {
			s.logger.Error("listing guides failed", zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
		for _, g := range all {
			if g.Locations.Contains(slug) {
				guides = append(guides, g)
			}
		}
	}

	out := make([]response_models.Guide, 0, len(guides))
	for _, g := range guides {
		out = append(out, guideResponse(g))
	}
	return out, nil
}

func (s *GuideService) GetGuide(ctx context.Context, id string) (response_models.Guide, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return response_models.Guide{}, utils.ErrGuideNotFound
	}
	guide, err := s.guideRepo.GetByID(ctx, uid)
	if err != nil {
		s.logger.Error("fetching guide failed", zap.String("id", id), zap.Error(err))
		return response_models.Guide{}, utils.ErrDatabaseError
	}
	if guide == nil {
		return response_models.Guide{}, utils.ErrGuideNotFound
	}
	return guideResponse(*guide), nil
}

func (s *GuideService) UpsertMyGuideProfile(ctx context.Context, userID uuid.UUID, req request_models.GuideProfileRequest) (response_models.Guide, error) {
	guide, err := s.guideRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("fetching guide profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return response_models.Guide{}, utils.ErrDatabaseError
	}
	if guide == nil {
		guide = &db_models.Guide{UserID: userID}
	}

	guide.DisplayName = strings.TrimSpace(req.DisplayName)
	guide.Bio = strings.TrimSpace(req.Bio)
	guide.Languages = cleanList(req.Languages, strings.TrimSpace)
	guide.Locations = cleanList(req.Locations, urlCitySlug)
	guide.HourlyRate = req.HourlyRate
	guide.DailyRate = req.DailyRate
	guide.Currency = strings.ToUpper(req.Currency)
	if guide.Currency == "" {
		guide.Currency = "TND"
	}

	if err := s.guideRepo.Save(ctx, guide); err != nil {
		s.logger.Error("saving guide profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return response_models.Guide{}, utils.ErrDatabaseError
	}
	if err := s.guideRepo.ReplaceCityLinks(ctx, guide.ID, guide.Locations); err != nil {
		s.logger.Warn("syncing city_guides failed", zap.String("guide_id", guide.ID.String()), zap.Error(err))
	}
	return guideResponse(*guide), nil
}

func cleanList(in []string, norm func(string) string) db_models.StringList {
	out := make(db_models.StringList, 0, len(in))
	seen := map[string]bool{}
	for _, v := range in {
		v = norm(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func guideResponse(g db_models.Guide) response_models.Guide {
	languages := []string(g.Languages)
	if languages == nil {
		languages = []string{}
	}
	locations := []string(g.Locations)
	if locations == nil {
		locations = []string{}
	}
	return response_models.Guide{
		ID:          g.ID.String(),
		UserID:      g.UserID.String(),
		DisplayName: g.DisplayName,
		Bio:         g.Bio,
		Languages:   languages,
		Locations:   locations,
		HourlyRate:  g.HourlyRate,
		DailyRate:   g.DailyRate,
		Currency:    g.Currency,
	}
}
