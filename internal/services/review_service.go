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
	"tunitour/pkg/realtime"
	"tunitour/pkg/utils"
)

const reviewTable = "reviews"

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, userID uuid.UUID, citySlug string, req request_models.CreateReviewRequest) (response_models.Review, error)
	ListReviews(ctx context.Context, citySlug string, page, pageSize int) ([]response_models.Review, error)
	DeleteReview(ctx context.Context, userID uuid.UUID, role, id string) error
}

type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	publisher  realtime.Publisher
	logger     *zap.Logger
}

func NewReviewService(reviewRepo repositories.ReviewRepository, publisher realtime.Publisher, logger *zap.Logger) ReviewServiceInterface {
	return &ReviewService{reviewRepo: reviewRepo, publisher: publisher, logger: logger}
}

func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, citySlug string, req request_models.CreateReviewRequest) (response_models.Review, error) {
	var errs utils.ValidationErrors
	slug := urlCitySlug(citySlug)
	if slug == "" {
		errs.Add("city_slug", "City is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		errs.Add("rating", "Rating must be between 1 and 5")
	}
	if err := errs.OrNil(); err != nil {
		return response_models.Review{}, err
	}

	review := &db_models.Review{
		CitySlug: slug,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.logger.Error("creating review failed", zap.String("city", slug), zap.Error(err))
		return response_models.Review{}, utils.ErrDatabaseError
	}

	resp := reviewResponse(*review)
	publishRecord(ctx, s.publisher, s.logger, realtime.Insert, reviewTable, resp)
	return resp, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, citySlug string, page, pageSize int) ([]response_models.Review, error) {
	reviews, err := s.reviewRepo.ListByCity(ctx, urlCitySlug(citySlug), page, pageSize)
	if err != nil {
		s.logger.Error("listing reviews failed", zap.String("city", citySlug), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, reviewResponse(r))
	}
	return out, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID uuid.UUID, role, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrReviewNotFound
	}
	review, err := s.reviewRepo.GetByID(ctx, uid)
	if err != nil {
		s.logger.Error("fetching review failed", zap.String("id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if review == nil {
		return utils.ErrReviewNotFound
	}
	if review.UserID != userID && role != db_models.RoleAdmin {
		return utils.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, uid); err != nil {
		s.logger.Error("deleting review failed", zap.String("id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}
	publishRecord(ctx, s.publisher, s.logger, realtime.Delete, reviewTable, reviewResponse(*review))
	return nil
}

func reviewResponse(r db_models.Review) response_models.Review {
	return response_models.Review{
		ID:        r.ID.String(),
		CitySlug:  r.CitySlug,
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// publishRecord emits a change event; delivery problems are only logged.
func publishRecord(ctx context.Context, p realtime.Publisher, logger *zap.Logger, typ realtime.EventType, table string, v any) {
	record, err := realtime.RecordOf(v)
	if err != nil {
		logger.Warn("encoding realtime event failed", zap.String("table", table), zap.Error(err))
		return
	}
	ev := realtime.Event{Type: typ, Table: table}
	if typ == realtime.Delete {
		ev.OldRecord = record
	} else {
		ev.Record = record
	}
	if err := p.Publish(ctx, ev); err != nil {
		logger.Warn("publishing realtime event failed", zap.String("table", table), zap.Error(err))
	}
}
