package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/request_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/realtime"
	"tunitour/pkg/utils"
)

const (
	bookingTable           = "bookings"
	defaultBookingHours    = 2
	fullDayHours           = 8
	serviceFeeRate         = 0.10
	bookingDateLayout      = "2006-01-02"
	bookingTimeLayout      = "15:04"
	bookingConfirmationURL = "/booking-confirmation?id="
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, touristID uuid.UUID, req request_models.CreateBookingRequest) (response_models.BookingCreated, error)
	GetBooking(ctx context.Context, userID uuid.UUID, role, id string) (response_models.Booking, error)
	ListMyBookings(ctx context.Context, userID uuid.UUID, role string) ([]response_models.Booking, error)
	UpdateBookingStatus(ctx context.Context, userID uuid.UUID, role, id, status string) (response_models.Booking, error)
}

type BookingService struct {
	bookingRepo repositories.BookingRepository
	guideRepo   repositories.GuideRepository
	accountRepo repositories.AccountRepository
	content     ContentServiceInterface
	mail        IMailService
	publisher   realtime.Publisher
	logger      *zap.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	guideRepo repositories.GuideRepository,
	accountRepo repositories.AccountRepository,
	content ContentServiceInterface,
	mail IMailService,
	publisher realtime.Publisher,
	logger *zap.Logger,
) BookingServiceInterface {
	return &BookingService{
		bookingRepo: bookingRepo,
		guideRepo:   guideRepo,
		accountRepo: accountRepo,
		content:     content,
		mail:        mail,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, touristID uuid.UUID, req request_models.CreateBookingRequest) (response_models.BookingCreated, error) {
	var errs utils.ValidationErrors

	guideID := strings.TrimSpace(req.GuideID)
	dateStr := strings.TrimSpace(req.Date)
	timeStr := strings.TrimSpace(req.Time)

	if guideID == "" {
		errs.Add("guide_id", "Please select a guide")
	}
	if dateStr == "" {
		errs.Add("date", "Please select a date")
	}
	if timeStr == "" {
		errs.Add("time", "Please select a time")
	}
	if err := errs.OrNil(); err != nil {
		return response_models.BookingCreated{}, err
	}

	date, err := time.ParseInLocation(bookingDateLayout, dateStr, time.UTC)
	if err != nil {
		errs.Add("date", "Date must be in YYYY-MM-DD format")
	} else {
		today := s.now().UTC().Truncate(24 * time.Hour)
		if date.Before(today) {
			errs.Add("date", "Date cannot be in the past")
		}
	}
	if _, err := time.Parse(bookingTimeLayout, timeStr); err != nil {
		errs.Add("time", "Time must be in HH:MM format")
	}

	hours := req.DurationHours
	if hours == 0 {
		hours = defaultBookingHours
	}
	if hours < 1 {
		errs.Add("duration_hours", "Duration must be at least 1 hour")
	}
	participants := req.Participants
	if participants == 0 {
		participants = 1
	}
	if participants < 1 {
		errs.Add("participants", "At least one participant is required")
	}

	guideUID, err := uuid.Parse(guideID)
	if err != nil {
		errs.Add("guide_id", "Please select a guide")
	}
	if err := errs.OrNil(); err != nil {
		return response_models.BookingCreated{}, err
	}

	guide, err := s.guideRepo.GetByID(ctx, guideUID)
	if err != nil {
		s.logger.Error("fetching guide failed", zap.String("guide_id", guideID), zap.Error(err))
		return response_models.BookingCreated{}, utils.ErrDatabaseError
	}
	if guide == nil {
		return response_models.BookingCreated{}, utils.ErrGuideNotFound
	}

	refs, err := s.resolveRefs(ctx, req)
	if err != nil {
		return response_models.BookingCreated{}, err
	}

	base, fee, total := quoteBooking(guide.HourlyRate, guide.DailyRate, hours, participants)
	booking := &db_models.Booking{
		GuideID:       guide.ID,
		TouristID:     touristID,
		AttractionID:  refs[utils.CategoryAttractions],
		RestaurantID:  refs[utils.CategoryRestaurants],
		ActivityID:    refs[utils.CategoryActivities],
		BookingDate:   date,
		StartTime:     timeStr,
		DurationHours: hours,
		Participants:  participants,
		BasePrice:     base,
		ServiceFee:    fee,
		TotalPrice:    total,
		Currency:      firstNonEmpty(guide.Currency, "TND"),
		Status:        db_models.BookingPending,
		Notes:         strings.TrimSpace(req.Notes),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		s.logger.Error("creating booking failed", zap.String("guide_id", guideID), zap.Error(err))
		return response_models.BookingCreated{}, utils.ErrDatabaseError
	}

	resp := bookingResponse(*booking)
	s.notifyGuide(ctx, guide, resp)
	s.publish(ctx, realtime.Insert, resp, nil)

	return response_models.BookingCreated{
		Booking:  resp,
		Redirect: bookingConfirmationURL + resp.ID,
	}, nil
}

// quoteBooking applies the daily rate to full-day bookings when the guide has one.
func quoteBooking(hourly, daily float64, hours, participants int) (base, fee, total float64) {
	if hours >= fullDayHours && daily > 0 {
		base = daily
	} else {
		base = hourly * float64(hours)
	}
	base = roundCents(base * float64(participants))
	fee = roundCents(base * serviceFeeRate)
	total = roundCents(base + fee)
	return base, fee, total
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// resolveRefs checks each optional content reference against canonical and per-city tables.
func (s *BookingService) resolveRefs(ctx context.Context, req request_models.CreateBookingRequest) (map[utils.Category]*string, error) {
	refs := map[utils.Category]*string{
		utils.CategoryAttractions: req.AttractionID,
		utils.CategoryRestaurants: req.RestaurantID,
		utils.CategoryActivities:  req.ActivityID,
	}
	labels := map[utils.Category]string{
		utils.CategoryAttractions: "attraction",
		utils.CategoryRestaurants: "restaurant",
		utils.CategoryActivities:  "activity",
	}

	var errs utils.ValidationErrors
	out := make(map[utils.Category]*string, len(refs))
	for _, category := range utils.Categories {
		ref := refs[category]
		if ref == nil || strings.TrimSpace(*ref) == "" {
			continue
		}
		id := strings.TrimSpace(*ref)
		if _, err := s.content.ResolveContent(ctx, category, id); err != nil {
			if errors.Is(err, utils.ErrContentNotFound) {
				errs.Add(labels[category]+"_id", fmt.Sprintf("Selected %s was not found", labels[category]))
				continue
			}
			return nil, err
		}
		out[category] = &id
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BookingService) notifyGuide(ctx context.Context, guide *db_models.Guide, b response_models.Booking) {
	account, err := s.accountRepo.FindByID(ctx, guide.UserID)
	if err != nil || account == nil {
		s.logger.Warn("guide account not found for booking mail", zap.String("guide_id", guide.ID.String()), zap.Error(err))
		return
	}

	err = s.mail.SendBookingRequest(account.Email, BookingMail{
		GuideName:    firstNonEmpty(guide.DisplayName, account.Name),
		BookingID:    b.ID,
		Date:         b.Date,
		Time:         b.Time,
		Hours:        b.DurationHours,
		Participants: b.Participants,
		Total:        fmt.Sprintf("%.2f %s", b.TotalPrice, b.Currency),
	})
	if err != nil {
		s.logger.Warn("sending booking mail failed", zap.String("booking_id", b.ID), zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, typ realtime.EventType, b response_models.Booking, old *response_models.Booking) {
	record, err := realtime.RecordOf(b)
	if err != nil {
		s.logger.Warn("encoding booking event failed", zap.Error(err))
		return
	}
	ev := realtime.Event{Type: typ, Table: bookingTable, Record: record}
	if old != nil {
		if ev.OldRecord, err = realtime.RecordOf(old); err != nil {
			s.logger.Warn("encoding booking event failed", zap.Error(err))
		}
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("publishing booking event failed", zap.String("booking_id", b.ID), zap.Error(err))
	}
}

func (s *BookingService) GetBooking(ctx context.Context, userID uuid.UUID, role, id string) (response_models.Booking, error) {
	booking, guide, err := s.loadBooking(ctx, id)
	if err != nil {
		return response_models.Booking{}, err
	}
	if !s.canSee(userID, role, booking, guide) {
		return response_models.Booking{}, utils.ErrForbidden
	}
	return bookingResponse(*booking), nil
}

func (s *BookingService) ListMyBookings(ctx context.Context, userID uuid.UUID, role string) ([]response_models.Booking, error) {
	var bookings []db_models.Booking
	var err error

	if role == db_models.RoleGuide {
		guide, gerr := s.guideRepo.GetByUserID(ctx, userID)
		if gerr != nil {
			s.logger.Error("fetching guide profile failed", zap.String("user_id", userID.String()), zap.Error(gerr))
			return nil, utils.ErrDatabaseError
		}
		if guide == nil {
			return []response_models.Booking{}, nil
		}
		bookings, err = s.bookingRepo.ListForGuide(ctx, guide.ID)
	} else {
		bookings, err = s.bookingRepo.ListForTourist(ctx, userID)
	}
	if err != nil {
		s.logger.Error("listing bookings failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingResponse(b))
	}
	return out, nil
}

// UpdateBookingStatus lets the guide confirm, decline or complete, and the tourist cancel.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, userID uuid.UUID, role, id, status string) (response_models.Booking, error) {
	booking, guide, err := s.loadBooking(ctx, id)
	if err != nil {
		return response_models.Booking{}, err
	}

	next := db_models.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	isGuide := guide != nil && guide.UserID == userID
	isTourist := booking.TouristID == userID
	isAdmin := role == db_models.RoleAdmin
	if !isGuide && !isTourist && !isAdmin {
		return response_models.Booking{}, utils.ErrForbidden
	}

	allowed := false
	switch {
	case next == db_models.BookingCancelled:
		allowed = (isTourist || isAdmin) &&
			(booking.Status == db_models.BookingPending || booking.Status == db_models.BookingConfirmed)
	case next == db_models.BookingConfirmed || next == db_models.BookingDeclined:
		allowed = (isGuide || isAdmin) && booking.Status == db_models.BookingPending
	case next == db_models.BookingCompleted:
		allowed = (isGuide || isAdmin) && booking.Status == db_models.BookingConfirmed
	}
	if !allowed {
		var errs utils.ValidationErrors
		errs.Add("status", fmt.Sprintf("Cannot change booking from %s to %s", booking.Status, next))
		return response_models.Booking{}, errs
	}

	old := bookingResponse(*booking)
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response_models.Booking{}, utils.ErrBookingNotFound
		}
		s.logger.Error("updating booking status failed", zap.String("booking_id", id), zap.Error(err))
		return response_models.Booking{}, utils.ErrDatabaseError
	}
	booking.Status = next

	resp := bookingResponse(*booking)
	s.publish(ctx, realtime.Update, resp, &old)
	return resp, nil
}

func (s *BookingService) loadBooking(ctx context.Context, id string) (*db_models.Booking, *db_models.Guide, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, utils.ErrBookingNotFound
	}
	booking, err := s.bookingRepo.GetByID(ctx, uid)
	if err != nil {
		s.logger.Error("fetching booking failed", zap.String("booking_id", id), zap.Error(err))
		return nil, nil, utils.ErrDatabaseError
	}
	if booking == nil {
		return nil, nil, utils.ErrBookingNotFound
	}
	guide, err := s.guideRepo.GetByID(ctx, booking.GuideID)
	if err != nil {
		s.logger.Warn("fetching booking guide failed", zap.String("booking_id", id), zap.Error(err))
	}
	return booking, guide, nil
}

func (s *BookingService) canSee(userID uuid.UUID, role string, b *db_models.Booking, guide *db_models.Guide) bool {
	if role == db_models.RoleAdmin || b.TouristID == userID {
		return true
	}
	return guide != nil && guide.UserID == userID
}

func bookingResponse(b db_models.Booking) response_models.Booking {
	return response_models.Booking{
		ID:            b.ID.String(),
		GuideID:       b.GuideID.String(),
		TouristID:     b.TouristID.String(),
		AttractionID:  b.AttractionID,
		RestaurantID:  b.RestaurantID,
		ActivityID:    b.ActivityID,
		Date:          b.BookingDate.Format(bookingDateLayout),
		Time:          b.StartTime,
		DurationHours: b.DurationHours,
		Participants:  b.Participants,
		BasePrice:     b.BasePrice,
		ServiceFee:    b.ServiceFee,
		TotalPrice:    b.TotalPrice,
		Currency:      b.Currency,
		Status:        string(b.Status),
		Notes:         b.Notes,
	}
}
