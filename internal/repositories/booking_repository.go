package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tunitour/internal/models/db_models"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *db_models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Booking, error)
	ListForTourist(ctx context.Context, touristID uuid.UUID) ([]db_models.Booking, error)
	ListForGuide(ctx context.Context, guideID uuid.UUID) ([]db_models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.BookingStatus) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *db_models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Booking, error) {
	var booking db_models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListForTourist(ctx context.Context, touristID uuid.UUID) ([]db_models.Booking, error) {
	var bookings []db_models.Booking
	err := r.db.WithContext(ctx).
		Where("tourist_id = ?", touristID).
		Order("booking_date DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListForGuide(ctx context.Context, guideID uuid.UUID) ([]db_models.Booking, error) {
	var bookings []db_models.Booking
	err := r.db.WithContext(ctx).
		Where("guide_id = ?", guideID).
		Order("booking_date DESC, start_time DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&db_models.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
