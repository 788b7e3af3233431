package db_models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	BaseModel
	GuideID       uuid.UUID     `gorm:"type:uuid;index;not null"`
	TouristID     uuid.UUID     `gorm:"type:uuid;index;not null"`
	AttractionID  *string       `gorm:"size:64"`
	RestaurantID  *string       `gorm:"size:64"`
	ActivityID    *string       `gorm:"size:64"`
	BookingDate   time.Time     `gorm:"type:date"`
	StartTime     string        `gorm:"size:5"`
	DurationHours int
	Participants  int
	BasePrice     float64
	ServiceFee    float64
	TotalPrice    float64
	Currency      string        `gorm:"size:3"`
	Status        BookingStatus `gorm:"size:20;index"`
	Notes         string
}
