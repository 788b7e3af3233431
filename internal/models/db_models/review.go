package db_models

import "github.com/google/uuid"

type Review struct {
	BaseModel
	CitySlug string    `gorm:"index;not null" json:"city_slug"`
	UserID   uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Rating   int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string    `gorm:"type:text" json:"comment"`
}
