package db_models

import "github.com/google/uuid"

type MediaItem struct {
	BaseModel
	CitySlug    string    `gorm:"index;not null" json:"city_slug"`
	UserID      uuid.UUID `gorm:"type:uuid" json:"user_id"`
	URL         string    `gorm:"not null" json:"url"`
	StoragePath string    `json:"-"`
	Caption     string    `json:"caption"`
	ContentType string    `json:"content_type"`
}
