package db_models

import "github.com/google/uuid"

type Guide struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	DisplayName string     `json:"display_name"`
	Bio         string     `json:"bio"`
	Languages   StringList `json:"languages"`
	Locations   StringList `json:"locations"`
	HourlyRate  float64    `json:"hourly_rate"`
	DailyRate   float64    `json:"daily_rate"`
	Currency    string     `gorm:"size:3;default:TND" json:"currency"`
}

// CityGuide links guides to the cities they cover.
type CityGuide struct {
	CitySlug  string    `gorm:"primaryKey;size:120" json:"city_slug"`
	GuideID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"guide_id"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`
}

func (CityGuide) TableName() string { return "city_guides" }
