package db_models

import "gorm.io/datatypes"

// Content is the shape shared by the canonical attractions, restaurants and activities tables.
// Category-specific fields (cuisine, duration, difficulty, ...) live in Attributes.
type Content struct {
	BaseModel
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	CitySlug      string         `gorm:"index" json:"city_slug"`
	CityName      string         `json:"city_name"`
	GoogleMapLink string         `json:"google_map_link"`
	ImageURL      string         `json:"image_url"`
	Attributes    datatypes.JSON `json:"attributes"`
}

type Attraction struct{ Content }

func (Attraction) TableName() string { return "attractions" }

type Restaurant struct{ Content }

func (Restaurant) TableName() string { return "restaurants" }

type Activity struct{ Content }

func (Activity) TableName() string { return "activities" }
