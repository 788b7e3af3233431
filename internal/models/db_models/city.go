package db_models

type City struct {
	BaseModel
	Slug         string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Name         string `gorm:"not null" json:"name"`
	Region       string `json:"region"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	HeroImageURL string `json:"hero_image_url"`
}
