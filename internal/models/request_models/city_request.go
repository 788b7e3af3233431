package request_models

type CreateCityRequest struct {
	Slug         string `json:"slug" yaml:"slug"`
	Name         string `json:"name" yaml:"name" binding:"required,min=2,max=120"`
	Region       string `json:"region" yaml:"region"`
	Description  string `json:"description" yaml:"description"`
	ImageURL     string `json:"image_url" yaml:"image_url" binding:"omitempty,url"`
	HeroImageURL string `json:"hero_image_url" yaml:"hero_image_url" binding:"omitempty,url"`
}

type UpdateCityRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=120"`
	Region       *string `json:"region"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url" binding:"omitempty,url"`
	HeroImageURL *string `json:"hero_image_url" binding:"omitempty,url"`
}

// CitySeedFile is the document read by `tourctl seed`.
type CitySeedFile struct {
	Cities []CreateCityRequest `yaml:"cities"`
}
