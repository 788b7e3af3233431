package response_models

type City struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Region       string `json:"region"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	HeroImageURL string `json:"hero_image_url"`
}
