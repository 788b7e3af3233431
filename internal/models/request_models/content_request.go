package request_models

type UpsertContentRequest struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	CitySlug      string                 `json:"city_slug"`
	CityName      string                 `json:"city_name"`
	GoogleMapLink string                 `json:"google_map_link"`
	ImageURL      string                 `json:"image_url"`
	Attributes    map[string]interface{} `json:"attributes"`
}
