package response_models

// ContentItem is a content row normalized from either a canonical or a per-city table.
type ContentItem struct {
	ID            string                 `json:"id"`
	Category      string                 `json:"category"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description,omitempty"`
	CitySlug      string                 `json:"city_slug,omitempty"`
	CityName      string                 `json:"city_name,omitempty"`
	GoogleMapLink string                 `json:"google_map_link,omitempty"`
	ImageURL      string                 `json:"image_url,omitempty"`
	SourceTable   string                 `json:"source_table"`
	Attributes    map[string]interface{} `json:"attributes,omitempty"`
}

type CityContent struct {
	CitySlug    string        `json:"city_slug"`
	Attractions []ContentItem `json:"attractions"`
	Restaurants []ContentItem `json:"restaurants"`
	Activities  []ContentItem `json:"activities"`
}
