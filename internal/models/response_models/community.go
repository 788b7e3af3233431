package response_models

type Review struct {
	ID        string `json:"id"`
	CitySlug  string `json:"city_slug"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
}

type MediaItem struct {
	ID          string `json:"id"`
	CitySlug    string `json:"city_slug"`
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	Caption     string `json:"caption"`
	ContentType string `json:"content_type"`
	CreatedAt   int64  `json:"created_at"`
}
