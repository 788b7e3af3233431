package response_models

type Guide struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Bio         string   `json:"bio"`
	Languages   []string `json:"languages"`
	Locations   []string `json:"locations"`
	HourlyRate  float64  `json:"hourly_rate"`
	DailyRate   float64  `json:"daily_rate"`
	Currency    string   `json:"currency"`
}
