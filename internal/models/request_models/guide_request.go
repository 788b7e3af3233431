package request_models

type GuideProfileRequest struct {
	DisplayName string   `json:"display_name" binding:"required,min=2,max=80"`
	Bio         string   `json:"bio" binding:"max=2000"`
	Languages   []string `json:"languages"`
	Locations   []string `json:"locations"`
	HourlyRate  float64  `json:"hourly_rate" binding:"gte=0"`
	DailyRate   float64  `json:"daily_rate" binding:"gte=0"`
	Currency    string   `json:"currency" binding:"omitempty,len=3"`
}
