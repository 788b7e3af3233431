package response_models

type Booking struct {
	ID            string  `json:"id"`
	GuideID       string  `json:"guide_id"`
	TouristID     string  `json:"tourist_id"`
	AttractionID  *string `json:"attraction_id,omitempty"`
	RestaurantID  *string `json:"restaurant_id,omitempty"`
	ActivityID    *string `json:"activity_id,omitempty"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	DurationHours int     `json:"duration_hours"`
	Participants  int     `json:"participants"`
	BasePrice     float64 `json:"base_price"`
	ServiceFee    float64 `json:"service_fee"`
	TotalPrice    float64 `json:"total_price"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
}

type BookingCreated struct {
	Booking  Booking `json:"booking"`
	Redirect string  `json:"redirect"`
}
