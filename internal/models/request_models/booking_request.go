package request_models

// CreateBookingRequest is validated by the booking service so that every
// missing field is reported at once.
type CreateBookingRequest struct {
	GuideID       string  `json:"guide_id"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	DurationHours int     `json:"duration_hours"`
	Participants  int     `json:"participants"`
	AttractionID  *string `json:"attraction_id"`
	RestaurantID  *string `json:"restaurant_id"`
	ActivityID    *string `json:"activity_id"`
	Notes         string  `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
