package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tunitour/internal/models/request_models"
	"tunitour/internal/services"
	"tunitour/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{bookingService: bookingService}
}

// CreateBooking godoc
// @Summary Book a guide
// @Description Every missing required field is reported in data.errors. On success data.redirect points to the confirmation page.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.CreateBookingRequest true "Booking payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/bookings [post]
func (b *BookingController) CreateBooking(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	created, err := b.bookingService.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, created, "Booking request sent")
}

func (b *BookingController) GetBooking(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	booking, err := b.bookingService.GetBooking(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking fetched successfully")
}

func (b *BookingController) ListMyBookings(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	bookings, err := b.bookingService.ListMyBookings(c.Request.Context(), userID, role)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

func (b *BookingController) UpdateBookingStatus(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	booking, err := b.bookingService.UpdateBookingStatus(c.Request.Context(), userID, role, c.Param("id"), req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking updated successfully")
}
