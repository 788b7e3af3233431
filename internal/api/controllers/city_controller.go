package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tunitour/internal/models/request_models"
	"tunitour/internal/services"
	"tunitour/pkg/utils"
)

type CityController struct {
	cityService services.CityServiceInterface
}

func NewCityController(cityService services.CityServiceInterface) *CityController {
	return &CityController{cityService: cityService}
}

func (cc *CityController) ListCities(c *gin.Context) {
	cities, err := cc.cityService.ListCities(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, cities, "Cities fetched successfully")
}

func (cc *CityController) GetCity(c *gin.Context) {
	city, err := cc.cityService.GetCity(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, city, "City fetched successfully")
}

// CreateCity godoc
// @Summary Create a city
// @Description The slug is derived from the name when omitted
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreateCityRequest true "City payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/cities [post]
func (cc *CityController) CreateCity(c *gin.Context) {
	var req request_models.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	city, err := cc.cityService.CreateCity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, city, "City created successfully")
}

func (cc *CityController) UpdateCity(c *gin.Context) {
	var req request_models.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	city, err := cc.cityService.UpdateCity(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, city, "City updated successfully")
}

func (cc *CityController) DeleteCity(c *gin.Context) {
	if err := cc.cityService.DeleteCity(c.Request.Context(), c.Param("slug")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "City deleted successfully")
}
