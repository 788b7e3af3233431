package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tunitour/internal/models/request_models"
	"tunitour/internal/services"
	"tunitour/pkg/utils"
)

type GuideController struct {
	guideService services.GuideServiceInterface
}

func NewGuideController(guideService services.GuideServiceInterface) *GuideController {
	return &GuideController{guideService: guideService}
}

func (g *GuideController) ListGuidesForCity(c *gin.Context) {
	guides, err := g.guideService.ListGuidesForCity(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, guides, "Guides fetched successfully")
}

// GetGuide godoc
// @Summary Guide profile
// @Tags Guides
// @Produce json
// @Param id path string true "Guide id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/guides/{id} [get]
func (g *GuideController) GetGuide(c *gin.Context) {
	guide, err := g.guideService.GetGuide(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, guide, "Guide fetched successfully")
}

// UpsertMyProfile godoc
// @Summary Create or update the caller's guide profile
// @Description Also keeps the guide's city links in sync with locations.
// @Tags Guides
// @Accept json
// @Produce json
// @Param request body request_models.GuideProfileRequest true "Guide profile"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/guides/me [put]
func (g *GuideController) UpsertMyProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.GuideProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	guide, err := g.guideService.UpsertMyGuideProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, guide, "Guide profile saved")
}
