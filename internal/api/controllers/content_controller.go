package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tunitour/internal/models/request_models"
	"tunitour/internal/services"
	"tunitour/pkg/utils"
)

type ContentController struct {
	contentService services.ContentServiceInterface
}

func NewContentController(contentService services.ContentServiceInterface) *ContentController {
	return &ContentController{contentService: contentService}
}

// GetContent godoc
// @Summary Resolve a content item by id
// @Description Looks in the canonical table, then in every per-city table of the category
// @Tags Content
// @Produce json
// @Param category path string true "attractions | restaurants | activities"
// @Param id path string true "Content id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/content/{category}/{id} [get]
func (cc *ContentController) GetContent(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	item, err := cc.contentService.ResolveContent(c.Request.Context(), category, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Content fetched successfully")
}

// GetCityContent godoc
// @Summary Attractions, restaurants and activities for a city
// @Tags Content
// @Produce json
// @Param slug path string true "City slug"
// @Success 200 {object} utils.APIResponse
// @Router /api/cities/{slug}/content [get]
func (cc *ContentController) GetCityContent(c *gin.Context) {
	content, err := cc.contentService.AggregateCity(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, content, "City content fetched successfully")
}

func (cc *ContentController) ListContent(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	page, pageSize, err := utils.ParsePaging(c, 20)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	items, err := cc.contentService.ListContent(c.Request.Context(), category, c.Query("city"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Content fetched successfully")
}

func (cc *ContentController) CreateContent(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	var req request_models.UpsertContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := cc.contentService.CreateContent(c.Request.Context(), category, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, item, "Content created successfully")
}

func (cc *ContentController) UpdateContent(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	var req request_models.UpsertContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := cc.contentService.UpdateContent(c.Request.Context(), category, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Content updated successfully")
}

func (cc *ContentController) DeleteContent(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	if err := cc.contentService.DeleteContent(c.Request.Context(), category, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Content deleted successfully")
}
