package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tunitour/internal/models/request_models"
	"tunitour/internal/services"
	"tunitour/pkg/utils"
)

// AdminController exposes the data-maintenance jobs: schema patches, map links, city migration and
// description enrichment.
type AdminController struct {
	patchService   services.SchemaPatchServiceInterface
	linkService    services.LinkServiceInterface
	migrateService services.MigrateServiceInterface
	enrichService  services.EnrichServiceInterface
}

func NewAdminController(
	patchService services.SchemaPatchServiceInterface,
	linkService services.LinkServiceInterface,
	migrateService services.MigrateServiceInterface,
	enrichService services.EnrichServiceInterface,
) *AdminController {
	return &AdminController{
		patchService:   patchService,
		linkService:    linkService,
		migrateService: migrateService,
		enrichService:  enrichService,
	}
}

func (a *AdminController) ListPatches(c *gin.Context) {
	utils.RespondSuccess(c, a.patchService.ListPatches(), "Patches fetched successfully")
}

func (a *AdminController) ListPatchRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	runs, err := a.patchService.ListRuns(c.Request.Context(), c.Query("patch"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, runs, "Patch runs fetched successfully")
}

// RunPatches godoc
// @Summary Run schema patches
// @Description Runs the named patches, or all of them when names is empty. Failed steps do not stop the run.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.RunPatchesRequest false "Patch names"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/patches/run [post]
func (a *AdminController) RunPatches(c *gin.Context) {
	var req request_models.RunPatchesRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	report, err := a.patchService.RunPatches(c.Request.Context(), req.Names...)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, patchMessage(report.Success))
}

func (a *AdminController) RunPatch(c *gin.Context) {
	report, err := a.patchService.RunPatches(c.Request.Context(), c.Param("name"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, patchMessage(report.Success))
}

func patchMessage(success bool) string {
	if success {
		return "Patches applied successfully"
	}
	return "Patches applied with errors"
}

func (a *AdminController) GenerateMapLinks(c *gin.Context) {
	report, err := a.linkService.GenerateMapLinks(c.Request.Context(), c.Param("table"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Map links generated")
}

func (a *AdminController) GenerateAllMapLinks(c *gin.Context) {
	reports, err := a.linkService.GenerateAllMapLinks(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reports, "Map links generated")
}

func (a *AdminController) MigrateCity(c *gin.Context) {
	report, err := a.migrateService.MigrateCity(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "City data migrated")
}

func (a *AdminController) EnrichDescriptions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	report, err := a.enrichService.EnrichDescriptions(c.Request.Context(), c.Param("table"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Descriptions generated")
}
