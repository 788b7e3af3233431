package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tunitour/internal/models/request_models"
	"tunitour/internal/services"
	"tunitour/pkg/realtime"
	"tunitour/pkg/utils"
)

const liveSnapshotSize = 100

// CommunityController serves city reviews and the media gallery, including their live SSE views.
type CommunityController struct {
	reviewService services.ReviewServiceInterface
	mediaService  services.MediaServiceInterface
	hub           *realtime.Hub
	logger        *zap.Logger
}

func NewCommunityController(
	reviewService services.ReviewServiceInterface,
	mediaService services.MediaServiceInterface,
	hub *realtime.Hub,
	logger *zap.Logger,
) *CommunityController {
	return &CommunityController{
		reviewService: reviewService,
		mediaService:  mediaService,
		hub:           hub,
		logger:        logger,
	}
}

func (cc *CommunityController) ListReviews(c *gin.Context) {
	page, pageSize, err := utils.ParsePaging(c, 20)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	reviews, err := cc.reviewService.ListReviews(c.Request.Context(), c.Param("slug"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Reviews fetched successfully")
}

func (cc *CommunityController) CreateReview(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	review, err := cc.reviewService.CreateReview(c.Request.Context(), userID, c.Param("slug"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, review, "Review posted")
}

func (cc *CommunityController) DeleteReview(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	if err := cc.reviewService.DeleteReview(c.Request.Context(), userID, role, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Review deleted")
}

func (cc *CommunityController) ListMedia(c *gin.Context) {
	page, pageSize, err := utils.ParsePaging(c, 24)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	items, err := cc.mediaService.ListMedia(c.Request.Context(), c.Param("slug"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Media fetched successfully")
}

// UploadMedia godoc
// @Summary Upload a photo to a city gallery
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param slug path string true "City slug"
// @Param file formData file true "Image, at most 10 MiB"
// @Param caption formData string false "Caption"
// @Success 201 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Failure 415 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/cities/{slug}/media [post]
func (cc *CommunityController) UploadMedia(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "A file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}
	defer f.Close()

	item, err := cc.mediaService.UploadMedia(c.Request.Context(), userID, c.Param("slug"), services.MediaUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
		Caption:     c.PostForm("caption"),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondWithStatus(c, http.StatusCreated, item, "Media uploaded")
}

func (cc *CommunityController) DeleteMedia(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	if err := cc.mediaService.DeleteMedia(c.Request.Context(), userID, role, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Media deleted")
}

// LiveReviews streams the city's reviews as SSE "snapshot" events, one per change.
func (cc *CommunityController) LiveReviews(c *gin.Context) {
	slug := utils.CanonicalCitySlug(c.Param("slug"))
	cc.streamLive(c, realtime.Filter{Table: "reviews", CitySlug: slug}, func(ctx context.Context) ([]map[string]any, error) {
		reviews, err := cc.reviewService.ListReviews(ctx, slug, 1, liveSnapshotSize)
		if err != nil {
			return nil, err
		}
		return recordsOf(reviews)
	})
}

func (cc *CommunityController) LiveMedia(c *gin.Context) {
	slug := utils.CanonicalCitySlug(c.Param("slug"))
	cc.streamLive(c, realtime.Filter{Table: "media_items", CitySlug: slug}, func(ctx context.Context) ([]map[string]any, error) {
		items, err := cc.mediaService.ListMedia(ctx, slug, 1, liveSnapshotSize)
		if err != nil {
			return nil, err
		}
		return recordsOf(items)
	})
}

// streamLive subscribes before loading the initial rows so no change between the two is lost.
func (cc *CommunityController) streamLive(c *gin.Context, filter realtime.Filter, load func(context.Context) ([]map[string]any, error)) {
	ctx := c.Request.Context()
	sub := cc.hub.Subscribe(filter, 32)
	defer sub.Close()

	rows, err := load(ctx)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	list := realtime.NewLiveList("id", rows)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("snapshot", list.Rows())
	c.Writer.Flush()

	err = sub.Each(ctx, func(e realtime.Event) error {
		if !list.Apply(e) {
			return nil
		}
		c.SSEvent("snapshot", list.Rows())
		c.Writer.Flush()
		return nil
	})
	if err != nil && ctx.Err() == nil {
		cc.logger.Warn("live stream ended", zap.String("table", filter.Table), zap.Error(err))
	}
}

func recordsOf[T any](items []T) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		rec, err := realtime.RecordOf(it)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
