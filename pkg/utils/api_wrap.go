package utils

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Success: true,
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	respondError(c, code, message, nil)
}

func respondError(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Success: false,
		Status:  "error",
		Code:    code,
		Message: message,
		Error:   message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

var errorStatus = []struct {
	err  error
	code int
}{
	{ErrInvalidPage, http.StatusBadRequest},
	{ErrInvalidPageSize, http.StatusBadRequest},
	{ErrInvalidCategory, http.StatusBadRequest},
	{ErrColumnMissing, http.StatusBadRequest},
	{ErrInvalidResetToken, http.StatusBadRequest},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrContentNotFound, http.StatusNotFound},
	{ErrCityNotFound, http.StatusNotFound},
	{ErrTableNotFound, http.StatusNotFound},
	{ErrUnknownPatch, http.StatusNotFound},
	{ErrGuideNotFound, http.StatusNotFound},
	{ErrBookingNotFound, http.StatusNotFound},
	{ErrReviewNotFound, http.StatusNotFound},
	{ErrMediaNotFound, http.StatusNotFound},
	{ErrAccountNotFound, http.StatusNotFound},
	{ErrCityExists, http.StatusConflict},
	{ErrEmailAlreadyExists, http.StatusConflict},
	{ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{ErrUploadFailed, http.StatusBadGateway},
	{ErrEnrichmentDisabled, http.StatusServiceUnavailable},
}

// HandleServiceError maps a service error onto the response envelope.
// Client errors carry the error text as-is; anything unrecognised is a 500.
func HandleServiceError(c *gin.Context, err error) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		respondError(c, http.StatusBadRequest, verrs.Error(), gin.H{"errors": verrs.Messages()})
		return
	}

	for _, es := range errorStatus {
		if errors.Is(err, es.err) {
			respondError(c, es.code, err.Error(), nil)
			return
		}
	}

	if errors.Is(err, ErrDatabaseError) {
		zap.L().Error("database error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
	} else {
		zap.L().Error("unhandled service error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
	}
	respondError(c, http.StatusInternalServerError, "Internal server error", nil)
}

// ParsePaging reads page/pageSize query parameters with the usual bounds.
func ParsePaging(c *gin.Context, defaultSize int) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, ErrInvalidPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultSize)))
	if err != nil || pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}

	return page, pageSize, nil
}
