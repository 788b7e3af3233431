package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tunitour/pkg/middleware"
	"tunitour/pkg/utils"
)

// currentUser reads the identity set by JWTAuthMiddleware and answers 401 itself when it is missing.
func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, "", false
	}
	return id, c.GetString(middleware.ContextRole), true
}

func categoryParam(c *gin.Context) (utils.Category, bool) {
	category, err := utils.ParseCategory(c.Param("category"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return "", false
	}
	return category, true
}

// bindOptionalJSON treats an empty body as an empty object.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return false
	}
	return true
}
