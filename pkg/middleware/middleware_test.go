package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunitour/pkg/utils"
)

func newEngine(jwt *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware(), CORSMiddleware())
	r.GET("/me", JWTAuthMiddleware(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+"/"+c.GetString(ContextRole))
	})
	r.GET("/admin", JWTAuthMiddleware(jwt), RoleMiddleware("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour)
	r := newEngine(jwt)
	id := uuid.New()
	token, err := jwt.CreateToken(id, "tourist")
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String()+"/tourist", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", "garbage").Code)
}

func TestRoleMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour)
	r := newEngine(jwt)

	tourist, _ := jwt.CreateToken(uuid.New(), "tourist")
	admin, _ := jwt.CreateToken(uuid.New(), "admin")

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/admin", tourist).Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, "/admin", admin).Code)
}

func TestTraceIDAndCORS(t *testing.T) {
	r := newEngine(utils.NewJWTManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set(TraceHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(TraceHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/me", "")
	_, err := uuid.Parse(w.Header().Get(TraceHeader))
	assert.NoError(t, err)
}
