package controllers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tunitour/internal/infra"
	"tunitour/internal/models/db_models"
	"tunitour/internal/models/request_models"
	"tunitour/internal/repositories"
	"tunitour/internal/services"
	mem "tunitour/pkg/memcache"
	"tunitour/pkg/middleware"
	"tunitour/pkg/realtime"
	"tunitour/pkg/utils"
)

type apiEnv struct {
	router   *gin.Engine
	jwt      *utils.JWTManager
	accounts repositories.AccountRepository
	guides   repositories.GuideRepository
	reviews  services.ReviewServiceInterface
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	log := zap.NewNop()
	cfg := &infra.Config{PostgresURL: "sqlite://" + filepath.Join(t.TempDir(), "api.db")}
	db, err := infra.InitPostgresql(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { infra.ClosePostgresql(db, log) })
	require.NoError(t, infra.AutoMigrate(db))
	sdb, err := infra.NewSQLX(db)
	require.NoError(t, err)

	tables := repositories.NewTableRepository(db, sdb)
	accounts := repositories.NewAccountRepository(db)
	guides := repositories.NewGuideRepository(db)
	cities := repositories.NewCityRepository(db)
	hub := realtime.NewHub(log)
	pub := realtime.LocalPublisher{Hub: hub}
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	mail := services.NewLogMailService(log)

	content := services.NewContentService(repositories.NewContentRepository(db), tables, "Tunisia", log)
	reviews := services.NewReviewService(repositories.NewReviewRepository(db), pub, log)
	media := services.NewMediaService(repositories.NewMediaRepository(db), nil, pub, log)

	account := NewAccountController(services.NewAccountService(accounts, mail, mem.NewResetTokens(), jwt, log))
	contentCtl := NewContentController(content)
	booking := NewBookingController(services.NewBookingService(repositories.NewBookingRepository(db), guides, accounts, content, mail, pub, log))
	community := NewCommunityController(reviews, media, hub, log)
	guide := NewGuideController(services.NewGuideService(guides, log))
	admin := NewAdminController(
		services.NewSchemaPatchService(tables, repositories.NewSchemaPatchRepository(db), cities, guides, log),
		services.NewLinkService(tables, "Tunisia", log),
		services.NewMigrateService(repositories.NewContentRepository(db), tables, cities, "Tunisia", log),
		services.NewEnrichService(tables, nil, log),
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	auth := middleware.JWTAuthMiddleware(jwt)

	api := r.Group("/api")
	api.POST("/auth/signin", account.SignIn)
	api.GET("/content/:category/:id", contentCtl.GetContent)
	api.GET("/cities/:slug/reviews/live", community.LiveReviews)
	api.POST("/bookings", auth, booking.CreateBooking)
	api.PUT("/guides/me", auth, middleware.RoleMiddleware(db_models.RoleGuide), guide.UpsertMyProfile)
	api.GET("/guides/:id", guide.GetGuide)
	adminGroup := api.Group("/admin", auth, middleware.RoleMiddleware(db_models.RoleAdmin))
	adminGroup.GET("/patches", admin.ListPatches)
	adminGroup.POST("/patches/run", admin.RunPatches)
	adminGroup.POST("/patches/:name/run", admin.RunPatch)

	return &apiEnv{router: r, jwt: jwt, accounts: accounts, guides: guides, reviews: reviews}
}

func (e *apiEnv) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := e.jwt.CreateToken(uuid.New(), role)
	require.NoError(t, err)
	return tok
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) (int, utils.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestSignIn_FailureMessages(t *testing.T) {
	e := newAPIEnv(t)
	hash, err := utils.HashPassword("Medina2026")
	require.NoError(t, err)
	require.NoError(t, e.accounts.Insert(context.Background(), &db_models.Account{
		Name: "Sami", Email: "sami@example.tn", PasswordHash: hash, Role: db_models.RoleTourist,
	}))

	code, resp := e.do(t, http.MethodPost, "/api/auth/signin", "", request_models.SignInRequest{Email: "sami@example.tn", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)
	assert.Equal(t, "invalid email or password", resp.Message)

	code, resp = e.do(t, http.MethodPost, "/api/auth/signin", "", request_models.SignInRequest{Email: "nobody@example.tn", Password: "x"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "account not found", resp.Message)

	code, resp = e.do(t, http.MethodPost, "/api/auth/signin", "", request_models.SignInRequest{Email: "SAMI@example.tn ", Password: "Medina2026"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", resp.Message)
}

func TestCreateBooking_EmptyBodyReportsAllMessages(t *testing.T) {
	e := newAPIEnv(t)

	code, resp := e.do(t, http.MethodPost, "/api/bookings", e.token(t, db_models.RoleTourist), nil)
	require.Equal(t, http.StatusBadRequest, code)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Please select a guide", "Please select a date", "Please select a time"}, data["errors"])
}

func TestCreateBooking_Unauthenticated(t *testing.T) {
	e := newAPIEnv(t)
	code, resp := e.do(t, http.MethodPost, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)
}

func TestCreateBooking_RedirectsToConfirmation(t *testing.T) {
	e := newAPIEnv(t)
	ctx := context.Background()
	guideUser := &db_models.Account{Name: "Amira", Email: "amira@example.tn", Role: db_models.RoleGuide}
	require.NoError(t, e.accounts.Insert(ctx, guideUser))
	guide := &db_models.Guide{UserID: guideUser.ID, DisplayName: "Amira", HourlyRate: 40, Currency: "TND"}
	require.NoError(t, e.guides.Save(ctx, guide))

	code, resp := e.do(t, http.MethodPost, "/api/bookings", e.token(t, db_models.RoleTourist), request_models.CreateBookingRequest{
		GuideID: guide.ID.String(),
		Date:    time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:    "10:00",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	data := resp.Data.(map[string]any)
	booking := data["booking"].(map[string]any)
	assert.Equal(t, "/booking-confirmation?id="+booking["id"].(string), data["redirect"])
	assert.Equal(t, "pending", booking["status"])
}

func TestGuideProfile(t *testing.T) {
	e := newAPIEnv(t)

	profile := request_models.GuideProfileRequest{
		DisplayName: "Amira", Locations: []string{"Sidi Bou Said"}, HourlyRate: 40, Languages: []string{"fr", "ar"},
	}
	code, _ := e.do(t, http.MethodPut, "/api/guides/me", e.token(t, db_models.RoleTourist), profile)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp := e.do(t, http.MethodPut, "/api/guides/me", e.token(t, db_models.RoleGuide), profile)
	require.Equal(t, http.StatusOK, code, resp.Message)
	id := resp.Data.(map[string]any)["id"].(string)

	code, resp = e.do(t, http.MethodGet, "/api/guides/"+id, "", nil)
	require.Equal(t, http.StatusOK, code)
	got := resp.Data.(map[string]any)
	assert.Equal(t, "Amira", got["display_name"])
	assert.Equal(t, []any{"sidi-bou-said"}, got["locations"])
	assert.Equal(t, "TND", got["currency"])

	code, _ = e.do(t, http.MethodGet, "/api/guides/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetContent_NotFoundAndBadCategory(t *testing.T) {
	e := newAPIEnv(t)

	code, resp := e.do(t, http.MethodGet, "/api/content/attractions/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "content not found", resp.Message)

	code, _ = e.do(t, http.MethodGet, "/api/content/museums/1", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminPatches(t *testing.T) {
	e := newAPIEnv(t)

	code, _ := e.do(t, http.MethodGet, "/api/admin/patches", e.token(t, db_models.RoleTourist), nil)
	assert.Equal(t, http.StatusForbidden, code)

	admin := e.token(t, db_models.RoleAdmin)
	code, resp := e.do(t, http.MethodPost, "/api/admin/patches/city_slug/run", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Patches applied successfully", resp.Message)

	code, resp = e.do(t, http.MethodPost, "/api/admin/patches/run", admin, request_models.RunPatchesRequest{Names: []string{"nope"}})
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)

	code, resp = e.do(t, http.MethodPost, "/api/admin/patches/run", admin, nil)
	require.Equal(t, http.StatusOK, code)
	report := resp.Data.(map[string]any)
	assert.Equal(t, true, report["success"])
	assert.NotEmpty(t, report["steps"])
}

// readEvent returns the data line of the next SSE event.
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			if data != "" {
				return data
			}
			continue
		}
		if strings.HasPrefix(line, "data:") {
			data = strings.TrimPrefix(line, "data:")
		}
	}
}

func TestLiveReviews_SnapshotPerChange(t *testing.T) {
	e := newAPIEnv(t)
	srv := httptest.NewServer(e.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/cities/sidi-bou-said/reviews/live", nil)
	require.NoError(t, err)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	body := bufio.NewReader(res.Body)
	assert.Equal(t, "[]", readEvent(t, body))

	_, err = e.reviews.CreateReview(ctx, uuid.New(), "sidi_bou_said", request_models.CreateReviewRequest{Rating: 5, Comment: "Blue doors everywhere"})
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(readEvent(t, body)), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Blue doors everywhere", rows[0]["comment"])
}
