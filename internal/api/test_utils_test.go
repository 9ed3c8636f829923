package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platemind/backend/internal/middleware"
	"github.com/platemind/backend/internal/models"
	"github.com/platemind/backend/internal/pipeline"
	"github.com/platemind/backend/internal/service"
)

const testJWTSecret = "test-secret"

// validRecipeJSON is a complete provider response that passes validation.
const validRecipeJSON = `{
	"title": "Test Dish",
	"description": "a dish for tests",
	"prep_time": "5 minutes",
	"cook_time": "10 minutes",
	"ingredients": [{"name": "salt", "quantity": "1 tsp"}],
	"steps": ["season", "cook"],
	"nutrition": {"calories": "100", "protein": "2g", "carbs": "10g", "fat": "3g"},
	"tips": [],
	"serving_suggestions": []
}`

const validSuggestionJSON = `{
	"suggested_dishes": ["Test Dish"],
	"selected_recipe": ` + validRecipeJSON + `,
	"missing_optional_ingredients": ["pepper"]
}`

// stubProvider returns canned responses and records the prompts it saw.
type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// stubImageService returns a fixed object key and signed URL without
// touching any backend.
type stubImageService struct {
	stored   string
	resolved string
	err      error
}

func (s *stubImageService) GenerateRecipeImage(ctx context.Context, recipe *pipeline.Recipe) (string, error) {
	return s.stored, s.err
}

func (s *stubImageService) ResolveImageURL(ctx context.Context, stored string) (string, error) {
	if s.resolved != "" {
		return s.resolved, nil
	}
	return stored, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	createSaved := `CREATE TABLE saved_recipes (
        id TEXT PRIMARY KEY,
        created_at DATETIME,
        updated_at DATETIME,
        deleted_at DATETIME,
        user_id TEXT NOT NULL,
        title TEXT NOT NULL,
        image_url TEXT,
        recipe TEXT NOT NULL,
        embedding TEXT
    );`
	require.NoError(t, db.Exec(createSaved).Error)
	return db
}

// setupTestRouter wires the full API against sqlite and the given stubs.
func setupTestRouter(t *testing.T, provider pipeline.Provider, images service.IImageService) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	authService := service.NewAuthService(db, testJWTSecret, "")
	recipeService := service.NewRecipeService(db, nil)

	var limiter *middleware.RateLimiter // no redis in unit tests

	router := gin.New()
	SetupAPI(router, Services{
		Auth:        authService,
		Recipes:     recipeService,
		Images:      images,
		Generator:   pipeline.NewPipeline(provider),
		RateLimiter: limiter,
	})
	return router, db
}

// registerTestUser creates a user through the API and returns a session token.
func registerTestUser(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// doJSON performs a JSON request against the router, optionally authenticated.
func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
