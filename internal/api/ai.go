package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemind/backend/internal/middleware"
	"github.com/platemind/backend/internal/pipeline"
	"github.com/platemind/backend/internal/service"
)

// AIHandler handles recipe generation and cooking chat requests
type AIHandler struct {
	generator   service.RecipeGenerator
	recipes     service.IRecipeService
	authService middleware.TokenValidator
	rateLimiter *middleware.RateLimiter
}

// NewAIHandler creates a new AIHandler instance
func NewAIHandler(generator service.RecipeGenerator, recipes service.IRecipeService, authService middleware.TokenValidator, rateLimiter *middleware.RateLimiter) *AIHandler {
	return &AIHandler{
		generator:   generator,
		recipes:     recipes,
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the AI generation routes
func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	ai.Use(middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		ai.Use(h.rateLimiter.Middleware())
	}
	{
		ai.POST("/generate-recipe", h.GenerateRecipe)
		ai.POST("/generate-from-ingredients", h.GenerateFromIngredients)
		ai.POST("/chat", h.Chat)
	}
}

// GenerateRecipe handles dish-name recipe generation requests
func (h *AIHandler) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dish_name is required"})
		return
	}

	if cached, err := h.recipes.GetCachedRecipe(c.Request.Context(), req.DishName); err == nil && cached != nil {
		c.JSON(http.StatusOK, gin.H{"recipe": cached, "cached": true})
		return
	}

	recipe, err := h.generator.GenerateRecipe(c.Request.Context(), req.DishName)
	if err != nil {
		status, msg := generationErrorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if err := h.recipes.CacheRecipe(c.Request.Context(), req.DishName, recipe); err != nil {
		log.Printf("[API] failed to cache generated recipe: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe, "cached": false})
}

// GenerateFromIngredients handles ingredient-based suggestion requests
func (h *AIHandler) GenerateFromIngredients(c *gin.Context) {
	var req IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients is required"})
		return
	}

	suggestion, err := h.generator.GenerateFromIngredients(c.Request.Context(), req.Ingredients)
	if err != nil {
		status, msg := generationErrorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

// Chat handles cooking chat requests. Chat never fails outward: the
// pipeline degrades to a canned message on any provider trouble.
func (h *AIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply := h.generator.Chat(c.Request.Context(), req.Message, req.Context)
	c.JSON(http.StatusOK, ChatResponse{Response: reply})
}

// generationErrorResponse maps pipeline failures to HTTP responses
// without leaking provider internals to the client.
func generationErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		var perr *pipeline.Error
		if errors.As(err, &perr) && perr.Detail != "" {
			return http.StatusBadRequest, perr.Detail
		}
		return http.StatusBadRequest, "invalid input"
	default:
		log.Printf("[API] recipe generation failed: %v", err)
		return http.StatusBadGateway, "recipe generation is temporarily unavailable, please try again"
	}
}
