package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platemind/backend/internal/middleware"
	"github.com/platemind/backend/internal/pipeline"
	"github.com/platemind/backend/internal/service"
)

// RecipeHandler handles saved-recipe requests
type RecipeHandler struct {
	recipes     service.IRecipeService
	images      service.IImageService
	authService middleware.TokenValidator
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes service.IRecipeService, images service.IImageService, authService middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		images:      images,
		authService: authService,
	}
}

// RegisterRoutes registers the saved-recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.POST("", h.SaveRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/image", h.GenerateImage)
	}
}

// SaveRecipe persists a generated recipe for the authenticated user
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe is required"})
		return
	}
	if req.Recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe title is required"})
		return
	}

	userID := mustUserID(c)
	saved, err := h.recipes.SaveRecipe(c.Request.Context(), userID, &req.Recipe)
	if err != nil {
		log.Printf("[API] failed to save recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListRecipes lists the authenticated user's saved recipes, optionally
// ordered by similarity to the q query parameter.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID := mustUserID(c)
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		log.Printf("[API] failed to list recipes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	for i := range recipes {
		recipes[i].ImageURL = h.resolveImageURL(c, recipes[i].ImageURL)
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe fetches a single saved recipe owned by the authenticated user
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := mustUserID(c)
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		log.Printf("[API] failed to fetch recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	recipe.ImageURL = h.resolveImageURL(c, recipe.ImageURL)
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a saved recipe owned by the authenticated user
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := mustUserID(c)
	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		log.Printf("[API] failed to delete recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted", "id": id.String()})
}

// GenerateImage generates and attaches an image to a saved recipe
func (h *RecipeHandler) GenerateImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image generation is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := mustUserID(c)
	saved, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		log.Printf("[API] failed to fetch recipe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	recipe := pipeline.Recipe(saved.Recipe)
	stored, err := h.images.GenerateRecipeImage(c.Request.Context(), &recipe)
	if err != nil {
		log.Printf("[API] image generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image generation failed"})
		return
	}

	if err := h.recipes.SetImageURL(c.Request.Context(), userID, id, stored); err != nil {
		log.Printf("[API] failed to store image url: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": h.resolveImageURL(c, stored)})
}

// resolveImageURL converts a stored image reference (an S3 object key) into a
// fetchable URL. Resolution failures degrade to the stored value.
func (h *RecipeHandler) resolveImageURL(c *gin.Context, stored string) string {
	if h.images == nil || stored == "" {
		return stored
	}
	resolved, err := h.images.ResolveImageURL(c.Request.Context(), stored)
	if err != nil {
		log.Printf("[API] failed to presign image url: %v", err)
		return stored
	}
	return resolved
}

// mustUserID reads the user id placed in the context by AuthMiddleware.
func mustUserID(c *gin.Context) uuid.UUID {
	v, _ := c.Get("user_id")
	id, _ := v.(uuid.UUID)
	return id
}
