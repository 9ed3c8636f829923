package api

import (
	"github.com/gin-gonic/gin"

	"github.com/platemind/backend/internal/middleware"
	"github.com/platemind/backend/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth        service.IAuthService
	Recipes     service.IRecipeService
	Images      service.IImageService
	Generator   service.RecipeGenerator
	RateLimiter *middleware.RateLimiter
}

// SetupAPI registers all /api/v1 routes on the router.
func SetupAPI(router *gin.Engine, svcs Services) {
	v1 := router.Group("/api/v1")
	{
		authHandler := NewAuthHandler(svcs.Auth)
		aiHandler := NewAIHandler(svcs.Generator, svcs.Recipes, svcs.Auth, svcs.RateLimiter)
		recipeHandler := NewRecipeHandler(svcs.Recipes, svcs.Images, svcs.Auth)

		authHandler.RegisterRoutes(v1)
		aiHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
	}
}
