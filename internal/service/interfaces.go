package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/platemind/backend/internal/models"
	"github.com/platemind/backend/internal/pipeline"
	"github.com/platemind/backend/internal/types"
)

// RecipeGenerator is the generation pipeline as consumed by HTTP handlers.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, dishName string) (*pipeline.Recipe, error)
	GenerateFromIngredients(ctx context.Context, ingredients []string) (*pipeline.IngredientSuggestion, error)
	Chat(ctx context.Context, message string, history []pipeline.ChatTurn) string
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(name, email, password string) (string, *models.User, error)
	Login(email, password string) (string, *models.User, error)
	LoginWithGoogle(ctx context.Context, idToken string) (string, *models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for saved-recipe operations
type IRecipeService interface {
	SaveRecipe(ctx context.Context, userID uuid.UUID, recipe *pipeline.Recipe) (*models.SavedRecipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, search string) ([]models.SavedRecipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	SetImageURL(ctx context.Context, userID, id uuid.UUID, imageURL string) error
	GetCachedRecipe(ctx context.Context, dishName string) (*pipeline.Recipe, error)
	CacheRecipe(ctx context.Context, dishName string, recipe *pipeline.Recipe) error
}

// IImageService defines the interface for recipe image generation
type IImageService interface {
	GenerateRecipeImage(ctx context.Context, recipe *pipeline.Recipe) (string, error)
	ResolveImageURL(ctx context.Context, stored string) (string, error)
}

var (
	_ RecipeGenerator = (*pipeline.Pipeline)(nil)
	_ IAuthService    = (*AuthService)(nil)
	_ IRecipeService  = (*RecipeService)(nil)
	_ IImageService   = (*ImageService)(nil)
)

// AIService must satisfy the pipeline's provider boundary.
var _ pipeline.Provider = (*AIService)(nil)
