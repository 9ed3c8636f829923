package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platemind/backend/internal/models"
	"github.com/platemind/backend/internal/pipeline"
)

// generatedCacheTTL bounds how long a generated recipe is served from cache
// before a fresh provider call is made for the same dish name.
const generatedCacheTTL = time.Hour

// RecipeService persists saved recipes and caches generated ones.
type RecipeService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, redisClient *redis.Client) *RecipeService {
	return &RecipeService{
		db:    db,
		redis: redisClient,
	}
}

// SaveRecipe stores a validated recipe for a user.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, recipe *pipeline.Recipe) (*models.SavedRecipe, error) {
	saved := models.SavedRecipe{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     recipe.Title,
		Recipe:    models.RecipeJSON(*recipe),
		Embedding: GenerateEmbedding(recipe.Title + " " + recipe.Description),
	}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListRecipes returns a user's saved recipes, optionally ordered by search
// relevance. On postgres the embedding distance orders results; elsewhere a
// LIKE filter is used.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, search string) ([]models.SavedRecipe, error) {
	var recipes []models.SavedRecipe

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if search != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(title) LIKE ?", like)
		}
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe fetches a single saved recipe owned by the user.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a saved recipe owned by the user.
// Returns gorm.ErrRecordNotFound if the recipe does not exist.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	var recipe models.SavedRecipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&recipe).Error
}

// SetImageURL records the generated image URL on a saved recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, userID, id uuid.UUID, imageURL string) error {
	return s.db.WithContext(ctx).
		Model(&models.SavedRecipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("image_url", imageURL).Error
}

func generatedCacheKey(dishName string) string {
	return fmt.Sprintf("recipe:generated:%s", strings.ToLower(strings.TrimSpace(dishName)))
}

// GetCachedRecipe returns a previously generated recipe for the dish name, or
// nil on a cache miss. Cache errors are reported so callers can fall through
// to generation.
func (s *RecipeService) GetCachedRecipe(ctx context.Context, dishName string) (*pipeline.Recipe, error) {
	if s.redis == nil {
		return nil, nil
	}

	data, err := s.redis.Get(ctx, generatedCacheKey(dishName)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var recipe pipeline.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CacheRecipe stores a generated recipe for reuse by later requests for the
// same dish name.
func (s *RecipeService) CacheRecipe(ctx context.Context, dishName string, recipe *pipeline.Recipe) error {
	if s.redis == nil {
		return nil
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, generatedCacheKey(dishName), data, generatedCacheTTL).Err()
}
