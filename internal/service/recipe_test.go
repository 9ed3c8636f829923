package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platemind/backend/internal/pipeline"
)

func setupRecipeDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

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

func testRecipe(title string) *pipeline.Recipe {
	return &pipeline.Recipe{
		Title:              title,
		Description:        "test description",
		PrepTime:           "10 minutes",
		CookTime:           "20 minutes",
		Ingredients:        []pipeline.Ingredient{{Name: "flour", Quantity: "2 cups"}},
		Steps:              []string{"mix", "bake"},
		Nutrition:          pipeline.Nutrition{Calories: "200", Protein: "5g", Carbs: "30g", Fat: "4g"},
		Tips:               []string{},
		ServingSuggestions: []string{},
	}
}

func TestRecipeService_SaveAndGet(t *testing.T) {
	db := setupRecipeDB(t)
	svc := NewRecipeService(db, nil)
	userID := uuid.New()
	ctx := context.Background()

	saved, err := svc.SaveRecipe(ctx, userID, testRecipe("Banana Bread"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, "Banana Bread", saved.Title)

	got, err := svc.GetRecipe(ctx, userID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Banana Bread", got.Recipe.Title)
	assert.Len(t, got.Recipe.Ingredients, 1)

	t.Run("other user cannot fetch it", func(t *testing.T) {
		_, err := svc.GetRecipe(ctx, uuid.New(), saved.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRecipeService_ListAndSearch(t *testing.T) {
	db := setupRecipeDB(t)
	svc := NewRecipeService(db, nil)
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.SaveRecipe(ctx, userID, testRecipe("Banana Bread"))
	require.NoError(t, err)
	_, err = svc.SaveRecipe(ctx, userID, testRecipe("Tomato Soup"))
	require.NoError(t, err)
	_, err = svc.SaveRecipe(ctx, uuid.New(), testRecipe("Someone Else's Pie"))
	require.NoError(t, err)

	all, err := svc.ListRecipes(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.ListRecipes(ctx, userID, "banana")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Banana Bread", matched[0].Title)
}

func TestRecipeService_Delete(t *testing.T) {
	db := setupRecipeDB(t)
	svc := NewRecipeService(db, nil)
	userID := uuid.New()
	ctx := context.Background()

	saved, err := svc.SaveRecipe(ctx, userID, testRecipe("Banana Bread"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, userID, saved.ID))

	_, err = svc.GetRecipe(ctx, userID, saved.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	t.Run("deleting again reports not found", func(t *testing.T) {
		err := svc.DeleteRecipe(ctx, userID, saved.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRecipeService_SetImageURL(t *testing.T) {
	db := setupRecipeDB(t)
	svc := NewRecipeService(db, nil)
	userID := uuid.New()
	ctx := context.Background()

	saved, err := svc.SaveRecipe(ctx, userID, testRecipe("Banana Bread"))
	require.NoError(t, err)

	require.NoError(t, svc.SetImageURL(ctx, userID, saved.ID, "https://example.com/img.png"))

	got, err := svc.GetRecipe(ctx, userID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img.png", got.ImageURL)
}

func TestRecipeService_CacheWithoutRedis(t *testing.T) {
	svc := NewRecipeService(setupRecipeDB(t), nil)
	ctx := context.Background()

	// Without redis the cache is a no-op: writes succeed, reads miss.
	require.NoError(t, svc.CacheRecipe(ctx, "Banana Bread", testRecipe("Banana Bread")))

	got, err := svc.GetCachedRecipe(ctx, "Banana Bread")
	require.NoError(t, err)
	assert.Nil(t, got)
}
