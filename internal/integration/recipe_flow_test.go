package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platemind/backend/internal/pipeline"
	"github.com/platemind/backend/internal/service"
	"github.com/platemind/backend/internal/testdb"
)

type cannedProvider struct {
	response string
}

func (p *cannedProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.response, nil
}

const cannedRecipeJSON = `{
	"title": "Garlic Butter Pasta",
	"description": "quick weeknight pasta",
	"prep_time": "5 minutes",
	"cook_time": "15 minutes",
	"ingredients": [
		{"name": "pasta", "quantity": "200g"},
		{"name": "garlic", "quantity": "3 cloves"},
		{"name": "butter", "quantity": "2 tbsp"}
	],
	"steps": ["boil pasta", "melt butter with garlic", "toss together"],
	"nutrition": {"calories": "550", "protein": "14g", "carbs": "70g", "fat": "22g"},
	"tips": ["reserve pasta water"],
	"serving_suggestions": ["grated parmesan"]
}`

// Full generate-then-save flow against a real PostgreSQL with pgvector.
func TestRecipeFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	td := testdb.SetupTestDB(t)
	ctx := context.Background()

	authService := service.NewAuthService(td.DB, td.Config.JWTSecret, "")
	recipeService := service.NewRecipeService(td.DB, nil)
	gen := pipeline.NewPipeline(&cannedProvider{response: cannedRecipeJSON})

	_, user, err := authService.Register("Flow Tester", "flow@example.com", "password123")
	require.NoError(t, err)

	recipe, err := gen.GenerateRecipe(ctx, "garlic butter pasta")
	require.NoError(t, err)
	require.Equal(t, "Garlic Butter Pasta", recipe.Title)

	saved, err := recipeService.SaveRecipe(ctx, user.ID, recipe)
	require.NoError(t, err)

	// vector-ordered search must run the pgvector operator for real
	results, err := recipeService.ListRecipes(ctx, user.ID, "pasta dinner")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, saved.ID, results[0].ID)
	assert.Equal(t, "Garlic Butter Pasta", results[0].Recipe.Title)

	require.NoError(t, recipeService.DeleteRecipe(ctx, user.ID, saved.ID))
	results, err = recipeService.ListRecipes(ctx, user.ID, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}
