package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecipe() Recipe {
	return Recipe{
		Title:       "Chicken Tikka Masala",
		Description: "Creamy spiced tomato curry",
		PrepTime:    "15 minutes",
		CookTime:    "30 minutes",
		Ingredients: []Ingredient{
			{Name: "chicken", Quantity: "500g"},
			{Name: "yogurt", Quantity: "1 cup"},
		},
		Steps: []string{"Marinate chicken", "Simmer in sauce"},
		Nutrition: Nutrition{
			Calories: "350",
			Protein:  "30g",
			Carbs:    "10g",
			Fat:      "15g",
		},
		Tips:               []string{"Use thigh meat"},
		ServingSuggestions: []string{"Serve with naan"},
	}
}

func TestParseRecipe_RoundTrip(t *testing.T) {
	want := sampleRecipe()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := ParseRecipe(string(data))
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestParseRecipe_StripsSurroundingProse(t *testing.T) {
	want := sampleRecipe()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	raw := "Here is your recipe:\n```json\n" + string(data) + "\n```\nEnjoy!"
	got, err := ParseRecipe(raw)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Len(t, got.Ingredients, 2)
}

func TestParseRecipe_NoJSON(t *testing.T) {
	_, err := ParseRecipe("Sorry, I cannot help with that.")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "no JSON found")
}

func TestParseRecipe_BrokenJSON(t *testing.T) {
	_, err := ParseRecipe(`{"title": "Soup", "description": }`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseRecipe_MissingFieldNamesFirstProblem(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m map[string]interface{})
		wantErr string
	}{
		{
			name:    "missing title",
			mutate:  func(m map[string]interface{}) { delete(m, "title") },
			wantErr: `"title"`,
		},
		{
			name:    "missing ingredients",
			mutate:  func(m map[string]interface{}) { delete(m, "ingredients") },
			wantErr: `"ingredients"`,
		},
		{
			name:    "missing nutrition",
			mutate:  func(m map[string]interface{}) { delete(m, "nutrition") },
			wantErr: `"nutrition"`,
		},
		{
			name: "missing nutrition fat",
			mutate: func(m map[string]interface{}) {
				delete(m["nutrition"].(map[string]interface{}), "fat")
			},
			wantErr: `"nutrition.fat"`,
		},
		{
			name: "ingredient without quantity",
			mutate: func(m map[string]interface{}) {
				m["ingredients"] = []interface{}{map[string]interface{}{"name": "chicken"}}
			},
			wantErr: `"ingredients[0].quantity"`,
		},
		{
			name:    "missing tips",
			mutate:  func(m map[string]interface{}) { delete(m, "tips") },
			wantErr: `"tips"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(sampleRecipe())
			require.NoError(t, err)
			var m map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &m))
			tt.mutate(m)
			mutated, err := json.Marshal(m)
			require.NoError(t, err)

			_, err = ParseRecipe(string(mutated))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailure)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseRecipe_TypeMismatch(t *testing.T) {
	data, err := json.Marshal(sampleRecipe())
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	m["steps"] = "not a list"
	mutated, err := json.Marshal(m)
	require.NoError(t, err)

	_, err = ParseRecipe(string(mutated))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailure)
	assert.Contains(t, err.Error(), "steps")
}

func TestParseRecipe_EmptySequencesAllowed(t *testing.T) {
	recipe := sampleRecipe()
	recipe.Tips = []string{}
	recipe.ServingSuggestions = []string{}
	data, err := json.Marshal(recipe)
	require.NoError(t, err)

	got, err := ParseRecipe(string(data))
	require.NoError(t, err)
	assert.Empty(t, got.Tips)
	assert.Empty(t, got.ServingSuggestions)
}

func TestParseIngredientSuggestion(t *testing.T) {
	suggestion := IngredientSuggestion{
		SuggestedDishes:            []string{"Chicken Biryani", "Butter Chicken", "Chicken Korma"},
		SelectedRecipe:             sampleRecipe(),
		MissingOptionalIngredients: []string{"saffron"},
	}
	data, err := json.Marshal(suggestion)
	require.NoError(t, err)

	got, err := ParseIngredientSuggestion(string(data))
	require.NoError(t, err)
	assert.Equal(t, suggestion, *got)
}

func TestParseIngredientSuggestion_Invalid(t *testing.T) {
	t.Run("empty suggested dishes", func(t *testing.T) {
		raw := `{"suggested_dishes": [], "selected_recipe": {}, "missing_optional_ingredients": []}`
		_, err := ParseIngredientSuggestion(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailure)
		assert.Contains(t, err.Error(), "suggested_dishes")
	})

	t.Run("missing selected recipe", func(t *testing.T) {
		raw := `{"suggested_dishes": ["Soup"], "missing_optional_ingredients": []}`
		_, err := ParseIngredientSuggestion(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailure)
		assert.Contains(t, err.Error(), "selected_recipe")
	})

	t.Run("invalid nested recipe names qualified field", func(t *testing.T) {
		raw := `{"suggested_dishes": ["Soup"], "selected_recipe": {"description": "x"}, "missing_optional_ingredients": []}`
		_, err := ParseIngredientSuggestion(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailure)
		assert.Contains(t, err.Error(), "selected_recipe.title")
	})
}
