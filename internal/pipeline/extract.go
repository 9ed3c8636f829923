package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Wire structs mirror the documented provider schemas with pointer fields so
// that validation can distinguish a missing field from a zero value and name
// the first problem found.

type wireIngredient struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
}

type wireNutrition struct {
	Calories *string `json:"calories"`
	Protein  *string `json:"protein"`
	Carbs    *string `json:"carbs"`
	Fat      *string `json:"fat"`
}

type wireRecipe struct {
	Title              *string           `json:"title"`
	Description        *string           `json:"description"`
	PrepTime           *string           `json:"prep_time"`
	CookTime           *string           `json:"cook_time"`
	Ingredients        *[]wireIngredient `json:"ingredients"`
	Steps              *[]string         `json:"steps"`
	Nutrition          *wireNutrition    `json:"nutrition"`
	Tips               *[]string         `json:"tips"`
	ServingSuggestions *[]string         `json:"serving_suggestions"`
}

type wireSuggestion struct {
	SuggestedDishes            *[]string   `json:"suggested_dishes"`
	SelectedRecipe             *wireRecipe `json:"selected_recipe"`
	MissingOptionalIngredients *[]string   `json:"missing_optional_ingredients"`
}

// extractJSON locates the JSON object span in raw model output: a greedy match
// from the first '{' to the last '}'.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", malformedResponse("no JSON found in response", nil)
	}
	return raw[start : end+1], nil
}

// unmarshalSpan parses the extracted span into dst. Syntax errors map to
// MalformedResponse; type mismatches map to ValidationFailure naming the field.
func unmarshalSpan(span string, dst interface{}) error {
	if err := json.Unmarshal([]byte(span), dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "(root)"
			}
			return validationFailure(fmt.Sprintf("field %q: expected %s, got %s", field, typeErr.Type, typeErr.Value))
		}
		return malformedResponse(err.Error(), err)
	}
	return nil
}

// ParseRecipe extracts, parses and validates a Recipe from raw model output.
func ParseRecipe(raw string) (*Recipe, error) {
	span, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var w wireRecipe
	if err := unmarshalSpan(span, &w); err != nil {
		return nil, err
	}

	recipe, err := validateRecipe(&w, "")
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// ParseIngredientSuggestion extracts, parses and validates an
// IngredientSuggestion from raw model output.
func ParseIngredientSuggestion(raw string) (*IngredientSuggestion, error) {
	span, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var w wireSuggestion
	if err := unmarshalSpan(span, &w); err != nil {
		return nil, err
	}

	if w.SuggestedDishes == nil {
		return nil, validationFailure(`missing field "suggested_dishes"`)
	}
	if len(*w.SuggestedDishes) == 0 {
		return nil, validationFailure(`field "suggested_dishes" must not be empty`)
	}
	if w.SelectedRecipe == nil {
		return nil, validationFailure(`missing field "selected_recipe"`)
	}
	recipe, err := validateRecipe(w.SelectedRecipe, "selected_recipe.")
	if err != nil {
		return nil, err
	}
	if w.MissingOptionalIngredients == nil {
		return nil, validationFailure(`missing field "missing_optional_ingredients"`)
	}

	return &IngredientSuggestion{
		SuggestedDishes:            *w.SuggestedDishes,
		SelectedRecipe:             *recipe,
		MissingOptionalIngredients: *w.MissingOptionalIngredients,
	}, nil
}

// validateRecipe checks every required field of a parsed recipe and converts
// it to the immutable Recipe type. prefix qualifies field names in error
// details for nested recipes.
func validateRecipe(w *wireRecipe, prefix string) (*Recipe, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"title", w.Title},
		{"description", w.Description},
		{"prep_time", w.PrepTime},
		{"cook_time", w.CookTime},
	}
	for _, f := range required {
		if f.value == nil {
			return nil, validationFailure(fmt.Sprintf("missing field %q", prefix+f.name))
		}
	}

	if w.Ingredients == nil {
		return nil, validationFailure(fmt.Sprintf("missing field %q", prefix+"ingredients"))
	}
	ingredients := make([]Ingredient, 0, len(*w.Ingredients))
	for i, ing := range *w.Ingredients {
		if ing.Name == nil {
			return nil, validationFailure(fmt.Sprintf("missing field %q", fmt.Sprintf("%singredients[%d].name", prefix, i)))
		}
		if ing.Quantity == nil {
			return nil, validationFailure(fmt.Sprintf("missing field %q", fmt.Sprintf("%singredients[%d].quantity", prefix, i)))
		}
		ingredients = append(ingredients, Ingredient{Name: *ing.Name, Quantity: *ing.Quantity})
	}

	if w.Steps == nil {
		return nil, validationFailure(fmt.Sprintf("missing field %q", prefix+"steps"))
	}

	if w.Nutrition == nil {
		return nil, validationFailure(fmt.Sprintf("missing field %q", prefix+"nutrition"))
	}
	nutritionFields := []struct {
		name  string
		value *string
	}{
		{"nutrition.calories", w.Nutrition.Calories},
		{"nutrition.protein", w.Nutrition.Protein},
		{"nutrition.carbs", w.Nutrition.Carbs},
		{"nutrition.fat", w.Nutrition.Fat},
	}
	for _, f := range nutritionFields {
		if f.value == nil {
			return nil, validationFailure(fmt.Sprintf("missing field %q", prefix+f.name))
		}
	}

	if w.Tips == nil {
		return nil, validationFailure(fmt.Sprintf("missing field %q", prefix+"tips"))
	}
	if w.ServingSuggestions == nil {
		return nil, validationFailure(fmt.Sprintf("missing field %q", prefix+"serving_suggestions"))
	}

	return &Recipe{
		Title:       *w.Title,
		Description: *w.Description,
		PrepTime:    *w.PrepTime,
		CookTime:    *w.CookTime,
		Ingredients: ingredients,
		Steps:       *w.Steps,
		Nutrition: Nutrition{
			Calories: *w.Nutrition.Calories,
			Protein:  *w.Nutrition.Protein,
			Carbs:    *w.Nutrition.Carbs,
			Fat:      *w.Nutrition.Fat,
		},
		Tips:               *w.Tips,
		ServingSuggestions: *w.ServingSuggestions,
	}, nil
}
