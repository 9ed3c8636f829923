package pipeline

// Ingredient is a single recipe ingredient with its quantity.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Nutrition holds the approximate nutritional breakdown of a recipe.
// Values are free-form strings as produced by the model (e.g. "350", "30g").
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// Recipe is a fully validated recipe as returned by the generation pipeline.
// All string fields are guaranteed non-nil after validation; slices are always
// present but may be empty.
type Recipe struct {
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	PrepTime           string       `json:"prep_time"`
	CookTime           string       `json:"cook_time"`
	Ingredients        []Ingredient `json:"ingredients"`
	Steps              []string     `json:"steps"`
	Nutrition          Nutrition    `json:"nutrition"`
	Tips               []string     `json:"tips"`
	ServingSuggestions []string     `json:"serving_suggestions"`
}

// IngredientSuggestion is the result of an ingredient-based generation: a few
// suggested dish names, one fully specified recipe for the best match, and any
// optional ingredients the user is missing.
type IngredientSuggestion struct {
	SuggestedDishes            []string `json:"suggested_dishes"`
	SelectedRecipe             Recipe   `json:"selected_recipe"`
	MissingOptionalIngredients []string `json:"missing_optional_ingredients"`
}

// ChatTurn is a single prior exchange in a chat conversation.
// Role is "user" or "assistant".
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
