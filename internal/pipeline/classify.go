package pipeline

import "strings"

// cookingKeywords is the fixed vocabulary used to decide whether a chat query
// is cooking-related. This is a cheap heuristic gate to avoid spending model
// calls on obviously off-topic queries, not a security control; false
// positives and negatives are accepted.
var cookingKeywords = []string{
	// Core cooking actions
	"recipe", "cook", "bake", "fry", "grill", "roast", "boil", "steam",
	"saute", "simmer", "marinate", "season", "whisk", "knead",
	"prepare", "serve", "blend", "chop", "slice", "dice",

	// General food terms
	"ingredient", "dish", "meal", "food", "cuisine", "flavor",
	"taste", "nutrition", "kitchen", "chef", "culinary",
	"spice", "sauce", "garnish",

	// Meal types
	"breakfast", "lunch", "dinner", "snack", "appetizer", "dessert",

	// Staples and proteins
	"vegetable", "meat", "chicken", "beef", "lamb", "pork", "fish",
	"seafood", "shrimp", "egg", "tofu", "paneer",

	// Grains and carbs
	"pasta", "rice", "noodle", "bread", "flour", "roti", "naan", "tortilla",

	// Produce and dairy
	"tomato", "onion", "garlic", "potato", "mushroom", "fruit",
	"milk", "butter", "cheese", "yogurt",

	// Dishes
	"biryani", "curry", "tikka", "masala", "pizza", "burger", "sandwich",
	"taco", "soup", "salad", "stew", "sushi", "cake", "cookie",

	// Common phrases
	"how to make", "how to cook",
}

// IsCookingRelated reports whether text contains at least one cooking-domain
// vocabulary term. Matching is case-insensitive substring matching.
func IsCookingRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range cookingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
