package pipeline

import (
	"fmt"
	"strings"
)

// maxContextTurns is the number of trailing conversation turns kept when
// building a chat prompt. Older turns are dropped silently.
const maxContextTurns = 3

const recipePromptTemplate = `You are a professional chef AI assistant. Generate a detailed recipe for: %s

CRITICAL RULES:
1. Output ONLY valid JSON, no explanations or text outside JSON
2. Follow the exact schema below
3. Never include instructions or commentary
4. Refuse non-cooking topics

JSON Schema:
{
  "title": "string (dish name)",
  "description": "string (brief description)",
  "prep_time": "string (e.g., '15 minutes')",
  "cook_time": "string (e.g., '30 minutes')",
  "ingredients": [
    {"name": "string", "quantity": "string"}
  ],
  "steps": ["string (step-by-step instructions)"],
  "nutrition": {
    "calories": "string",
    "protein": "string",
    "carbs": "string",
    "fat": "string"
  },
  "tips": ["string (cooking tips)"],
  "serving_suggestions": ["string"]
}

Generate the recipe now as JSON only:`

const ingredientPromptTemplate = `You are a professional chef AI. Suggest dishes using these ingredients: %s

CRITICAL RULES:
1. Output ONLY valid JSON
2. Suggest 3-5 dishes
3. Include one complete recipe for the best match

JSON Schema:
{
  "suggested_dishes": ["string (dish names)"],
  "selected_recipe": {
    "title": "string",
    "description": "string",
    "prep_time": "string",
    "cook_time": "string",
    "ingredients": [{"name": "string", "quantity": "string"}],
    "steps": ["string"],
    "nutrition": {"calories": "string", "protein": "string", "carbs": "string", "fat": "string"},
    "tips": ["string"],
    "serving_suggestions": ["string"]
  },
  "missing_optional_ingredients": ["string"]
}

Generate JSON only:`

const chatPromptTemplate = `You are a cooking assistant. Answer ONLY cooking-related questions.

Rules:
- Stay on topic (recipes, cooking, ingredients, nutrition)
- Be helpful and concise
- If asked about non-cooking topics, politely decline

%s

User: %s
Assistant:`

// BuildRecipePrompt builds the provider prompt for a dish-name request.
// Construction is pure and deterministic.
func BuildRecipePrompt(dishName string) string {
	return fmt.Sprintf(recipePromptTemplate, dishName)
}

// BuildIngredientPrompt builds the provider prompt for an ingredient-list request.
func BuildIngredientPrompt(ingredients []string) string {
	return fmt.Sprintf(ingredientPromptTemplate, strings.Join(ingredients, ", "))
}

// BuildChatPrompt builds the provider prompt for a chat request, embedding up
// to the last maxContextTurns turns of conversation context.
func BuildChatPrompt(message string, context []ChatTurn) string {
	if len(context) > maxContextTurns {
		context = context[len(context)-maxContextTurns:]
	}

	lines := make([]string, 0, len(context))
	for _, turn := range context {
		role := "Assistant"
		if turn.Role == "user" {
			role = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, turn.Content))
	}

	return fmt.Sprintf(chatPromptTemplate, strings.Join(lines, "\n"), message)
}
