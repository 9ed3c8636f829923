package pipeline

import (
	"context"
	"errors"
	"log"
)

// RefusalMessage is returned by Chat when the query is not cooking-related.
const RefusalMessage = "I can only assist with recipes and cooking-related questions."

// chatFailureMessage is returned by Chat when the provider call fails. Chat
// never surfaces a hard error to its caller.
const chatFailureMessage = "Sorry, I couldn't answer that right now. Please try again in a moment."

// retryBudget is the number of extra generation attempts allowed after the
// first one fails with malformed or invalid output.
const retryBudget = 1

// Provider is the boundary to the external text-generation service:
// prompt in, raw text out, or a transport/provider failure.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Pipeline turns free-form model output into validated recipe objects. It is
// stateless across invocations; every request runs as an independent unit of
// work against the shared read-only configuration.
type Pipeline struct {
	provider Provider
}

// NewPipeline creates a Pipeline backed by the given provider.
func NewPipeline(provider Provider) *Pipeline {
	return &Pipeline{provider: provider}
}

// GenerateRecipe generates a validated Recipe for a dish name.
func (p *Pipeline) GenerateRecipe(ctx context.Context, dishName string) (*Recipe, error) {
	sanitized := Sanitize(dishName)
	if sanitized == "" {
		return nil, invalidInput("dish_name is required")
	}

	var recipe *Recipe
	err := p.generate(ctx, func() string { return BuildRecipePrompt(sanitized) }, func(raw string) error {
		parsed, err := ParseRecipe(raw)
		if err != nil {
			return err
		}
		recipe = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GenerateFromIngredients suggests dishes for a list of available ingredients
// and returns one validated recipe for the best match.
func (p *Pipeline) GenerateFromIngredients(ctx context.Context, ingredients []string) (*IngredientSuggestion, error) {
	sanitized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if s := Sanitize(ing); s != "" {
			sanitized = append(sanitized, s)
		}
	}
	if len(sanitized) == 0 {
		return nil, invalidInput("at least one ingredient is required")
	}

	var suggestion *IngredientSuggestion
	err := p.generate(ctx, func() string { return BuildIngredientPrompt(sanitized) }, func(raw string) error {
		parsed, err := ParseIngredientSuggestion(raw)
		if err != nil {
			return err
		}
		suggestion = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suggestion, nil
}

// Chat answers a cooking-related chat message. It never fails outward:
// off-topic queries get the fixed refusal string without a provider call, and
// provider failures degrade to a generic message.
func (p *Pipeline) Chat(ctx context.Context, message string, history []ChatTurn) string {
	sanitized := Sanitize(message)
	if !IsCookingRelated(sanitized) {
		return RefusalMessage
	}

	reply, err := p.provider.Generate(ctx, BuildChatPrompt(sanitized, history))
	if err != nil {
		log.Printf("[Pipeline] chat provider call failed: %v", err)
		return chatFailureMessage
	}
	return reply
}

// generate runs the invoke → extract → validate loop with a bounded retry.
// The prompt is rebuilt identically on retry; only malformed or invalid
// output is retried, never provider failures.
func (p *Pipeline) generate(ctx context.Context, buildPrompt func() string, parse func(raw string) error) error {
	var lastErr error
	for attempt := 0; attempt <= retryBudget; attempt++ {
		raw, err := p.provider.Generate(ctx, buildPrompt())
		if err != nil {
			return providerFailure(err)
		}

		if err := parse(raw); err != nil {
			if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrValidationFailure) {
				log.Printf("[Pipeline] attempt %d/%d produced unusable output: %v", attempt+1, retryBudget+1, err)
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}
