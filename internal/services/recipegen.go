package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

const recipeSystemPrompt = `You are a culinary assistant. Given a list of available ingredients, suggest up to 3 recipes that use them. Assume common staples are always available: oil, salt, pepper, sugar, flour, water, pasta, rice. Respond with JSON only, no markdown, in this shape:
{"recipes": [{"name": "", "description": "", "estimated_time": "", "difficulty": "Easy|Medium|Hard", "ingredients": [], "steps": []}]}`

var ErrEmptyGeneration = errors.New("model returned no recipes")

// RecipeGenerator produces recipe suggestions from ingredient names via
// an OpenAI-compatible chat model.
type RecipeGenerator struct {
	llm llms.Model
}

// NewRecipeGenerator creates a generator bound to the given model. An
// empty API key returns an error so callers can fall back to running
// without generation.
func NewRecipeGenerator(apiKey, model string) (*RecipeGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &RecipeGenerator{llm: llm}, nil
}

// GenerateRecipes asks the model for recipes using the given ingredient
// names. The result carries the AI source marker and fresh IDs.
func (g *RecipeGenerator) GenerateRecipes(ctx context.Context, ingredientNames []string) ([]models.Recipe, error) {
	if len(ingredientNames) == 0 {
		return nil, ErrEmptyGeneration
	}

	prompt := "Available ingredients: " + strings.Join(ingredientNames, ", ")

	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, recipeSystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}, llms.WithJSONMode())
	if err != nil {
		return nil, fmt.Errorf("generating recipes: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyGeneration
	}

	return parseGeneratedRecipes(resp.Choices[0].Content)
}

// generatedRecipePayload is the JSON shape requested from the model.
type generatedRecipePayload struct {
	Recipes []struct {
		Name          string   `json:"name"`
		Description   string   `json:"description"`
		EstimatedTime string   `json:"estimated_time"`
		Difficulty    string   `json:"difficulty"`
		Ingredients   []string `json:"ingredients"`
		Steps         []string `json:"steps"`
	} `json:"recipes"`
}

// parseGeneratedRecipes decodes model output into recipes. Models
// sometimes wrap JSON in markdown fences or add prose around it, so the
// payload is located rather than decoded directly.
func parseGeneratedRecipes(content string) ([]models.Recipe, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in output", ErrEmptyGeneration)
	}

	var payload generatedRecipePayload
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decoding generated recipes: %w", err)
	}
	if len(payload.Recipes) == 0 {
		return nil, ErrEmptyGeneration
	}

	limit := len(payload.Recipes)
	if limit > 3 {
		limit = 3
	}

	recipes := make([]models.Recipe, 0, limit)
	for _, r := range payload.Recipes[:limit] {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		difficulty := models.Difficulty(r.Difficulty)
		if !difficulty.Valid() {
			difficulty = models.DifficultyMedium
		}
		recipes = append(recipes, models.Recipe{
			ID:            uuid.NewString(),
			Name:          r.Name,
			Description:   r.Description,
			EstimatedTime: r.EstimatedTime,
			Difficulty:    difficulty,
			Ingredients:   r.Ingredients,
			Steps:         r.Steps,
			Source:        models.RecipeSourceAIGenerated,
		})
	}
	if len(recipes) == 0 {
		return nil, ErrEmptyGeneration
	}
	return recipes, nil
}
