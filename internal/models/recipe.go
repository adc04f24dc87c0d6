package models

// RecipeSource distinguishes statically authored recipes from
// AI-generated ones. Exactly one source is authoritative at a time.
type RecipeSource string

const (
	RecipeSourceRuleBased   RecipeSource = "rule_based"
	RecipeSourceAIGenerated RecipeSource = "ai_generated"
)

// Difficulty is the closed difficulty scale used by both recipe sources.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Recipe is a suggestion shown to the user. Rule-based recipes carry
// category tokens as ingredients; generated recipes carry free-text
// ingredient names.
type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	EstimatedTime string       `json:"estimated_time"`
	Difficulty    Difficulty   `json:"difficulty"`
	Ingredients   []string     `json:"ingredients"`
	Steps         []string     `json:"steps"`
	ImageURL      string       `json:"image_url,omitempty"`
	Source        RecipeSource `json:"source"`
}

// RecipeSet is the currently displayed collection: either the rule-based
// derivation or the last successful AI generation, never a merge.
type RecipeSet struct {
	Source  RecipeSource `json:"source"`
	Recipes []Recipe     `json:"recipes"`
}

// CookRequest is the request body for cooking a recipe
type CookRequest struct {
	RecipeName  string   `json:"recipe_name"`
	Ingredients []string `json:"ingredients"`
}

// CookResult reports the outcome of a cook action. ConsumedCount may be
// lower than the number of requested ingredients.
type CookResult struct {
	RecipeName     string `json:"recipe_name"`
	ConsumedCount  int    `json:"consumed_count"`
	RemainingItems int    `json:"remaining_items"`
	Message        string `json:"message"`
}
