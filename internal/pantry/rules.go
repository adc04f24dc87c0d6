package pantry

import (
	"github.com/foxxcyber/pantry-chef/internal/models"
)

// recipeRule binds a category co-occurrence requirement to one static
// recipe. Rules are evaluated in declaration order and fire
// independently of each other.
type recipeRule struct {
	requires []models.Category
	recipe   models.Recipe
}

var recipeRules = []recipeRule{
	{
		requires: []models.Category{models.CategoryDairy, models.CategoryVegetables},
		recipe: models.Recipe{
			ID:            "rule-caprese-salad",
			Name:          "Caprese Salad",
			Description:   "Fresh and light, with mozzarella and ripe tomatoes drizzled in olive oil.",
			EstimatedTime: "10 min",
			Difficulty:    models.DifficultyEasy,
			Ingredients:   []string{"Dairy", "Vegetables"},
			Steps: []string{
				"Slice the tomatoes and mozzarella into even rounds.",
				"Alternate slices on a plate and tuck in fresh basil leaves.",
				"Season with salt and finish with a drizzle of olive oil.",
			},
		},
	},
	{
		requires: []models.Category{models.CategoryMeat, models.CategoryVegetables},
		recipe: models.Recipe{
			ID:            "rule-roast-and-vegetables",
			Name:          "Roast Chicken with Vegetables",
			Description:   "A hearty main of roasted protein with seasonal vegetables.",
			EstimatedTime: "30 min",
			Difficulty:    models.DifficultyMedium,
			Ingredients:   []string{"Meat", "Vegetables"},
			Steps: []string{
				"Season the meat and sear it in a hot pan.",
				"Add chopped vegetables and a splash of water.",
				"Roast until the meat is cooked through and the vegetables are tender.",
			},
		},
	},
	{
		requires: []models.Category{models.CategoryGrains, models.CategoryVegetables},
		recipe: models.Recipe{
			ID:            "rule-pasta-primavera",
			Name:          "Pasta Primavera",
			Description:   "A colorful first course with pan-tossed fresh vegetables.",
			EstimatedTime: "20 min",
			Difficulty:    models.DifficultyEasy,
			Ingredients:   []string{"Grains", "Vegetables"},
			Steps: []string{
				"Cook the pasta or grains in salted boiling water.",
				"Saute the vegetables in olive oil until just tender.",
				"Toss everything together and adjust the seasoning.",
			},
		},
	},
	{
		requires: []models.Category{models.CategoryFruit, models.CategoryDairy},
		recipe: models.Recipe{
			ID:            "rule-energy-smoothie",
			Name:          "Energy Smoothie",
			Description:   "A nourishing blend of fruit and yogurt to start the day.",
			EstimatedTime: "5 min",
			Difficulty:    models.DifficultyEasy,
			Ingredients:   []string{"Fruit", "Dairy"},
			Steps: []string{
				"Peel and chop the fruit.",
				"Blend with yogurt or milk until smooth.",
				"Serve cold.",
			},
		},
	},
	{
		requires: []models.Category{models.CategoryFruit},
		recipe: models.Recipe{
			ID:            "rule-fruit-salad",
			Name:          "Fruit Salad",
			Description:   "A fresh, vitamin-packed dessert of seasonal fruit.",
			EstimatedTime: "15 min",
			Difficulty:    models.DifficultyEasy,
			Ingredients:   []string{"Fruit"},
			Steps: []string{
				"Wash and dice the fruit into bite-sized pieces.",
				"Combine in a bowl with a squeeze of citrus.",
				"Chill before serving.",
			},
		},
	},
}

// SuggestRecipes derives the rule-based recipe list from the inventory's
// distinct category set. Expiration status is deliberately ignored:
// expired items still count toward a suggestion, since deleting them is
// a separate user action. The result may be empty.
func SuggestRecipes(products []models.Product) []models.Recipe {
	present := make(map[models.Category]bool, len(products))
	for _, p := range products {
		present[p.Category] = true
	}

	var recipes []models.Recipe
	for _, rule := range recipeRules {
		satisfied := true
		for _, c := range rule.requires {
			if !present[c] {
				satisfied = false
				break
			}
		}
		if !satisfied {
			continue
		}
		r := rule.recipe
		r.Ingredients = append([]string(nil), rule.recipe.Ingredients...)
		r.Steps = append([]string(nil), rule.recipe.Steps...)
		r.Source = models.RecipeSourceRuleBased
		recipes = append(recipes, r)
	}
	return recipes
}
