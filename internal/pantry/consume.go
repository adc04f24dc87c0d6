package pantry

import (
	"strings"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

// ConsumeIngredients removes pantry products matched by a recipe's
// ingredient names. For each ingredient, in order, the first remaining
// product whose name contains the ingredient (or vice versa,
// case-insensitive) is removed; at most one product per ingredient,
// first match wins. Unmatched ingredients are skipped. Returns the
// remaining products and how many were removed.
//
// The bidirectional substring match is deliberately loose: generated
// ingredient names rarely match pantry names exactly ("Tomato" should
// consume "Tomatoes").
func ConsumeIngredients(products []models.Product, ingredients []string) ([]models.Product, int) {
	remaining := append([]models.Product(nil), products...)
	consumed := 0

	for _, ingredient := range ingredients {
		token := strings.ToLower(strings.TrimSpace(ingredient))
		if token == "" {
			continue
		}
		for i, p := range remaining {
			name := strings.ToLower(p.Name)
			if name == "" {
				continue
			}
			if strings.Contains(name, token) || strings.Contains(token, name) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				consumed++
				break
			}
		}
	}

	return remaining, consumed
}
