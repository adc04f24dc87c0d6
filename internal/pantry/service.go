package pantry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foxxcyber/pantry-chef/internal/models"
	"github.com/foxxcyber/pantry-chef/internal/monitoring"
)

// ProductStore persists a user's pantry as a whole. The boolean result
// of GetProducts distinguishes "never stored" from an empty list.
type ProductStore interface {
	GetProducts(ctx context.Context, key string) ([]models.Product, bool, error)
	SetProducts(ctx context.Context, key string, products []models.Product) error
}

// StorageKey returns the persistence key for a user's pantry.
func StorageKey(userID int) string {
	return fmt.Sprintf("pantry_products_%d", userID)
}

// Service implements the pantry operations on top of a ProductStore.
// now is injectable so tests can pin the clock.
type Service struct {
	store     ProductStore
	suggester *Suggester
	now       func() time.Time
}

func NewService(store ProductStore, suggester *Suggester) *Service {
	return &Service{
		store:     store,
		suggester: suggester,
		now:       time.Now,
	}
}

// SampleProducts builds the starter pantry written for a user on first
// access, with expiration dates relative to now.
func SampleProducts(now time.Time) []models.Product {
	day := func(offset int) models.Date {
		return models.DateOf(now.AddDate(0, 0, offset))
	}
	samples := []struct {
		name     string
		category models.Category
		expires  models.Date
	}{
		{"Fresh Milk", models.CategoryDairy, day(2)},
		{"Tomatoes", models.CategoryVegetables, day(4)},
		{"Golden Apples", models.CategoryFruit, day(7)},
		{"Chicken Breast", models.CategoryMeat, day(-1)},
		{"Whole Wheat Pasta", models.CategoryGrains, day(90)},
		{"Greek Yogurt", models.CategoryDairy, day(5)},
		{"Carrots", models.CategoryVegetables, day(10)},
		{"Orange Juice", models.CategoryBeverages, day(1)},
	}

	products := make([]models.Product, 0, len(samples))
	for _, s := range samples {
		products = append(products, models.Product{
			ID:             uuid.NewString(),
			Name:           s.name,
			Category:       s.category,
			ExpirationDate: s.expires,
			CreatedAt:      now,
		})
	}
	return products
}

// load returns the user's products, seeding the starter pantry on first
// access. An empty stored list stays empty.
func (s *Service) load(ctx context.Context, userID int) ([]models.Product, error) {
	key := StorageKey(userID)
	products, found, err := s.store.GetProducts(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading pantry: %w", err)
	}
	if !found {
		products = SampleProducts(s.now())
		if err := s.store.SetProducts(ctx, key, products); err != nil {
			return nil, fmt.Errorf("seeding pantry: %w", err)
		}
	}
	return products, nil
}

func (s *Service) save(ctx context.Context, userID int, products []models.Product) error {
	if err := s.store.SetProducts(ctx, StorageKey(userID), products); err != nil {
		return fmt.Errorf("saving pantry: %w", err)
	}
	s.suggester.InventoryChanged(userID, products)
	return nil
}

// annotate attaches the freshness classification to each product.
// Products that cannot be classified are surfaced as errors so a bad
// stored record is noticed rather than silently mislabeled.
func (s *Service) annotate(products []models.Product) ([]models.ProductWithFreshness, error) {
	now := s.now()
	out := make([]models.ProductWithFreshness, 0, len(products))
	for _, p := range products {
		f, err := ClassifyFreshness(p.Category, p.ExpirationDate, now)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		out = append(out, models.ProductWithFreshness{Product: p, Freshness: f})
	}
	return out, nil
}

// List returns the user's pantry with freshness annotations, optionally
// filtered by category and a case-insensitive name search.
func (s *Service) List(ctx context.Context, userID int, params models.ProductListParams) ([]models.ProductWithFreshness, error) {
	products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.Category != "" {
		cat, ok := models.ParseCategory(params.Category)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", params.Category)
		}
		filtered := products[:0:0]
		for _, p := range products {
			if p.Category == cat {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	if params.Search != "" {
		needle := strings.ToLower(params.Search)
		filtered := products[:0:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return s.annotate(products)
}

// Add validates and stores a new product at the head of the list.
func (s *Service) Add(ctx context.Context, userID int, req models.CreateProductRequest) (*models.ProductWithFreshness, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	cat, ok := models.ParseCategory(req.Category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}
	expires, err := models.ParseDate(req.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expiration date %q", req.ExpirationDate)
	}

	products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:             uuid.NewString(),
		Name:           name,
		Category:       cat,
		ExpirationDate: expires,
		ImageURL:       req.ImageURL,
		Barcode:        req.Barcode,
		CreatedAt:      s.now(),
	}
	products = append([]models.Product{product}, products...)

	if err := s.save(ctx, userID, products); err != nil {
		return nil, err
	}

	f, err := ClassifyFreshness(product.Category, product.ExpirationDate, s.now())
	if err != nil {
		return nil, err
	}
	return &models.ProductWithFreshness{Product: product, Freshness: f}, nil
}

// Delete removes a product by ID. Unknown IDs are an error.
func (s *Service) Delete(ctx context.Context, userID int, productID string) error {
	products, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	idx := -1
	for i, p := range products {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("product %s not found", productID)
	}
	products = append(products[:idx], products[idx+1:]...)
	return s.save(ctx, userID, products)
}

// Cook removes one pantry product per matched recipe ingredient and
// returns what happened. Ingredients with no match are ignored.
func (s *Service) Cook(ctx context.Context, userID int, req models.CookRequest) (*models.CookResult, error) {
	products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining, consumed := ConsumeIngredients(products, req.Ingredients)
	if consumed > 0 {
		if err := s.save(ctx, userID, remaining); err != nil {
			return nil, err
		}
		monitoring.IngredientsConsumed.Add(float64(consumed))
	}

	name := strings.TrimSpace(req.RecipeName)
	if name == "" {
		name = "your recipe"
	}
	return &models.CookResult{
		RecipeName:     req.RecipeName,
		ConsumedCount:  consumed,
		RemainingItems: len(remaining),
		Message:        fmt.Sprintf("You cooked %s! Removed %d ingredient(s) from your pantry.", name, consumed),
	}, nil
}

// Recipes returns the current recipe set for the user's pantry.
func (s *Service) Recipes(ctx context.Context, userID int) (models.RecipeSet, error) {
	products, err := s.load(ctx, userID)
	if err != nil {
		return models.RecipeSet{}, err
	}
	return s.suggester.Current(userID, products), nil
}

// ResetRecipes discards any AI suggestions and returns the rule-based set.
func (s *Service) ResetRecipes(ctx context.Context, userID int) (models.RecipeSet, error) {
	s.suggester.Reset(userID)
	return s.Recipes(ctx, userID)
}

// Summary aggregates the pantry by freshness state and category.
func (s *Service) Summary(ctx context.Context, userID int) (*models.PantrySummary, error) {
	products, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	annotated, err := s.annotate(products)
	if err != nil {
		return nil, err
	}

	summary := &models.PantrySummary{
		TotalProducts: len(annotated),
		ByCategory:    make(map[models.Category]int),
	}
	for _, p := range annotated {
		summary.ByCategory[p.Category]++
		switch p.Freshness.State {
		case models.FreshnessExpired:
			summary.Expired++
		case models.FreshnessExpiringSoon:
			summary.ExpiringSoon++
		case models.FreshnessGood:
			summary.Good++
		case models.FreshnessFresh:
			summary.Fresh++
		}
	}
	return summary, nil
}
