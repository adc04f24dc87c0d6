package pantry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]models.Product
	err  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]models.Product)}
}

func (m *memoryStore) GetProducts(_ context.Context, key string) ([]models.Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	products, ok := m.data[key]
	return append([]models.Product(nil), products...), ok, nil
}

func (m *memoryStore) SetProducts(_ context.Context, key string, products []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = append([]models.Product(nil), products...)
	return nil
}

func newTestService(store ProductStore) *Service {
	svc := NewService(store, NewSuggester(nil, DefaultSuggestDebounce))
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "pantry_products_42", StorageKey(42))
}

func TestServiceSeedsOnFirstAccess(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	products, err := svc.List(context.Background(), 1, models.ProductListParams{})
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.Equal(t, "Fresh Milk", products[0].Name)

	// The seed was persisted under the user's key.
	stored, ok := store.data[StorageKey(1)]
	require.True(t, ok)
	assert.Len(t, stored, 8)

	// Every sample carries an ID and classifies cleanly.
	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Freshness.State)
	}
}

func TestServiceEmptyPantryStaysEmpty(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{}
	svc := newTestService(store)

	products, err := svc.List(context.Background(), 1, models.ProductListParams{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestServiceListFilters(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{
		{ID: "1", Name: "Fresh Milk", Category: models.CategoryDairy, ExpirationDate: dateIn(2)},
		{ID: "2", Name: "Tomatoes", Category: models.CategoryVegetables, ExpirationDate: dateIn(4)},
		{ID: "3", Name: "Greek Yogurt", Category: models.CategoryDairy, ExpirationDate: dateIn(5)},
	}
	svc := newTestService(store)
	ctx := context.Background()

	dairy, err := svc.List(ctx, 1, models.ProductListParams{Category: "dairy"})
	require.NoError(t, err)
	require.Len(t, dairy, 2)

	milk, err := svc.List(ctx, 1, models.ProductListParams{Search: "milk"})
	require.NoError(t, err)
	require.Len(t, milk, 1)
	assert.Equal(t, "Fresh Milk", milk[0].Name)

	_, err = svc.List(ctx, 1, models.ProductListParams{Category: "snacks"})
	assert.Error(t, err)
}

func TestServiceAdd(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{
		{ID: "1", Name: "Tomatoes", Category: models.CategoryVegetables, ExpirationDate: dateIn(4)},
	}
	svc := newTestService(store)

	added, err := svc.Add(context.Background(), 1, models.CreateProductRequest{
		Name:           "  Mozzarella  ",
		Category:       "dairy",
		ExpirationDate: dateIn(6).String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mozzarella", added.Name)
	assert.Equal(t, models.CategoryDairy, added.Category)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, models.FreshnessGood, added.Freshness.State)

	// New products go to the head of the list.
	stored := store.data[StorageKey(1)]
	require.Len(t, stored, 2)
	assert.Equal(t, "Mozzarella", stored[0].Name)
	assert.Equal(t, "Tomatoes", stored[1].Name)
}

func TestServiceAddValidation(t *testing.T) {
	svc := newTestService(newMemoryStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, models.CreateProductRequest{Name: "", Category: "Dairy", ExpirationDate: "2025-03-15"})
	assert.Error(t, err)

	_, err = svc.Add(ctx, 1, models.CreateProductRequest{Name: "Chips", Category: "Snacks", ExpirationDate: "2025-03-15"})
	assert.Error(t, err)

	_, err = svc.Add(ctx, 1, models.CreateProductRequest{Name: "Milk", Category: "Dairy", ExpirationDate: "15/03/2025"})
	assert.Error(t, err)
}

func TestServiceDelete(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{
		{ID: "keep", Name: "Carrots", Category: models.CategoryVegetables, ExpirationDate: dateIn(10)},
		{ID: "drop", Name: "Old Milk", Category: models.CategoryDairy, ExpirationDate: dateIn(-2)},
	}
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 1, "drop"))
	stored := store.data[StorageKey(1)]
	require.Len(t, stored, 1)
	assert.Equal(t, "keep", stored[0].ID)

	assert.Error(t, svc.Delete(ctx, 1, "missing"))
}

func TestServiceCookPersistsRemoval(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{
		{ID: "1", Name: "Cherry Tomatoes", Category: models.CategoryVegetables, ExpirationDate: dateIn(4)},
		{ID: "2", Name: "Mozzarella", Category: models.CategoryDairy, ExpirationDate: dateIn(6)},
		{ID: "3", Name: "Fresh Basil", Category: models.CategoryVegetables, ExpirationDate: dateIn(3)},
	}
	svc := newTestService(store)

	result, err := svc.Cook(context.Background(), 1, models.CookRequest{
		RecipeName:  "Caprese Salad",
		Ingredients: []string{"tomato", "mozzarella", "saffron"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ConsumedCount)
	assert.Equal(t, 1, result.RemainingItems)
	assert.Contains(t, result.Message, "Caprese Salad")
	assert.Contains(t, result.Message, "2 ingredient(s)")

	stored := store.data[StorageKey(1)]
	require.Len(t, stored, 1)
	assert.Equal(t, "Fresh Basil", stored[0].Name)
}

func TestServiceCookNothingMatchedDoesNotWrite(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{
		{ID: "1", Name: "Carrots", Category: models.CategoryVegetables, ExpirationDate: dateIn(10)},
	}
	svc := newTestService(store)

	result, err := svc.Cook(context.Background(), 1, models.CookRequest{
		RecipeName:  "Bouillabaisse",
		Ingredients: []string{"saffron", "monkfish"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ConsumedCount)
	assert.Equal(t, 1, result.RemainingItems)
}

func TestServiceRecipesAndReset(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{
		{ID: "1", Name: "Apples", Category: models.CategoryFruit, ExpirationDate: dateIn(7)},
	}
	svc := newTestService(store)
	ctx := context.Background()

	set, err := svc.Recipes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RecipeSourceRuleBased, set.Source)
	require.Len(t, set.Recipes, 1)
	assert.Equal(t, "rule-fruit-salad", set.Recipes[0].ID)

	set, err = svc.ResetRecipes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RecipeSourceRuleBased, set.Source)
}

func TestServiceSummary(t *testing.T) {
	store := newMemoryStore()
	store.data[StorageKey(1)] = []models.Product{
		{ID: "1", Name: "Old Chicken", Category: models.CategoryMeat, ExpirationDate: dateIn(-1)},
		{ID: "2", Name: "Milk", Category: models.CategoryDairy, ExpirationDate: dateIn(2)},
		{ID: "3", Name: "Yogurt", Category: models.CategoryDairy, ExpirationDate: dateIn(5)},
		{ID: "4", Name: "Pasta", Category: models.CategoryGrains, ExpirationDate: dateIn(90)},
	}
	svc := newTestService(store)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalProducts)
	assert.Equal(t, 1, summary.Expired)
	assert.Equal(t, 1, summary.ExpiringSoon)
	assert.Equal(t, 1, summary.Good)
	assert.Equal(t, 1, summary.Fresh)
	assert.Equal(t, map[models.Category]int{
		models.CategoryMeat:   1,
		models.CategoryDairy:  2,
		models.CategoryGrains: 1,
	}, summary.ByCategory)
}

func TestServiceStoreErrorPropagates(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")
	svc := newTestService(store)

	_, err := svc.List(context.Background(), 1, models.ProductListParams{})
	assert.Error(t, err)
}
