package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

func newTestOFFService(handler http.HandlerFunc) (*OpenFoodFactsService, func()) {
	server := httptest.NewServer(handler)
	svc := NewOpenFoodFactsService()
	svc.baseURL = server.URL
	return svc, server.Close
}

func TestOpenFoodFactsLookupFound(t *testing.T) {
	svc, closeFn := newTestOFFService(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/product/3017620422003.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Nutella",
				"categories": "Spreads, Sweet spreads, Breakfasts",
				"image_url": "https://images.example/nutella.jpg"
			}
		}`))
	})
	defer closeFn()

	result, err := svc.Lookup(context.Background(), "3017620422003")
	require.NoError(t, err)
	assert.Equal(t, "3017620422003", result.Barcode)
	assert.Equal(t, "Nutella", result.Name)
	assert.Equal(t, models.CategoryOther, result.Category)
	assert.Equal(t, "https://images.example/nutella.jpg", result.ImageURL)
}

func TestOpenFoodFactsLookupMapsCategory(t *testing.T) {
	svc, closeFn := newTestOFFService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {"product_name": "Whole Milk", "categories": "Dairies, Milks"}}`))
	})
	defer closeFn()

	result, err := svc.Lookup(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryDairy, result.Category)
}

func TestOpenFoodFactsLookupNotFound(t *testing.T) {
	svc, closeFn := newTestOFFService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	})
	defer closeFn()

	_, err := svc.Lookup(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOpenFoodFactsLookupServerError(t *testing.T) {
	svc, closeFn := newTestOFFService(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer closeFn()

	_, err := svc.Lookup(context.Background(), "123")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestOpenFoodFactsLookupEmptyBarcode(t *testing.T) {
	svc := NewOpenFoodFactsService()
	_, err := svc.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestCategoryFromHint(t *testing.T) {
	tests := []struct {
		hint string
		want models.Category
	}{
		{"Dairies, Milks", models.CategoryDairy},
		{"Cheeses, Italian cheeses", models.CategoryDairy},
		{"Plant-based foods, Fruits", models.CategoryFruit},
		{"Vegetables, Canned tomatoes", models.CategoryVegetables},
		{"Meats, Prepared hams", models.CategoryMeat},
		{"Breakfast cereals", models.CategoryGrains},
		{"Pastas, Durum wheat pasta", models.CategoryGrains},
		{"Beverages, Sodas", models.CategoryBeverages},
		// The fruit keyword outranks the beverage keyword.
		{"Beverages, Fruit juices", models.CategoryFruit},
		{"Snacks, Chocolate", models.CategoryOther},
		{"", models.CategoryOther},
		// Dairy keywords outrank the fruit keyword.
		{"Fruit yogurts", models.CategoryDairy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryFromHint(tt.hint), "hint %q", tt.hint)
	}
}
