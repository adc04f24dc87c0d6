package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecipeGenerations counts AI generation attempts by outcome
	// (ok, error, empty, stale).
	RecipeGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pantrychef_recipe_generations_total",
		Help: "Recipe generation attempts by outcome",
	}, []string{"status"})

	// ChatFallbacks counts chat requests answered by the canned
	// responder instead of the model.
	ChatFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pantrychef_chat_fallbacks_total",
		Help: "Chat requests served by the canned responder",
	})

	// IngredientsConsumed counts pantry products removed by cooking.
	IngredientsConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pantrychef_ingredients_consumed_total",
		Help: "Pantry products removed by cook requests",
	})

	// BarcodeLookups counts OpenFoodFacts lookups by outcome
	// (ok, not_found, error).
	BarcodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pantrychef_barcode_lookups_total",
		Help: "Barcode lookups by outcome",
	}, []string{"status"})
)
