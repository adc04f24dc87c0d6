package pantry

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/foxxcyber/pantry-chef/internal/models"
	"github.com/foxxcyber/pantry-chef/internal/monitoring"
)

const (
	// minProductsForGeneration gates the external call: suggestions for a
	// near-empty pantry are not worth a model round trip.
	minProductsForGeneration = 2

	// maxGenerationIngredients caps how many product names are sent per
	// generation request.
	maxGenerationIngredients = 15

	// DefaultSuggestDebounce is the quiet period after an inventory
	// change before a generation request fires.
	DefaultSuggestDebounce = 2 * time.Second

	defaultGenerationTimeout = 45 * time.Second
)

// Generator produces recipe suggestions from a list of ingredient names.
// Implementations must return an error for empty or malformed results.
type Generator interface {
	GenerateRecipes(ctx context.Context, ingredientNames []string) ([]models.Recipe, error)
}

// Suggester decides which recipe set a user sees: the rule-based
// derivation (always available) or the last successful AI generation.
// Inventory changes schedule a debounced generation request; only the
// response matching the latest scheduled request is ever applied, so
// stale in-flight responses are dropped deterministically.
type Suggester struct {
	gen     Generator
	delay   time.Duration
	timeout time.Duration

	mu       sync.Mutex
	sessions map[int]*suggestSession
}

// suggestSession tracks per-user state. recipes == nil means the
// rule-based set is authoritative.
type suggestSession struct {
	timer   *time.Timer
	seq     uint64
	recipes []models.Recipe
}

// NewSuggester creates a suggestion controller. gen may be nil, in which
// case the rule-based set is always authoritative (no API key configured).
func NewSuggester(gen Generator, delay time.Duration) *Suggester {
	if delay <= 0 {
		delay = DefaultSuggestDebounce
	}
	return &Suggester{
		gen:      gen,
		delay:    delay,
		timeout:  defaultGenerationTimeout,
		sessions: make(map[int]*suggestSession),
	}
}

func (s *Suggester) session(userID int) *suggestSession {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &suggestSession{}
		s.sessions[userID] = sess
	}
	return sess
}

// InventoryChanged must be called after every inventory mutation. It
// supersedes any pending or in-flight generation and, when the pantry
// holds enough products, schedules a new request with the current
// composition after the quiet period.
func (s *Suggester) InventoryChanged(userID int, products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	sess.seq++
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}

	if s.gen == nil || len(products) < minProductsForGeneration {
		return
	}

	limit := len(products)
	if limit > maxGenerationIngredients {
		limit = maxGenerationIngredients
	}
	names := make([]string, 0, limit)
	for _, p := range products[:limit] {
		names = append(names, p.Name)
	}

	seq := sess.seq
	sess.timer = time.AfterFunc(s.delay, func() {
		s.generate(userID, seq, names)
	})
}

// generate performs the external call and applies the result only if no
// newer inventory change or reset happened in the meantime.
func (s *Suggester) generate(userID int, seq uint64, names []string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	recipes, err := s.gen.GenerateRecipes(ctx, names)
	if err != nil {
		// Generation failures are silent at this layer: the rule-based
		// set simply stays authoritative.
		log.Printf("recipe generation failed for user %d: %v", userID, err)
		monitoring.RecipeGenerations.WithLabelValues("error").Inc()
		return
	}
	if len(recipes) == 0 {
		monitoring.RecipeGenerations.WithLabelValues("empty").Inc()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[userID]
	if sess == nil || sess.seq != seq {
		monitoring.RecipeGenerations.WithLabelValues("stale").Inc()
		return
	}

	for i := range recipes {
		recipes[i].Source = models.RecipeSourceAIGenerated
	}
	sess.recipes = recipes
	monitoring.RecipeGenerations.WithLabelValues("ok").Inc()
}

// Current returns the authoritative recipe set for the given inventory:
// the stored AI generation when one is active, otherwise the rule-based
// derivation. The two are never merged.
func (s *Suggester) Current(userID int, products []models.Product) models.RecipeSet {
	s.mu.Lock()
	sess := s.sessions[userID]
	var aiRecipes []models.Recipe
	if sess != nil && len(sess.recipes) > 0 {
		aiRecipes = append([]models.Recipe(nil), sess.recipes...)
	}
	s.mu.Unlock()

	if aiRecipes != nil {
		return models.RecipeSet{Source: models.RecipeSourceAIGenerated, Recipes: aiRecipes}
	}
	recipes := SuggestRecipes(products)
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return models.RecipeSet{Source: models.RecipeSourceRuleBased, Recipes: recipes}
}

// Reset discards the AI set entirely and returns to the rule-based
// state. Pending and in-flight generations are invalidated, so a later
// regeneration starts clean.
func (s *Suggester) Reset(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(userID)
	sess.seq++
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	sess.recipes = nil
}
