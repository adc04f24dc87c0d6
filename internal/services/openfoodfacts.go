package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foxxcyber/pantry-chef/internal/models"
	"github.com/foxxcyber/pantry-chef/internal/monitoring"
)

const (
	openFoodFactsBaseURL = "https://world.openfoodfacts.org"
	lookupTimeout        = 10 * time.Second
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrLookupFailed    = errors.New("product lookup failed")
)

// OpenFoodFactsService looks up product metadata by barcode against the
// OpenFoodFacts public API.
type OpenFoodFactsService struct {
	baseURL    string
	httpClient *http.Client
}

// ProductLookup is the normalized result of a barcode lookup. Category
// is already mapped onto the pantry's category set.
type ProductLookup struct {
	Barcode  string          `json:"barcode"`
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
	ImageURL string          `json:"image_url,omitempty"`
}

// offProductResponse mirrors the subset of the OpenFoodFacts v0 product
// payload the lookup needs. status is 1 when the barcode is known.
type offProductResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Categories  string `json:"categories"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

// NewOpenFoodFactsService creates a new OpenFoodFactsService instance
func NewOpenFoodFactsService() *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: openFoodFactsBaseURL,
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
	}
}

// Lookup fetches product metadata for a barcode.
func (s *OpenFoodFactsService) Lookup(ctx context.Context, code string) (*ProductLookup, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty barcode", ErrLookupFailed)
	}

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		monitoring.BarcodeLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		monitoring.BarcodeLookups.WithLabelValues("not_found").Inc()
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		monitoring.BarcodeLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLookupFailed, resp.StatusCode)
	}

	var offResp offProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&offResp); err != nil {
		monitoring.BarcodeLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if offResp.Status != 1 || offResp.Product.ProductName == "" {
		monitoring.BarcodeLookups.WithLabelValues("not_found").Inc()
		return nil, ErrProductNotFound
	}

	monitoring.BarcodeLookups.WithLabelValues("ok").Inc()
	return &ProductLookup{
		Barcode:  code,
		Name:     offResp.Product.ProductName,
		Category: CategoryFromHint(offResp.Product.Categories),
		ImageURL: offResp.Product.ImageURL,
	}, nil
}

// categoryKeywords maps OpenFoodFacts category text onto the pantry
// category set. Order matters: the first matching rule wins.
var categoryKeywords = []struct {
	keywords []string
	category models.Category
}{
	{[]string{"dairy", "milk", "cheese", "yogurt"}, models.CategoryDairy},
	{[]string{"fruit"}, models.CategoryFruit},
	{[]string{"vegetable", "tomato"}, models.CategoryVegetables},
	{[]string{"meat", "salami", "ham"}, models.CategoryMeat},
	{[]string{"cereal", "pasta", "bread", "biscuit"}, models.CategoryGrains},
	{[]string{"beverage", "drink", "water", "juice"}, models.CategoryBeverages},
}

// CategoryFromHint maps a free-text category description to a pantry
// category, falling back to Other.
func CategoryFromHint(hint string) models.Category {
	hint = strings.ToLower(hint)
	for _, rule := range categoryKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(hint, kw) {
				return rule.category
			}
		}
	}
	return models.CategoryOther
}
