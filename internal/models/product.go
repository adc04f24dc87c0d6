package models

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies a pantry product. The set is closed: freshness
// windows and recipe rules are both keyed on it.
type Category string

const (
	CategoryDairy      Category = "Dairy"
	CategoryVegetables Category = "Vegetables"
	CategoryFruit      Category = "Fruit"
	CategoryMeat       Category = "Meat"
	CategoryGrains     Category = "Grains"
	CategoryBeverages  Category = "Beverages"
	CategoryOther      Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryDairy,
	CategoryVegetables,
	CategoryFruit,
	CategoryMeat,
	CategoryGrains,
	CategoryBeverages,
	CategoryOther,
}

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a string against the category set, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Date is a calendar date with no time component. It marshals as
// "2006-01-02" and always normalizes to midnight UTC internally.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Product is a single pantry entry. Products are only ever added and
// removed; they are never updated in place.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       Category  `json:"category"`
	ExpirationDate Date      `json:"expiration_date"`
	ImageURL       *string   `json:"image_url,omitempty"`
	Barcode        *string   `json:"barcode,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FreshnessState is the derived expiration state of a product.
type FreshnessState string

const (
	FreshnessExpired      FreshnessState = "expired"
	FreshnessExpiringSoon FreshnessState = "expiring_soon"
	FreshnessGood         FreshnessState = "good"
	FreshnessFresh        FreshnessState = "fresh"
)

// Freshness is recomputed from the expiration date on every query;
// it is never persisted.
type Freshness struct {
	State               FreshnessState `json:"state"`
	Label               string         `json:"label"`
	DaysUntilExpiration int            `json:"days_until_expiration"`
}

// ProductWithFreshness pairs a product with its freshness at query time.
type ProductWithFreshness struct {
	Product
	Freshness Freshness `json:"freshness"`
}

// CreateProductRequest is the request body for adding a pantry product
type CreateProductRequest struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	ExpirationDate string  `json:"expiration_date"`
	ImageURL       *string `json:"image_url,omitempty"`
	Barcode        *string `json:"barcode,omitempty"`
}

// PantrySummary contains aggregate counts for the dashboard
type PantrySummary struct {
	TotalProducts int              `json:"total_products"`
	Expired       int              `json:"expired"`
	ExpiringSoon  int              `json:"expiring_soon"`
	Good          int              `json:"good"`
	Fresh         int              `json:"fresh"`
	ByCategory    map[Category]int `json:"by_category"`
}

// ProductListParams contains filters for listing pantry products
type ProductListParams struct {
	Category string
	Search   string
}
