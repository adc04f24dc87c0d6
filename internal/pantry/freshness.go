package pantry

import (
	"errors"
	"fmt"
	"time"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

var (
	ErrNoExpirationDate = errors.New("product has no expiration date")
	ErrUnknownCategory  = errors.New("unknown product category")
)

// expiringSoonDays is the threshold below which any unexpired product is
// flagged, regardless of its category window. Day 0 ("expires today")
// falls in this band.
const expiringSoonDays = 3

// freshnessWindows holds the optimal freshness window per category, in
// days. A product further from expiry than its window is "fresh" rather
// than merely "good".
var freshnessWindows = map[models.Category]int{
	models.CategoryDairy:      7,
	models.CategoryVegetables: 5,
	models.CategoryFruit:      5,
	models.CategoryMeat:       3,
	models.CategoryGrains:     30,
	models.CategoryBeverages:  14,
}

const defaultFreshnessWindow = 7

// FreshnessWindow returns the optimal freshness window for a category.
func FreshnessWindow(category models.Category) int {
	if window, ok := freshnessWindows[category]; ok {
		return window
	}
	return defaultFreshnessWindow
}

// DaysUntilExpiration computes the whole-day distance between now and the
// expiration date. Both sides are normalized to their calendar date, so
// the result shrinks by exactly one per elapsed day and is negative once
// the date has passed.
func DaysUntilExpiration(expiration models.Date, now time.Time) int {
	today := models.DateOf(now)
	return int(expiration.Sub(today.Time).Hours() / 24)
}

// ClassifyFreshness derives the freshness of a product at the given
// instant. A zero expiration date or an unknown category is a
// configuration error and is surfaced to the caller; the classifier
// never silently defaults to "fresh".
func ClassifyFreshness(category models.Category, expiration models.Date, now time.Time) (models.Freshness, error) {
	if expiration.IsZero() {
		return models.Freshness{}, ErrNoExpirationDate
	}
	if !category.Valid() {
		return models.Freshness{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	days := DaysUntilExpiration(expiration, now)

	switch {
	case days < 0:
		return models.Freshness{
			State:               models.FreshnessExpired,
			Label:               fmt.Sprintf("expired %s ago", pluralDays(-days)),
			DaysUntilExpiration: days,
		}, nil
	case days == 0:
		return models.Freshness{
			State:               models.FreshnessExpiringSoon,
			Label:               "expires today",
			DaysUntilExpiration: days,
		}, nil
	case days <= expiringSoonDays:
		return models.Freshness{
			State:               models.FreshnessExpiringSoon,
			Label:               fmt.Sprintf("expires in %s", pluralDays(days)),
			DaysUntilExpiration: days,
		}, nil
	}

	state := models.FreshnessGood
	if days > FreshnessWindow(category) {
		state = models.FreshnessFresh
	}
	return models.Freshness{
		State:               state,
		Label:               fmt.Sprintf("expires in %s", pluralDays(days)),
		DaysUntilExpiration: days,
	}, nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
