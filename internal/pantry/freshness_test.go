package pantry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/pantry-chef/internal/models"
)

var testNow = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func dateIn(days int) models.Date {
	return models.DateOf(testNow.AddDate(0, 0, days))
}

func TestDaysUntilExpiration(t *testing.T) {
	assert.Equal(t, 0, DaysUntilExpiration(dateIn(0), testNow))
	assert.Equal(t, 1, DaysUntilExpiration(dateIn(1), testNow))
	assert.Equal(t, -1, DaysUntilExpiration(dateIn(-1), testNow))
	assert.Equal(t, 90, DaysUntilExpiration(dateIn(90), testNow))

	// Same calendar date counts as zero even late in the day.
	lateEvening := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntilExpiration(dateIn(0), lateEvening))
}

func TestDaysUntilExpirationShrinksDaily(t *testing.T) {
	expires := dateIn(3)
	for day := 0; day <= 5; day++ {
		now := testNow.AddDate(0, 0, day)
		assert.Equal(t, 3-day, DaysUntilExpiration(expires, now))
	}
}

func TestClassifyFreshnessStates(t *testing.T) {
	tests := []struct {
		name     string
		category models.Category
		days     int
		state    models.FreshnessState
		label    string
	}{
		{"expired yesterday", models.CategoryMeat, -1, models.FreshnessExpired, "expired 1 day ago"},
		{"long expired", models.CategoryDairy, -14, models.FreshnessExpired, "expired 14 days ago"},
		{"expires today", models.CategoryFruit, 0, models.FreshnessExpiringSoon, "expires today"},
		{"expires tomorrow", models.CategoryBeverages, 1, models.FreshnessExpiringSoon, "expires in 1 day"},
		{"soon boundary", models.CategoryGrains, 3, models.FreshnessExpiringSoon, "expires in 3 days"},
		{"good just past soon", models.CategoryDairy, 4, models.FreshnessGood, "expires in 4 days"},
		{"good at window edge", models.CategoryDairy, 7, models.FreshnessGood, "expires in 7 days"},
		{"fresh past window", models.CategoryDairy, 8, models.FreshnessFresh, "expires in 8 days"},
		{"meat window is tight", models.CategoryMeat, 4, models.FreshnessFresh, "expires in 4 days"},
		{"grains keep long", models.CategoryGrains, 30, models.FreshnessGood, "expires in 30 days"},
		{"grains fresh", models.CategoryGrains, 31, models.FreshnessFresh, "expires in 31 days"},
		{"other uses default window", models.CategoryOther, 8, models.FreshnessFresh, "expires in 8 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ClassifyFreshness(tt.category, dateIn(tt.days), testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.state, f.State)
			assert.Equal(t, tt.label, f.Label)
			assert.Equal(t, tt.days, f.DaysUntilExpiration)
		})
	}
}

func TestClassifyFreshnessErrors(t *testing.T) {
	_, err := ClassifyFreshness(models.CategoryDairy, models.Date{}, testNow)
	assert.ErrorIs(t, err, ErrNoExpirationDate)

	_, err = ClassifyFreshness(models.Category("Snacks"), dateIn(5), testNow)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestFreshnessWindow(t *testing.T) {
	assert.Equal(t, 7, FreshnessWindow(models.CategoryDairy))
	assert.Equal(t, 3, FreshnessWindow(models.CategoryMeat))
	assert.Equal(t, 30, FreshnessWindow(models.CategoryGrains))
	assert.Equal(t, 7, FreshnessWindow(models.CategoryOther))
}
