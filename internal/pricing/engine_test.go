package pricing

import (
	"errors"
	"testing"

	"github.com/geoads/backend/internal/currency"
	"github.com/geoads/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(currency.NewConverter(currency.DefaultRates()), "USD", 30)
}

func TestComputeQuoteRadius(t *testing.T) {
	e := newTestEngine(t)

	q, err := e.ComputeQuote(QuoteInput{
		BaseRate:           150,
		IndustryMultiplier: 1.0,
		CoverageType:       models.CoverageRadius,
		DurationMonths:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, q.Sections)
	assert.Equal(t, 150.0, q.BasePrice)
	assert.Equal(t, 0.0, q.DiscountRate)
	assert.Equal(t, 150.0, q.FinalMonthlyPrice)
	assert.Equal(t, 450.0, q.TotalPrice)
	assert.Equal(t, "USD", q.Currency)
}

func TestComputeQuoteTwelveMonthDiscount(t *testing.T) {
	e := newTestEngine(t)

	q, err := e.ComputeQuote(QuoteInput{
		BaseRate:           150,
		IndustryMultiplier: 1.0,
		CoverageType:       models.CoverageRadius,
		DurationMonths:     12,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.5, q.DiscountRate)
	assert.Equal(t, 75.0, q.FinalMonthlyPrice)
	assert.Equal(t, 75.0, q.DiscountAmount)
	assert.Equal(t, 900.0, q.TotalPrice)
}

func TestSectionsState(t *testing.T) {
	e := newTestEngine(t)
	region := &models.Region{LandAreaSqMi: 100000, DensityMultiplier: 1.5}

	sections, err := e.Sections(models.CoverageState, region, nil)
	require.NoError(t, err)

	// 100000 / (pi * 30^2) * 1.5
	assert.InDelta(t, 53.05, sections, 0.01)
}

func TestSectionsNationalIsSumOfStates(t *testing.T) {
	e := newTestEngine(t)
	regions := []models.Region{
		{LandAreaSqMi: 50000, DensityMultiplier: 1.0},
		{LandAreaSqMi: 100000, DensityMultiplier: 1.5},
		{LandAreaSqMi: 25000, DensityMultiplier: 2.0},
	}

	national, err := e.Sections(models.CoverageNational, nil, regions)
	require.NoError(t, err)

	sum := 0.0
	for i := range regions {
		s, err := e.Sections(models.CoverageState, &regions[i], nil)
		require.NoError(t, err)
		sum += s
	}
	assert.InDelta(t, sum, national, 1e-9)

	// National coverage can never be cheaper than any one of its states.
	for i := range regions {
		s, _ := e.Sections(models.CoverageState, &regions[i], nil)
		assert.GreaterOrEqual(t, national, s)
	}
}

func TestComputeQuoteDeterministic(t *testing.T) {
	e := newTestEngine(t)
	in := QuoteInput{
		BaseRate:           250,
		IndustryMultiplier: 1.5,
		CoverageType:       models.CoverageState,
		Region:             &models.Region{LandAreaSqMi: 53624.8, DensityMultiplier: 1.8},
		DurationMonths:     6,
		DisplayCurrency:    "EUR",
	}

	first, err := e.ComputeQuote(in)
	require.NoError(t, err)
	second, err := e.ComputeQuote(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "EUR", first.Currency)
	assert.Equal(t, 0.25, first.DiscountRate)
}

func TestComputeQuoteMonotonicInMultiplier(t *testing.T) {
	e := newTestEngine(t)

	base := QuoteInput{
		BaseRate:           150,
		IndustryMultiplier: 1.0,
		CoverageType:       models.CoverageRadius,
		DurationMonths:     3,
	}
	low, err := e.ComputeQuote(base)
	require.NoError(t, err)

	base.IndustryMultiplier = 2.0
	high, err := e.ComputeQuote(base)
	require.NoError(t, err)

	assert.Greater(t, high.FinalMonthlyPrice, low.FinalMonthlyPrice)
}

func TestLongerDurationNeverCostsMorePerMonth(t *testing.T) {
	e := newTestEngine(t)

	var prev float64
	for i, months := range []int{3, 6, 12} {
		q, err := e.ComputeQuote(QuoteInput{
			BaseRate:           200,
			IndustryMultiplier: 1.3,
			CoverageType:       models.CoverageRadius,
			DurationMonths:     months,
		})
		require.NoError(t, err)
		if i > 0 {
			assert.LessOrEqual(t, q.FinalMonthlyPrice, prev)
		}
		prev = q.FinalMonthlyPrice
	}
}

func TestDiscountRateUnknownDuration(t *testing.T) {
	for _, months := range []int{0, 1, 4, 7, 24, -3} {
		_, err := DiscountRate(months, nil)
		var invalid *InvalidDurationError
		require.Error(t, err)
		assert.True(t, errors.As(err, &invalid), "duration %d should be InvalidDurationError", months)
	}
}

func TestDiscountRateCustomTiers(t *testing.T) {
	tiers := []models.DiscountTier{{DurationMonths: 1, Rate: 0}, {DurationMonths: 24, Rate: 0.6}}

	rate, err := DiscountRate(24, tiers)
	require.NoError(t, err)
	assert.Equal(t, 0.6, rate)

	// Default durations don't leak into a custom tier set.
	_, err = DiscountRate(12, tiers)
	assert.Error(t, err)
}

func TestSectionsIncompleteInput(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name     string
		coverage string
		region   *models.Region
		regions  []models.Region
	}{
		{"state without region", models.CoverageState, nil, nil},
		{"national without regions", models.CoverageNational, nil, nil},
		{"unknown coverage", "galactic", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Sections(tt.coverage, tt.region, tt.regions)
			var incomplete *IncompleteInputError
			require.Error(t, err)
			assert.True(t, errors.As(err, &incomplete))
		})
	}
}

func TestComputeQuoteCurrencyConversion(t *testing.T) {
	e := newTestEngine(t)

	q, err := e.ComputeQuote(QuoteInput{
		BaseRate:           100,
		IndustryMultiplier: 1.0,
		CoverageType:       models.CoverageRadius,
		DurationMonths:     3,
		DisplayCurrency:    "EUR",
	})
	require.NoError(t, err)

	assert.Equal(t, 92.0, q.BasePrice)
	assert.Equal(t, "EUR", q.Currency)
}
