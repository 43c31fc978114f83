package models

import (
	"time"

	"github.com/google/uuid"
)

// Density multiplier bounds. Values outside the range are clamped on write.
const (
	MinDensityMultiplier = 0.5
	MaxDensityMultiplier = 5.0
)

// Region is a sub-national targeting unit (state/province) with the area and
// density data the pricing engine scales base rates by.
type Region struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	StateCode         string    `json:"state_code"`
	CountryCode       string    `json:"country_code"`
	Population        int64     `json:"population"`
	LandAreaSqMi      float64   `json:"land_area"`
	DensityMultiplier float64   `json:"density_multiplier"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ClampDensityMultiplier corrects out-of-range density values into
// [MinDensityMultiplier, MaxDensityMultiplier].
func ClampDensityMultiplier(v float64) float64 {
	if v < MinDensityMultiplier {
		return MinDensityMultiplier
	}
	if v > MaxDensityMultiplier {
		return MaxDensityMultiplier
	}
	return v
}

// Industry is a pricing adjustment factor per business vertical; 1.0 = neutral.
type Industry struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Multiplier float64   `json:"multiplier"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AdFormat identifies a creative slot. The base rate is denominated in the
// platform's reference currency, not the viewer's display currency.
type AdFormat struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BaseRate  float64   `json:"base_rate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountTier maps a committed duration in months to a discount rate.
type DiscountTier struct {
	DurationMonths int     `json:"duration_months"`
	Rate           float64 `json:"rate"`
}

// Default tiers: 3 months carries no discount, 6 months 25%, 12 months 50%.
var DefaultDiscountTiers = []DiscountTier{
	{DurationMonths: 3, Rate: 0},
	{DurationMonths: 6, Rate: 0.25},
	{DurationMonths: 12, Rate: 0.50},
}
