package pricing

import (
	"math"

	"github.com/geoads/backend/internal/currency"
	"github.com/geoads/backend/internal/models"
)

// QuoteInput is everything a quote is computed from. Regions must hold every
// region of the target country when coverage is national, and Region must be
// set when coverage is state-wide.
type QuoteInput struct {
	BaseRate           float64 // ad format base rate, in the reference currency
	IndustryMultiplier float64
	CoverageType       string
	Region             *models.Region
	Regions            []models.Region
	DurationMonths     int
	DisplayCurrency    string
	Tiers              []models.DiscountTier // nil -> models.DefaultDiscountTiers
}

// Quote is the deterministic output for one QuoteInput, after currency
// conversion into the display currency.
type Quote struct {
	Sections          float64 `json:"sections"`
	BasePrice         float64 `json:"base_price"`
	DiscountRate      float64 `json:"discount_rate"`
	DiscountAmount    float64 `json:"discount_amount"`
	FinalMonthlyPrice float64 `json:"final_monthly_price"`
	TotalPrice        float64 `json:"total_price"`
	Currency          string  `json:"currency"`
}

// Engine computes quotes. It is pure and stateless apart from its fixed
// configuration, so a single instance is safe for concurrent use.
type Engine struct {
	converter         *currency.Converter
	referenceCurrency string
	refRadiusAreaSqMi float64
}

// ReferenceRadiusArea is the area of the standard radius unit that state and
// national coverage are normalized against.
func ReferenceRadiusArea(radiusMiles float64) float64 {
	return math.Pi * radiusMiles * radiusMiles
}

func NewEngine(converter *currency.Converter, referenceCurrency string, defaultRadiusMiles float64) *Engine {
	return &Engine{
		converter:         converter,
		referenceCurrency: referenceCurrency,
		refRadiusAreaSqMi: ReferenceRadiusArea(defaultRadiusMiles),
	}
}

// regionSections is how many standard radius units one region is worth.
func (e *Engine) regionSections(r *models.Region) float64 {
	return (r.LandAreaSqMi / e.refRadiusAreaSqMi) * r.DensityMultiplier
}

// Sections resolves the dimensionless area-and-density multiplier for a
// coverage selection. State and national coverage against an empty region set
// fail with IncompleteInputError rather than pricing out at zero.
func (e *Engine) Sections(coverageType string, region *models.Region, regions []models.Region) (float64, error) {
	switch coverageType {
	case models.CoverageRadius:
		return 1.0, nil
	case models.CoverageState:
		if region == nil {
			return 0, &IncompleteInputError{Reason: "state coverage requires a region"}
		}
		return e.regionSections(region), nil
	case models.CoverageNational:
		if len(regions) == 0 {
			return 0, &IncompleteInputError{Reason: "national coverage requires the country's region list"}
		}
		total := 0.0
		for i := range regions {
			total += e.regionSections(&regions[i])
		}
		return total, nil
	default:
		return 0, &IncompleteInputError{Reason: "unknown coverage type " + coverageType}
	}
}

// DiscountRate resolves the tier for a duration. Durations outside the tier
// set are a hard error; they never silently fall back to 0%.
func DiscountRate(durationMonths int, tiers []models.DiscountTier) (float64, error) {
	if tiers == nil {
		tiers = models.DefaultDiscountTiers
	}
	for _, t := range tiers {
		if t.DurationMonths == durationMonths {
			return t.Rate, nil
		}
	}
	return 0, &InvalidDurationError{Months: durationMonths}
}

// ComputeQuote runs the full pricing algorithm:
//
//	sections × baseRate × industryMultiplier, converted to the display
//	currency, with the duration-tier discount taken off the monthly price.
//
// Identical inputs always produce identical output.
func (e *Engine) ComputeQuote(in QuoteInput) (*Quote, error) {
	discountRate, err := DiscountRate(in.DurationMonths, in.Tiers)
	if err != nil {
		return nil, err
	}

	sections, err := e.Sections(in.CoverageType, in.Region, in.Regions)
	if err != nil {
		return nil, err
	}

	rawMonthly := sections * in.BaseRate * in.IndustryMultiplier

	display := in.DisplayCurrency
	if display == "" {
		display = e.referenceCurrency
	}
	basePrice, err := e.converter.Convert(rawMonthly, e.referenceCurrency, display)
	if err != nil {
		return nil, err
	}

	finalMonthly := currency.RoundCents(basePrice * (1 - discountRate))

	return &Quote{
		Sections:          sections,
		BasePrice:         basePrice,
		DiscountRate:      discountRate,
		DiscountAmount:    currency.RoundCents(basePrice - finalMonthly),
		FinalMonthlyPrice: finalMonthly,
		TotalPrice:        currency.RoundCents(finalMonthly * float64(in.DurationMonths)),
		Currency:          display,
	}, nil
}
