package currency

import (
	"errors"
	"math"

	"golang.org/x/text/currency"
)

// ConversionNotFoundError is returned when no rate exists between two
// recognized currencies.
type ConversionNotFoundError struct {
	FromCur string
	ToCur   string
}

func (e ConversionNotFoundError) Error() string {
	return "no conversion rate from " + e.FromCur + " to " + e.ToCur
}

// Rates holds a static exchange-rate table keyed as from -> to -> rate.
type Rates struct {
	Conversions map[string]map[string]float64
}

func NewRates(conversions map[string]map[string]float64) *Rates {
	return &Rates{Conversions: conversions}
}

// DefaultRates is the built-in table, pivoted on USD. Rates are point-in-time
// constants; quotes are indicative, billing settles in the reference currency.
func DefaultRates() *Rates {
	return NewRates(map[string]map[string]float64{
		"USD": {
			"EUR": 0.92,
			"GBP": 0.79,
			"CAD": 1.36,
			"AUD": 1.52,
			"JPY": 149.50,
			"INR": 83.20,
			"BRL": 4.97,
			"MXN": 17.10,
			"CHF": 0.88,
			"SEK": 10.45,
		},
	})
}

// GetRate returns the conversion rate between two ISO currency codes. It
// accepts either direction of a stored pair and falls back to routing through
// a currency both sides have a rate against.
func (r *Rates) GetRate(from, to string) (float64, error) {
	fromUnit, err := currency.ParseISO(from)
	if err != nil {
		return 0, err
	}
	toUnit, err := currency.ParseISO(to)
	if err != nil {
		return 0, err
	}
	if fromUnit.String() == toUnit.String() {
		return 1, nil
	}
	if r.Conversions == nil {
		return 0, errors.New("rates are nil")
	}

	if rate, ok := r.Conversions[fromUnit.String()][toUnit.String()]; ok {
		return rate, nil
	}
	if rate, ok := r.Conversions[toUnit.String()][fromUnit.String()]; ok {
		return 1 / rate, nil
	}

	// Route via an intermediate currency present on both sides.
	for _, conversions := range r.Conversions {
		toRate, hasTo := conversions[toUnit.String()]
		fromRate, hasFrom := conversions[fromUnit.String()]
		if hasTo && hasFrom {
			return toRate / fromRate, nil
		}
	}

	return 0, ConversionNotFoundError{FromCur: fromUnit.String(), ToCur: toUnit.String()}
}

// Converter converts money amounts between currencies using a fixed table.
type Converter struct {
	rates *Rates
}

func NewConverter(rates *Rates) *Converter {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Converter{rates: rates}
}

// Convert returns amount expressed in the target currency, rounded to cents.
func (c *Converter) Convert(amount float64, from, to string) (float64, error) {
	rate, err := c.rates.GetRate(from, to)
	if err != nil {
		return 0, err
	}
	return RoundCents(amount * rate), nil
}

// Supported lists the currency codes the default table can convert between.
func (c *Converter) Supported() []string {
	seen := map[string]bool{}
	var out []string
	for from, conversions := range c.rates.Conversions {
		if !seen[from] {
			seen[from] = true
			out = append(out, from)
		}
		for to := range conversions {
			if !seen[to] {
				seen[to] = true
				out = append(out, to)
			}
		}
	}
	return out
}

// RoundCents rounds to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
