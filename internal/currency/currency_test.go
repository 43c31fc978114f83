package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRate(t *testing.T) {
	rates := DefaultRates()

	t.Run("same currency", func(t *testing.T) {
		rate, err := rates.GetRate("USD", "USD")
		require.NoError(t, err)
		assert.Equal(t, 1.0, rate)
	})

	t.Run("direct", func(t *testing.T) {
		rate, err := rates.GetRate("USD", "EUR")
		require.NoError(t, err)
		assert.Equal(t, 0.92, rate)
	})

	t.Run("reciprocal", func(t *testing.T) {
		rate, err := rates.GetRate("EUR", "USD")
		require.NoError(t, err)
		assert.InDelta(t, 1/0.92, rate, 1e-9)
	})

	t.Run("intermediate via USD", func(t *testing.T) {
		rate, err := rates.GetRate("EUR", "GBP")
		require.NoError(t, err)
		assert.InDelta(t, 0.79/0.92, rate, 1e-9)
	})

	t.Run("unparseable code", func(t *testing.T) {
		_, err := rates.GetRate("NOTACODE", "USD")
		assert.Error(t, err)
	})

	t.Run("no route", func(t *testing.T) {
		sparse := NewRates(map[string]map[string]float64{"USD": {"EUR": 0.92}})
		_, err := sparse.GetRate("USD", "JPY")
		require.Error(t, err)
		assert.IsType(t, ConversionNotFoundError{}, err)
	})
}

func TestConvertRoundsToCents(t *testing.T) {
	c := NewConverter(DefaultRates())

	got, err := c.Convert(100, "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, 14950.0, got)

	got, err = c.Convert(33.333, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 30.67, got)
}

func TestSupported(t *testing.T) {
	c := NewConverter(DefaultRates())
	supported := c.Supported()

	assert.Contains(t, supported, "USD")
	assert.Contains(t, supported, "EUR")
	assert.Contains(t, supported, "JPY")
	assert.Len(t, supported, 11)
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{1.004, 1.0},
		{0, 0},
		{-2.346, -2.35},
		{99.999, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundCents(tt.in), "RoundCents(%v)", tt.in)
	}
}
