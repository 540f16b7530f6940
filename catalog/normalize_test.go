package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	rates := Rates{"NGN": 1600.23, "EUR": 0.92}

	t.Run("full entry", func(t *testing.T) {
		c, ok := Normalize(raw("Nigeria", "Africa", "ngn", 206139589), rates)
		require.True(t, ok)
		assert.Equal(t, "Nigeria", c.Name)
		assert.Equal(t, "Africa", c.Region)
		assert.Equal(t, int64(206139589), c.Population)
		require.NotNil(t, c.CurrencyCode)
		assert.Equal(t, "NGN", *c.CurrencyCode)
		require.NotNil(t, c.ExchangeRate)
		assert.InDelta(t, 1600.23, *c.ExchangeRate, 1e-9)
		assert.Zero(t, c.EstimatedGDP)
	})

	t.Run("missing name is discarded", func(t *testing.T) {
		_, ok := Normalize(raw("   ", "Africa", "NGN", 10), rates)
		assert.False(t, ok)
	})

	t.Run("no currencies", func(t *testing.T) {
		c, ok := Normalize(raw("Antarctica", "Polar", "", 1000), rates)
		require.True(t, ok)
		assert.Nil(t, c.CurrencyCode)
		assert.Nil(t, c.ExchangeRate)
	})

	t.Run("unknown currency keeps code without rate", func(t *testing.T) {
		c, ok := Normalize(raw("Wakanda", "Africa", "WKD", 6000000), rates)
		require.True(t, ok)
		require.NotNil(t, c.CurrencyCode)
		assert.Equal(t, "WKD", *c.CurrencyCode)
		assert.Nil(t, c.ExchangeRate)
	})

	t.Run("only first currency is used", func(t *testing.T) {
		r := raw("Zimbabwe", "Africa", "", 100)
		r.Currencies = []RawCurrency{{Code: "ZWL"}, {Code: "EUR"}}
		c, ok := Normalize(r, rates)
		require.True(t, ok)
		assert.Equal(t, "ZWL", *c.CurrencyCode)
		assert.Nil(t, c.ExchangeRate)
	})
}

func TestRawCountryDecoding(t *testing.T) {
	doc := `{
		"name": {"common": "Peru"},
		"capital": ["Lima", "Cusco"],
		"region": "Americas",
		"population": "32971846.7",
		"flag": null,
		"currencies": [{"code": "PEN", "name": "Sol"}]
	}`

	var r RawCountry
	require.NoError(t, json.Unmarshal([]byte(doc), &r))
	assert.Equal(t, "Peru", r.Name.String())
	assert.Equal(t, "Lima", r.Capital.String())
	assert.Equal(t, "Americas", r.Region.String())
	assert.Equal(t, flexInt(32971846), r.Population)
	assert.Equal(t, "", r.Flag.String())
	require.Len(t, r.Currencies, 1)
	assert.Equal(t, "PEN", r.Currencies[0].Code)
}

func TestFlexIntCoercion(t *testing.T) {
	tests := []struct {
		input string
		want  flexInt
	}{
		{`42`, 42},
		{`"42"`, 42},
		{`12.9`, 12},
		{`-5`, 0},
		{`"lots"`, 0},
		{`null`, 0},
		{`true`, 0},
	}

	for _, tt := range tests {
		var got flexInt
		require.NoError(t, json.Unmarshal([]byte(tt.input), &got), tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestRatesLookup(t *testing.T) {
	rates := Rates{"USD": 1, "ZERO": 0, "NEG": -3, "INF": math.Inf(1)}

	rate, ok := rates.Lookup(" usd ").Get()
	assert.True(t, ok)
	assert.Equal(t, 1.0, rate)

	for _, code := range []string{"ZERO", "NEG", "INF", "GBP", ""} {
		assert.True(t, rates.Lookup(code).IsAbsent(), code)
	}
}
