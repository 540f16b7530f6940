package catalog

import (
	"strings"

	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/samber/lo"
)

// Normalize turns one raw entry into a candidate record without an estimate
// or timestamp. ok is false for entries without a name.
func Normalize(raw RawCountry, rates Rates) (country models.Country, ok bool) {
	name := raw.Name.String()
	if name == "" {
		return models.Country{}, false
	}

	country = models.Country{
		Name:       name,
		Capital:    raw.Capital.String(),
		Region:     raw.Region.String(),
		Population: int64(raw.Population),
		FlagURL:    raw.Flag.String(),
	}

	code := firstCurrencyCode(raw.Currencies)
	if code == "" {
		return country, true
	}
	country.CurrencyCode = lo.ToPtr(code)

	if rate, found := rates.Lookup(code).Get(); found {
		country.ExchangeRate = lo.ToPtr(rate)
	}

	return country, true
}

// firstCurrencyCode only looks at the first declared currency.
func firstCurrencyCode(currencies []RawCurrency) string {
	first, ok := lo.First(currencies)
	if !ok {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(first.Code))
}
