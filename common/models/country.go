package models

import (
	"strings"
	"time"
)

// Country is the single persisted catalog entity. Name is unique case-insensitively.
type Country struct {
	Name            string    `json:"name"`
	Capital         string    `json:"capital"`
	Region          string    `json:"region"`
	Population      int64     `json:"population"`
	CurrencyCode    *string   `json:"currency_code"`
	ExchangeRate    *float64  `json:"exchange_rate"`
	FlagURL         string    `json:"flag_url"`
	EstimatedGDP    float64   `json:"estimated_gdp"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// Key returns the case-insensitive natural key of the country.
func (c Country) Key() string {
	return NameKey(c.Name)
}

// NameKey folds a country name into its lookup key.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CountryFilter narrows a catalog listing. Empty fields do not filter.
type CountryFilter struct {
	Region   string
	Currency string
}

// UpsertOutcome tells the refresh run what a single write did.
type UpsertOutcome int

const (
	// UpsertCreated means no record with the name existed
	UpsertCreated UpsertOutcome = iota
	// UpsertUpdated means an existing record was fully replaced
	UpsertUpdated
	// UpsertStale means a newer run already wrote the record; nothing changed
	UpsertStale
)

func (o UpsertOutcome) String() string {
	switch o {
	case UpsertCreated:
		return "created"
	case UpsertUpdated:
		return "updated"
	case UpsertStale:
		return "stale"
	default:
		return "unknown"
	}
}
