package services

import (
	"context"

	"github.com/LexiconIndonesia/country-currency-service/common/models"
)

// CountryService defines the interface for country catalog database operations.
// Names are matched case-insensitively everywhere.
type CountryService interface {
	// Upsert creates the country or fully replaces the stored one in a single atomic write
	Upsert(ctx context.Context, country models.Country) (models.UpsertOutcome, error)

	// GetByName gets a country by name
	GetByName(ctx context.Context, name string) (models.Country, error)

	// List gets countries matching the filter in storage order
	List(ctx context.Context, filter models.CountryFilter) ([]models.Country, error)

	// Delete deletes a country by name
	Delete(ctx context.Context, name string) error

	// Status counts countries and reports the latest refresh time
	Status(ctx context.Context) (models.CatalogStatus, error)
}
