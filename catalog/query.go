package catalog

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/LexiconIndonesia/country-currency-service/common/services"
	"github.com/rs/zerolog/log"
)

// DeleteObserver is told about every deleted country. Errors are logged only.
type DeleteObserver interface {
	OnDeleted(ctx context.Context, name string, at time.Time) error
}

// Catalog is the read and delete surface over the committed records.
type Catalog struct {
	repo      services.CountryService
	observers []DeleteObserver
}

// NewCatalog creates a Catalog
func NewCatalog(repo services.CountryService, observers ...DeleteObserver) *Catalog {
	return &Catalog{
		repo:      repo,
		observers: observers,
	}
}

// List filters by region and currency (case-insensitive exact match) and
// then orders by estimated GDP. SortNone keeps storage order.
func (c *Catalog) List(ctx context.Context, filter models.CountryFilter, order common.SortOrder) ([]models.Country, error) {
	filter.Region = strings.TrimSpace(filter.Region)
	filter.Currency = strings.TrimSpace(filter.Currency)

	countries, err := c.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	switch order {
	case common.SortGDPDesc:
		slices.SortStableFunc(countries, func(a, b models.Country) int {
			return cmp.Compare(b.EstimatedGDP, a.EstimatedGDP)
		})
	case common.SortGDPAsc:
		slices.SortStableFunc(countries, func(a, b models.Country) int {
			return cmp.Compare(a.EstimatedGDP, b.EstimatedGDP)
		})
	}

	if countries == nil {
		countries = []models.Country{}
	}
	return countries, nil
}

// Get returns common.ErrNotFound when no country has the name.
func (c *Catalog) Get(ctx context.Context, name string) (models.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Country{}, common.ErrNotFound
	}
	return c.repo.GetByName(ctx, name)
}

// Delete removes the country permanently. It returns common.ErrNotFound
// when no country has the name.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrNotFound
	}

	if err := c.repo.Delete(ctx, name); err != nil {
		return err
	}

	log.Info().Str("country", name).Msg("Country deleted")

	at := time.Now().UTC()
	for _, observer := range c.observers {
		if err := observer.OnDeleted(ctx, name, at); err != nil {
			log.Warn().Err(err).Str("country", name).Msg("Delete observer failed")
		}
	}
	return nil
}
