package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repository needs
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const countryColumns = `name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at`

// The WHERE clause keeps last_refreshed_at monotonic when runs overlap.
const upsertCountrySQL = `
	INSERT INTO countries (` + countryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT ((lower(name))) DO UPDATE
	SET name = EXCLUDED.name,
	    capital = EXCLUDED.capital,
	    region = EXCLUDED.region,
	    population = EXCLUDED.population,
	    currency_code = EXCLUDED.currency_code,
	    exchange_rate = EXCLUDED.exchange_rate,
	    estimated_gdp = EXCLUDED.estimated_gdp,
	    flag_url = EXCLUDED.flag_url,
	    last_refreshed_at = EXCLUDED.last_refreshed_at
	WHERE countries.last_refreshed_at <= EXCLUDED.last_refreshed_at
	RETURNING (xmax = 0) AS inserted
`

const getCountrySQL = `
	SELECT ` + countryColumns + `
	FROM countries
	WHERE lower(name) = lower($1)
	LIMIT 1
`

const listCountriesSQL = `
	SELECT ` + countryColumns + `
	FROM countries
	WHERE ($1::text = '' OR lower(region) = lower($1::text))
	  AND ($2::text = '' OR lower(currency_code) = lower($2::text))
	ORDER BY id ASC
`

const deleteCountrySQL = `DELETE FROM countries WHERE lower(name) = lower($1)`

const statusSQL = `SELECT count(*), max(last_refreshed_at) FROM countries`

// CountryRepository is a PostgreSQL implementation of CountryService
type CountryRepository struct {
	db DBTX
}

// NewCountryRepository creates a new PostgreSQL CountryRepository
func NewCountryRepository(db DBTX) CountryService {
	return &CountryRepository{
		db: db,
	}
}

// Upsert writes the whole record in one statement keyed by lower(name)
func (r *CountryRepository) Upsert(ctx context.Context, c models.Country) (models.UpsertOutcome, error) {
	var inserted bool
	err := r.db.QueryRow(ctx, upsertCountrySQL,
		c.Name,
		c.Capital,
		c.Region,
		c.Population,
		c.CurrencyCode,
		c.ExchangeRate,
		c.EstimatedGDP,
		c.FlagURL,
		c.LastRefreshedAt,
	).Scan(&inserted)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UpsertStale, nil
	}
	if err != nil {
		return 0, fmt.Errorf("upserting country %q: %w: %w", c.Name, common.ErrStorage, err)
	}

	if inserted {
		return models.UpsertCreated, nil
	}
	return models.UpsertUpdated, nil
}

// GetByName gets a country by name
func (r *CountryRepository) GetByName(ctx context.Context, name string) (models.Country, error) {
	country, err := scanCountry(r.db.QueryRow(ctx, getCountrySQL, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Country{}, common.ErrNotFound
	}
	if err != nil {
		return models.Country{}, fmt.Errorf("getting country %q: %w: %w", name, common.ErrStorage, err)
	}

	return country, nil
}

// List gets countries matching the filter in insertion order
func (r *CountryRepository) List(ctx context.Context, filter models.CountryFilter) ([]models.Country, error) {
	rows, err := r.db.Query(ctx, listCountriesSQL, filter.Region, filter.Currency)
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning country: %w: %w", common.ErrStorage, err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing countries: %w: %w", common.ErrStorage, err)
	}

	return countries, nil
}

// Delete deletes a country by name
func (r *CountryRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, deleteCountrySQL, name)
	if err != nil {
		return fmt.Errorf("deleting country %q: %w: %w", name, common.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}

	return nil
}

// Status counts countries and reports the latest refresh time
func (r *CountryRepository) Status(ctx context.Context) (models.CatalogStatus, error) {
	var status models.CatalogStatus
	if err := r.db.QueryRow(ctx, statusSQL).Scan(&status.TotalCountries, &status.LastRefreshedAt); err != nil {
		return models.CatalogStatus{}, fmt.Errorf("reading catalog status: %w: %w", common.ErrStorage, err)
	}

	return status, nil
}

func scanCountry(row pgx.Row) (models.Country, error) {
	var c models.Country
	err := row.Scan(
		&c.Name,
		&c.Capital,
		&c.Region,
		&c.Population,
		&c.CurrencyCode,
		&c.ExchangeRate,
		&c.EstimatedGDP,
		&c.FlagURL,
		&c.LastRefreshedAt,
	)
	return c, err
}
