package catalog

import (
	"context"
	"sync"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/samber/lo"
)

// memoryRepository mirrors the Postgres repository: case-insensitive names,
// insertion order and the stale-run guard.
type memoryRepository struct {
	mu       sync.Mutex
	order    []string
	records  map[string]models.Country
	failWith error
	failFor  map[string]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		records: map[string]models.Country{},
		failFor: map[string]bool{},
	}
}

func (m *memoryRepository) Upsert(_ context.Context, c models.Country) (models.UpsertOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return 0, m.failWith
	}
	key := c.Key()
	if m.failFor[key] {
		return 0, common.ErrStorage
	}

	existing, ok := m.records[key]
	if !ok {
		m.order = append(m.order, key)
		m.records[key] = c
		return models.UpsertCreated, nil
	}
	if existing.LastRefreshedAt.After(c.LastRefreshedAt) {
		return models.UpsertStale, nil
	}
	m.records[key] = c
	return models.UpsertUpdated, nil
}

func (m *memoryRepository) GetByName(_ context.Context, name string) (models.Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return models.Country{}, m.failWith
	}
	c, ok := m.records[models.NameKey(name)]
	if !ok {
		return models.Country{}, common.ErrNotFound
	}
	return c, nil
}

func (m *memoryRepository) List(_ context.Context, filter models.CountryFilter) ([]models.Country, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []models.Country
	for _, key := range m.order {
		c, ok := m.records[key]
		if !ok {
			continue
		}
		if filter.Region != "" && models.NameKey(c.Region) != models.NameKey(filter.Region) {
			continue
		}
		if filter.Currency != "" && models.NameKey(lo.FromPtr(c.CurrencyCode)) != models.NameKey(filter.Currency) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryRepository) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	key := models.NameKey(name)
	if _, ok := m.records[key]; !ok {
		return common.ErrNotFound
	}
	delete(m.records, key)
	m.order = lo.Without(m.order, key)
	return nil
}

func (m *memoryRepository) Status(_ context.Context) (models.CatalogStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return models.CatalogStatus{}, m.failWith
	}
	status := models.CatalogStatus{TotalCountries: int64(len(m.records))}
	for _, c := range m.records {
		if status.LastRefreshedAt == nil || c.LastRefreshedAt.After(*status.LastRefreshedAt) {
			at := c.LastRefreshedAt
			status.LastRefreshedAt = &at
		}
	}
	return status, nil
}

// staticSource serves fixed documents.
type staticSource struct {
	countries []RawCountry
	err       error
	rates     Rates
}

func (s *staticSource) FetchCountries(context.Context) ([]RawCountry, error) {
	return s.countries, s.err
}

func (s *staticSource) FetchExchangeRates(context.Context) Rates {
	if s.rates == nil {
		return Rates{}
	}
	return s.rates
}

func raw(name, region, code string, population int64) RawCountry {
	r := RawCountry{
		Name:       flexString(name),
		Capital:    flexString(name + " City"),
		Region:     flexString(region),
		Population: flexInt(population),
		Flag:       flexString("https://flags.example/" + name + ".svg"),
	}
	if code != "" {
		r.Currencies = []RawCurrency{{Code: code}}
	}
	return r
}

// fixedEstimator always draws the same multiplier.
func fixedEstimator(multiplier int) *Estimator {
	return NewEstimatorWithSource(func(int) int { return multiplier - MinMultiplier })
}
