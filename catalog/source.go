package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/config"
	"github.com/rs/zerolog/log"
	"github.com/samber/mo"
)

// maxSourceBody caps how much of an upstream response is read.
const maxSourceBody = 32 << 20

// Source provides the two upstream documents a refresh run needs.
type Source interface {
	// FetchCountries fails with common.ErrUpstreamUnavailable when the list cannot be obtained.
	FetchCountries(ctx context.Context) ([]RawCountry, error)
	// FetchExchangeRates never fails; an unreachable source yields empty Rates.
	FetchExchangeRates(ctx context.Context) Rates
}

// RawCountry is one entry of the country metadata document.
type RawCountry struct {
	Name       flexString    `json:"name"`
	Capital    flexString    `json:"capital"`
	Region     flexString    `json:"region"`
	Population flexInt       `json:"population"`
	Flag       flexString    `json:"flag"`
	Currencies []RawCurrency `json:"currencies"`
}

// RawCurrency is one declared currency of a RawCountry.
type RawCurrency struct {
	Code string `json:"code"`
}

// Rates maps upper-cased currency codes to units per base currency.
type Rates map[string]float64

// Lookup resolves code case-insensitively. Zero, negative and non-finite
// rates are not meaningful and resolve to None.
func (r Rates) Lookup(code string) mo.Option[float64] {
	rate, ok := r[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || !validRate(rate) {
		return mo.None[float64]()
	}
	return mo.Some(rate)
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}

// flexString accepts a string, the first string of an array, or an object
// carrying a "common" name. Anything else decodes to "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	*f = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '[':
		var list []flexString
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			*f = list[0]
		}
	case '{':
		var named struct {
			Common string `json:"common"`
		}
		if err := json.Unmarshal(data, &named); err != nil {
			return err
		}
		*f = flexString(named.Common)
	}
	return nil
}

func (f flexString) String() string {
	return strings.TrimSpace(string(f))
}

// flexInt accepts a JSON number or a numeric string. Fractions truncate;
// negative and non-numeric values decode to 0.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || n <= 0 {
		return nil
	}
	if n >= math.MaxInt64 {
		*f = flexInt(math.MaxInt64)
		return nil
	}
	*f = flexInt(int64(n))
	return nil
}

// HTTPSource fetches both documents over HTTP with a fixed timeout per call.
type HTTPSource struct {
	client       *http.Client
	countriesURL string
	ratesURL     string
	timeout      time.Duration
}

// NewHTTPSource builds a source from the configured URLs and timeout.
func NewHTTPSource(cfg config.Config) *HTTPSource {
	return NewHTTPSourceWithClient(&http.Client{Timeout: cfg.Sources.Timeout}, cfg.Sources.CountriesURL, cfg.Sources.ExchangeRatesURL, cfg.Sources.Timeout)
}

// NewHTTPSourceWithClient is NewHTTPSource with a caller-provided client.
func NewHTTPSourceWithClient(client *http.Client, countriesURL, ratesURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client:       client,
		countriesURL: countriesURL,
		ratesURL:     ratesURL,
		timeout:      timeout,
	}
}

// FetchCountries downloads the country list. Entries that are not decodable
// objects are dropped; the list itself must be a JSON array.
func (s *HTTPSource) FetchCountries(ctx context.Context) ([]RawCountry, error) {
	var elements []json.RawMessage
	if err := s.getJSON(ctx, s.countriesURL, &elements); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUpstreamUnavailable, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("%w: empty document", common.ErrUpstreamUnavailable)
	}

	countries := make([]RawCountry, 0, len(elements))
	for i, element := range elements {
		var raw RawCountry
		if err := json.Unmarshal(element, &raw); err != nil {
			log.Debug().Err(err).Int("index", i).Msg("Dropping malformed country entry")
			continue
		}
		countries = append(countries, raw)
	}

	log.Info().
		Int("entries", len(elements)).
		Int("decoded", len(countries)).
		Msg("Fetched country source")

	return countries, nil
}

// FetchExchangeRates downloads the rate document. Failures are logged and
// produce an empty mapping.
func (s *HTTPSource) FetchExchangeRates(ctx context.Context) Rates {
	var doc struct {
		Rates map[string]json.RawMessage `json:"rates"`
	}
	if err := s.getJSON(ctx, s.ratesURL, &doc); err != nil {
		log.Warn().Err(err).Msg("Exchange rate source unavailable, estimates degrade to zero")
		return Rates{}
	}

	rates := make(Rates, len(doc.Rates))
	for code, raw := range doc.Rates {
		var rate float64
		if err := json.Unmarshal(raw, &rate); err != nil {
			log.Debug().Str("code", code).Msg("Ignoring non-numeric exchange rate")
			continue
		}
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}

	log.Info().Int("rates", len(rates)).Msg("Fetched exchange rate source")
	return rates
}

func (s *HTTPSource) getJSON(ctx context.Context, url string, v any) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("requesting %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSourceBody)).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}
