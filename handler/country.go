package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/LexiconIndonesia/country-currency-service/common/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	msgRefreshed       = "Countries refreshed"
	msgSourceFailed    = "Failed to fetch countries source"
	msgCountryNotFound = "Country not found"
	msgStorageFailed   = "Failed to access country catalog"
	msgImageFailed     = "Failed to render summary image"
)

// Refresher runs one catalog refresh.
type Refresher interface {
	Refresh(ctx context.Context) (models.RefreshResult, error)
}

// Catalog reads and deletes committed countries.
type Catalog interface {
	List(ctx context.Context, filter models.CountryFilter, order common.SortOrder) ([]models.Country, error)
	Get(ctx context.Context, name string) (models.Country, error)
	Delete(ctx context.Context, name string) error
}

// Reporter reports aggregate catalog state.
type Reporter interface {
	Status(ctx context.Context) (models.CatalogStatus, error)
	RenderImage(ctx context.Context) ([]byte, error)
}

type CountryHandler struct {
	refresher Refresher
	catalog   Catalog
	reporter  Reporter
	router    *chi.Mux
}

func NewCountryHandler(refresher Refresher, catalog Catalog, reporter Reporter) *CountryHandler {
	h := &CountryHandler{
		refresher: refresher,
		catalog:   catalog,
		reporter:  reporter,
	}

	r := chi.NewRouter()
	r.Get("/", h.handleListCountries)
	r.Post("/refresh", h.handleRefresh)
	r.Get("/image", h.handleImage)
	r.Get("/{name}", h.handleGetCountry)
	r.Delete("/{name}", h.handleDeleteCountry)

	h.router = r
	return h
}

func (h *CountryHandler) Router() *chi.Mux {
	return h.router
}

// handleRefresh godoc
// @Summary     Refresh the country catalog
// @Description Fetches both sources and upserts every named country
// @Tags        countries
// @Produce     json
// @Success     200 {object} models.RefreshResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /countries/refresh/ [post]
func (h *CountryHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refresher.Refresh(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.RefreshResponse{
		Message:         msgRefreshed,
		RefreshedCount:  result.RefreshedCount,
		LastRefreshedAt: result.LastRefreshedAt,
	})
}

// handleListCountries godoc
// @Summary     List countries
// @Tags        countries
// @Produce     json
// @Param       region   query string false "Region, case-insensitive"
// @Param       currency query string false "Currency code, case-insensitive"
// @Param       sort     query string false "gdp_desc or gdp_asc"
// @Success     200 {array}  models.Country
// @Failure     500 {object} models.ErrorResponse
// @Router      /countries/ [get]
func (h *CountryHandler) handleListCountries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.CountryFilter{
		Region:   query.Get("region"),
		Currency: query.Get("currency"),
	}

	countries, err := h.catalog.List(r.Context(), filter, common.ParseSortOrder(query.Get("sort")))
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, countries)
}

// handleGetCountry godoc
// @Summary     Get one country
// @Tags        countries
// @Produce     json
// @Param       name path string true "Country name, case-insensitive"
// @Success     200 {object} models.Country
// @Failure     404 {object} models.ErrorResponse
// @Router      /countries/{name}/ [get]
func (h *CountryHandler) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	country, err := h.catalog.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, country)
}

// handleDeleteCountry godoc
// @Summary     Delete one country
// @Tags        countries
// @Param       name path string true "Country name, case-insensitive"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Router      /countries/{name} [delete]
func (h *CountryHandler) handleDeleteCountry(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeCatalogError(w, err)
		return
	}

	utils.WriteNoContent(w)
}

// handleImage godoc
// @Summary     Summary image
// @Tags        countries
// @Produce     png
// @Success     200 {file} binary
// @Failure     500 {object} models.ErrorResponse
// @Router      /countries/image/ [get]
func (h *CountryHandler) handleImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.reporter.RenderImage(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to render summary image")
		utils.WriteError(w, http.StatusInternalServerError, msgImageFailed)
		return
	}

	utils.WritePNG(w, http.StatusOK, image)
}

// writeCatalogError maps catalog sentinels to status codes.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, msgCountryNotFound)
	case errors.Is(err, common.ErrUpstreamUnavailable):
		utils.WriteError(w, http.StatusBadGateway, msgSourceFailed)
	default:
		log.Error().Err(err).Msg("Catalog request failed")
		utils.WriteError(w, http.StatusInternalServerError, msgStorageFailed)
	}
}

