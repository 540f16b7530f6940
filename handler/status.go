package handler

import (
	"net/http"

	"github.com/LexiconIndonesia/country-currency-service/common/utils"
	"github.com/go-chi/chi/v5"
)

type StatusHandler struct {
	reporter Reporter
	router   *chi.Mux
}

func NewStatusHandler(reporter Reporter) *StatusHandler {
	h := &StatusHandler{
		reporter: reporter,
	}

	r := chi.NewRouter()
	r.Get("/", h.handleStatus)

	h.router = r
	return h
}

func (h *StatusHandler) Router() *chi.Mux {
	return h.router
}

// handleStatus godoc
// @Summary     Catalog status
// @Tags        status
// @Produce     json
// @Success     200 {object} models.CatalogStatus
// @Failure     500 {object} models.ErrorResponse
// @Router      /status/ [get]
func (h *StatusHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.reporter.Status(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, status)
}
