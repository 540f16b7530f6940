package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/config"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct{}

func (stubCatalog) Refresh(context.Context) (models.RefreshResult, error) {
	return models.RefreshResult{RefreshedCount: 1}, nil
}

func (stubCatalog) List(context.Context, models.CountryFilter, common.SortOrder) ([]models.Country, error) {
	return []models.Country{}, nil
}

func (stubCatalog) Get(_ context.Context, name string) (models.Country, error) {
	if name != "Nigeria" {
		return models.Country{}, common.ErrNotFound
	}
	return models.Country{Name: name}, nil
}

func (stubCatalog) Delete(_ context.Context, name string) error {
	if name != "Nigeria" {
		return common.ErrNotFound
	}
	return nil
}

func (stubCatalog) Status(context.Context) (models.CatalogStatus, error) {
	return models.CatalogStatus{}, nil
}

func (stubCatalog) RenderImage(context.Context) ([]byte, error) {
	return []byte("\x89PNG"), nil
}

func (stubCatalog) Ping(context.Context) error {
	return nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	stub := stubCatalog{}
	server, err := NewAppHttpServer(config.DefaultConfig(), Services{
		Refresher: stub,
		Catalog:   stub,
		Reporter:  stub,
		Database:  stub,
	})
	require.NoError(t, err)
	return server.Handler()
}

func TestRoutesAcceptOptionalTrailingSlash(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodPost, "/countries/refresh/", http.StatusOK},
		{http.MethodPost, "/countries/refresh", http.StatusOK},
		{http.MethodGet, "/countries/", http.StatusOK},
		{http.MethodGet, "/countries", http.StatusOK},
		{http.MethodGet, "/countries/Nigeria/", http.StatusOK},
		{http.MethodGet, "/countries/Nigeria", http.StatusOK},
		{http.MethodGet, "/countries/Atlantis/", http.StatusNotFound},
		{http.MethodDelete, "/countries/Nigeria", http.StatusNoContent},
		{http.MethodDelete, "/countries/Nigeria/", http.StatusNoContent},
		{http.MethodGet, "/countries/image/", http.StatusOK},
		{http.MethodGet, "/status/", http.StatusOK},
		{http.MethodGet, "/status", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/health/database", http.StatusOK},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.status, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestNewAppHttpServerRequiresServices(t *testing.T) {
	_, err := NewAppHttpServer(config.DefaultConfig(), Services{})
	assert.Error(t, err)
}
