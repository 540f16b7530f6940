package handler

import (
	"context"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/stretchr/testify/mock"
)

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) Refresh(ctx context.Context) (models.RefreshResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RefreshResult), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context, filter models.CountryFilter, order common.SortOrder) ([]models.Country, error) {
	args := m.Called(ctx, filter, order)
	list, _ := args.Get(0).([]models.Country)
	return list, args.Error(1)
}

func (m *mockCatalog) Get(ctx context.Context, name string) (models.Country, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Country), args.Error(1)
}

func (m *mockCatalog) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Status(ctx context.Context) (models.CatalogStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CatalogStatus), args.Error(1)
}

func (m *mockReporter) RenderImage(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	image, _ := args.Get(0).([]byte)
	return image, args.Error(1)
}

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
