package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterStatusEmpty(t *testing.T) {
	status, err := NewReporter(newMemoryRepository()).Status(context.Background())
	require.NoError(t, err)
	assert.Zero(t, status.TotalCountries)
	assert.Nil(t, status.LastRefreshedAt)
}

func TestReporterStatus(t *testing.T) {
	repo := newMemoryRepository()
	older := country("France", "Europe", "EUR", 1)
	newer := country("Japan", "Asia", "JPY", 1)
	newer.LastRefreshedAt = older.LastRefreshedAt.Add(time.Hour)
	seed(t, repo, older, newer)

	status, err := NewReporter(repo).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalCountries)
	require.NotNil(t, status.LastRefreshedAt)
	assert.True(t, newer.LastRefreshedAt.Equal(*status.LastRefreshedAt))
}

func TestSummaryLines(t *testing.T) {
	generated := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	lines := SummaryLines(models.CatalogStatus{}, generated)
	assert.Equal(t, []string{
		"Total countries: 0",
		"Last refreshed: N/A",
		"Generated: 2025-03-04T05:06:07Z",
	}, lines)

	refreshed := generated.Add(-time.Hour + 123456*time.Microsecond)
	lines = SummaryLines(models.CatalogStatus{TotalCountries: 250, LastRefreshedAt: &refreshed}, generated)
	assert.Equal(t, "Total countries: 250", lines[0])
	assert.Equal(t, "Last refreshed: 2025-03-04T04:06:07.123456Z", lines[1])

	// The image shows the same instant the status endpoint serializes.
	encoded, err := json.Marshal(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "Last refreshed: "+strings.Trim(string(encoded), `"`), lines[1])
}

func TestRenderImage(t *testing.T) {
	repo := newMemoryRepository()
	seed(t, repo, country("France", "Europe", "EUR", 1))

	data, err := NewReporter(repo).RenderImage(context.Background())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, SummaryImageWidth, img.Bounds().Dx())
	assert.Equal(t, SummaryImageHeight, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestRenderImageStorageFailure(t *testing.T) {
	repo := newMemoryRepository()
	repo.failWith = errors.New("db down")

	_, err := NewReporter(repo).RenderImage(context.Background())
	assert.Error(t, err)
}
