package catalog

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/LexiconIndonesia/country-currency-service/common/services"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	// SummaryImageWidth is the width of the rendered summary
	SummaryImageWidth = 800
	// SummaryImageHeight is the height of the rendered summary
	SummaryImageHeight = 200

	summaryMarginX     = 20
	summaryLineY       = 40
	summaryPlaceholder = "N/A"
)

// Reporter reports aggregate catalog state.
type Reporter struct {
	repo services.CountryService
	now  func() time.Time
}

// NewReporter creates a Reporter
func NewReporter(repo services.CountryService) *Reporter {
	return &Reporter{
		repo: repo,
		now:  time.Now,
	}
}

// Status returns the record count and the latest refresh time, nil when empty.
func (r *Reporter) Status(ctx context.Context) (models.CatalogStatus, error) {
	status, err := r.repo.Status(ctx)
	if err != nil {
		return models.CatalogStatus{}, err
	}
	if status.LastRefreshedAt != nil {
		utc := status.LastRefreshedAt.UTC()
		status.LastRefreshedAt = &utc
	}
	return status, nil
}

// RenderImage renders the current status as a PNG.
func (r *Reporter) RenderImage(ctx context.Context) ([]byte, error) {
	status, err := r.Status(ctx)
	if err != nil {
		return nil, err
	}
	return RenderSummary(status, r.now().UTC())
}

// SummaryLines are the three text lines drawn on the summary image.
func SummaryLines(status models.CatalogStatus, generatedAt time.Time) []string {
	lastRefreshed := summaryPlaceholder
	if status.LastRefreshedAt != nil {
		lastRefreshed = status.LastRefreshedAt.UTC().Format(time.RFC3339Nano)
	}

	return []string{
		fmt.Sprintf("Total countries: %d", status.TotalCountries),
		fmt.Sprintf("Last refreshed: %s", lastRefreshed),
		fmt.Sprintf("Generated: %s", generatedAt.UTC().Format(time.RFC3339Nano)),
	}
}

// RenderSummary draws black text on a white 800x200 canvas in the default
// bitmap font and encodes it as PNG.
func RenderSummary(status models.CatalogStatus, generatedAt time.Time) ([]byte, error) {
	dc := gg.NewContext(SummaryImageWidth, SummaryImageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	for i, line := range SummaryLines(status, generatedAt) {
		dc.DrawString(line, summaryMarginX, float64(summaryLineY*(i+1)))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding summary image: %w", err)
	}
	return buf.Bytes(), nil
}
