package catalog

import (
	"context"
	"fmt"

	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/rs/zerolog/log"
)

// ObjectUploader stores a blob under bucket/objectName, such as GCSStorage.
type ObjectUploader interface {
	Upload(ctx context.Context, bucket, objectName string, content []byte, contentType string) (string, error)
}

// SnapshotArchiver uploads a freshly rendered summary image after each run.
type SnapshotArchiver struct {
	reporter *Reporter
	uploader ObjectUploader
	bucket   string
	object   string
}

// NewSnapshotArchiver creates a SnapshotArchiver
func NewSnapshotArchiver(reporter *Reporter, uploader ObjectUploader, bucket, object string) *SnapshotArchiver {
	return &SnapshotArchiver{
		reporter: reporter,
		uploader: uploader,
		bucket:   bucket,
		object:   object,
	}
}

// OnRefreshed implements RefreshObserver
func (a *SnapshotArchiver) OnRefreshed(ctx context.Context, result models.RefreshResult) error {
	image, err := a.reporter.RenderImage(ctx)
	if err != nil {
		return fmt.Errorf("rendering summary snapshot: %w", err)
	}

	name, err := a.uploader.Upload(ctx, a.bucket, a.object, image, "image/png")
	if err != nil {
		return fmt.Errorf("uploading summary snapshot: %w", err)
	}

	log.Info().
		Str("runID", result.RunID).
		Str("bucket", a.bucket).
		Str("object", name).
		Int("bytes", len(image)).
		Msg("Summary snapshot archived")
	return nil
}
