package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common/constants"
	"github.com/LexiconIndonesia/country-currency-service/common/models"
	"github.com/google/uuid"
)

// Publisher is the part of NatsBroker the event bridge uses
type Publisher interface {
	Publish(ctx context.Context, subject, msgID string, data []byte) error
}

// CatalogEvents announces catalog changes on NATS subjects
type CatalogEvents struct {
	publisher Publisher
}

// NewCatalogEvents creates the event bridge
func NewCatalogEvents(publisher Publisher) *CatalogEvents {
	return &CatalogEvents{publisher: publisher}
}

// OnRefreshed publishes countries.refreshed. The run ID doubles as the dedup ID.
func (e *CatalogEvents) OnRefreshed(ctx context.Context, result models.RefreshResult) error {
	msg := CountriesRefreshedMessage{
		RunID:           result.RunID,
		RefreshedCount:  result.RefreshedCount,
		Created:         result.Created,
		Updated:         result.Updated,
		LastRefreshedAt: result.LastRefreshedAt,
	}
	return e.publish(ctx, constants.CountriesRefreshedSubject, result.RunID, msg)
}

// OnDeleted publishes countries.deleted
func (e *CatalogEvents) OnDeleted(ctx context.Context, name string, at time.Time) error {
	msg := CountryDeletedMessage{
		Name:      name,
		DeletedAt: at,
	}
	return e.publish(ctx, constants.CountriesDeletedSubject, uuid.NewString(), msg)
}

func (e *CatalogEvents) publish(ctx context.Context, subject, msgID string, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", subject, err)
	}
	return e.publisher.Publish(ctx, subject, msgID, data)
}
