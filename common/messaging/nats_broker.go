package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/config"
	"github.com/LexiconIndonesia/country-currency-service/common/constants"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// NatsBroker publishes catalog events to NATS, through JetStream when enabled
type NatsBroker struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.Config
}

// NewNatsBroker creates a new NATS message broker
func NewNatsBroker(cfg config.Config) (*NatsBroker, error) {
	client := &NatsBroker{
		config: cfg,
	}

	if err := client.connect(); err != nil {
		return nil, err
	}

	return client, nil
}

// connect connects to the NATS server
func (c *NatsBroker) connect() error {
	var err error

	opts := []nats.Option{
		nats.Name(common.AppName),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("server", nc.ConnectedUrl()).Msg("Reconnected to NATS")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info().Msg("NATS connection closed")
		}),
	}

	if c.config.Nats.Username != "" && c.config.Nats.Password != "" {
		opts = append(opts, nats.UserInfo(c.config.Nats.Username, c.config.Nats.Password))
	}

	c.conn, err = nats.Connect(c.config.Nats.URL(), opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	if c.config.Nats.JetStreamEnabled {
		js, err := jetstream.New(c.conn)
		if err != nil {
			c.conn.Close()
			return fmt.Errorf("failed to create JetStream context: %w", err)
		}
		c.js = js
	}

	log.Info().Str("server", c.conn.ConnectedUrl()).Bool("jetstream", c.js != nil).Msg("Connected to NATS")
	return nil
}

// Close drains the connection
func (c *NatsBroker) Close() error {
	if c.conn != nil && c.conn.IsConnected() {
		return c.conn.Drain()
	}
	return nil
}

// EnsureStream creates or updates the stream carrying every countries.* subject
func (c *NatsBroker) EnsureStream(ctx context.Context) error {
	if c.js == nil {
		return nil
	}

	streamConfig := jetstream.StreamConfig{
		Name:       c.config.Nats.StreamName,
		Subjects:   []string{constants.CountriesSubjects},
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     7 * 24 * time.Hour,
		Duplicates: 2 * time.Minute,
	}

	log.Info().
		Str("name", streamConfig.Name).
		Strs("subjects", streamConfig.Subjects).
		Msg("Attempting to create or update JetStream stream")

	if _, err := c.js.CreateOrUpdateStream(ctx, streamConfig); err != nil {
		return fmt.Errorf("failed to create stream %s: %w", streamConfig.Name, err)
	}
	return nil
}

// Publish sends data on subject. With JetStream it waits for the ack and
// deduplicates on msgID.
func (c *NatsBroker) Publish(ctx context.Context, subject, msgID string, data []byte) error {
	if c.conn == nil {
		return errors.New("NATS connection not initialized")
	}

	if c.js == nil {
		if err := c.conn.Publish(subject, data); err != nil {
			return fmt.Errorf("failed to publish message to %s: %w", subject, err)
		}
		return nil
	}

	if _, err := c.js.Publish(ctx, subject, data, jetstream.WithMsgID(msgID)); err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", subject, err)
	}

	log.Debug().Str("subject", subject).Str("msgID", msgID).Msg("Published message to NATS and received ack")
	return nil
}

// SetupNatsBroker connects and makes sure the stream exists
func SetupNatsBroker(ctx context.Context, cfg config.Config) (*NatsBroker, error) {
	client, err := NewNatsBroker(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating NATS client: %w", err)
	}

	if err := client.EnsureStream(ctx); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
