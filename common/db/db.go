package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common/config"
	"github.com/LexiconIndonesia/country-currency-service/common/redis"
	"github.com/LexiconIndonesia/country-currency-service/common/services"
	zerolog "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/rs/zerolog/log"
)

// DB provides access to the database
type DB struct {
	Pool      *pgxpool.Pool
	Countries services.CountryService
	Redis     *redis.RedisClient
}

// New creates a new DB instance. redis may be nil when the lock is disabled.
func New(pool *pgxpool.Pool, redis *redis.RedisClient) (*DB, error) {
	if pool == nil {
		return nil, errors.New("cannot use nil database pool")
	}
	return &DB{
		Pool:      pool,
		Countries: services.NewCountryRepository(pool),
		Redis:     redis,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() {
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// SetupDatabase migrates the schema and initializes the connection pool
func SetupDatabase(ctx context.Context, cfg config.Config) (*DB, error) {
	if err := RunMigrations(cfg.PgSql.URL()); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.PgSql.ConnStr())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolConfig.MaxConns = int32(max(cfg.Refresh.Workers+4, 8))
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	logger := zerolog.NewLogger(log.Logger)
	poolConfig.ConnConfig.Tracer = NewFilteredTracer(&tracelog.TraceLog{
		Logger:   logger,
		LogLevel: tracelog.LogLevelInfo,
	}, migrationsTable)

	pgsqlClient, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := pgsqlClient.Ping(ctx); err != nil {
		pgsqlClient.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	var redisClient *redis.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg)
		if err != nil {
			pgsqlClient.Close()
			return nil, fmt.Errorf("creating Redis client: %w", err)
		}
	}

	dbConn, err := New(pgsqlClient, redisClient)
	if err != nil {
		return nil, fmt.Errorf("creating DB handler: %w", err)
	}

	return dbConn, nil
}
