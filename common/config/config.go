package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func loadEnvString(key string, result *string) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	*result = s
}

func loadEnvUint(key string, result *uint) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return
	}
	*result = uint(n)
}

func loadEnvInt(key string, result *int) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return
	}
	*result = n
}

func loadEnvBool(key string, result *bool) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return
	}
	*result = b
}

// loadEnvDuration accepts Go duration strings ("10s", "1m30s").
func loadEnvDuration(key string, result *time.Duration) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Warn().Str("key", key).Str("value", s).Msg("Ignoring invalid duration")
		return
	}
	*result = d
}

/* Configuration */

/* PgSQL Configuration */
type pgSqlConfig struct {
	Host     string `json:"host" validate:"required"`
	Port     uint   `json:"port" validate:"required,max=65535"`
	Database string `json:"database" validate:"required"`
	SslMode  string `json:"ssl_mode"`
	User     string `json:"user"`
	Password string `json:"-"`
}

func (p pgSqlConfig) ConnStr() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s", p.Host, p.Port, p.User, p.Password, p.Database, p.SslMode)
}

// URL returns the connection string in URL form, as golang-migrate expects it.
func (p pgSqlConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", p.User, p.Password, p.Host, p.Port, p.Database, p.SslMode)
}

func defaultPgSql() pgSqlConfig {
	return pgSqlConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "country_currency",
		User:     "",
		Password: "",
		SslMode:  "disable",
	}
}

func (p *pgSqlConfig) loadFromEnv() {
	loadEnvString("POSTGRES_HOST", &p.Host)
	loadEnvUint("POSTGRES_PORT", &p.Port)
	loadEnvString("POSTGRES_DB_NAME", &p.Database)
	loadEnvString("POSTGRES_SSLMODE", &p.SslMode)
	loadEnvString("POSTGRES_USERNAME", &p.User)
	loadEnvString("POSTGRES_PASSWORD", &p.Password)
}

/* Listen Configuration */

type listenConfig struct {
	Host string `json:"host"`
	Port uint   `json:"port" validate:"required,max=65535"`
}

func (l listenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

func defaultListenConfig() listenConfig {
	return listenConfig{
		Host: "127.0.0.1",
		Port: 8080,
	}
}

func (l *listenConfig) loadFromEnv() {
	loadEnvString("LISTEN_HOST", &l.Host)
	loadEnvUint("LISTEN_PORT", &l.Port)
}

/* Upstream sources */

type sourcesConfig struct {
	CountriesURL     string        `json:"countries_url" validate:"required,url"`
	ExchangeRatesURL string        `json:"exchange_rates_url" validate:"required,url"`
	Timeout          time.Duration `json:"timeout" validate:"gt=0"`
}

func defaultSourcesConfig() sourcesConfig {
	return sourcesConfig{
		CountriesURL:     "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies",
		ExchangeRatesURL: "https://open.er-api.com/v6/latest/USD",
		Timeout:          10 * time.Second,
	}
}

func (s *sourcesConfig) loadFromEnv() {
	loadEnvString("COUNTRIES_SOURCE_URL", &s.CountriesURL)
	loadEnvString("EXCHANGE_RATES_SOURCE_URL", &s.ExchangeRatesURL)
	loadEnvDuration("SOURCE_TIMEOUT", &s.Timeout)
}

/* Refresh pipeline */

type refreshConfig struct {
	Workers     int           `json:"workers" validate:"min=1,max=256"`
	TaskTimeout time.Duration `json:"task_timeout" validate:"gt=0"`
	LockTTL     time.Duration `json:"lock_ttl" validate:"gt=0"`
	LockWait    time.Duration `json:"lock_wait" validate:"gte=0"`
}

func defaultRefreshConfig() refreshConfig {
	return refreshConfig{
		Workers:     8,
		TaskTimeout: 15 * time.Second,
		LockTTL:     2 * time.Minute,
		LockWait:    30 * time.Second,
	}
}

func (r *refreshConfig) loadFromEnv() {
	loadEnvInt("REFRESH_WORKERS", &r.Workers)
	loadEnvDuration("REFRESH_TASK_TIMEOUT", &r.TaskTimeout)
	loadEnvDuration("REFRESH_LOCK_TTL", &r.LockTTL)
	loadEnvDuration("REFRESH_LOCK_WAIT", &r.LockWait)
}

type natsConfig struct {
	Enabled          bool
	Host             string
	Port             uint
	Username         string
	Password         string
	JetStreamEnabled bool
	StreamName       string
}

func (c *natsConfig) loadFromEnv() {
	loadEnvBool("NATS_ENABLED", &c.Enabled)
	c.Host = getEnv("NATS_HOST", c.Host)

	if portStr := getEnv("NATS_PORT", ""); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			c.Port = uint(port)
		}
	}

	c.Username = getEnv("NATS_USER", "")
	c.Password = getEnv("NATS_PASSWORD", "")
	loadEnvBool("NATS_JETSTREAM_ENABLED", &c.JetStreamEnabled)
	loadEnvString("NATS_STREAM_NAME", &c.StreamName)
}

func (c *natsConfig) URL() string {
	return fmt.Sprintf("nats://%s:%d", c.Host, c.Port)
}

func defaultNatsConfig() natsConfig {
	return natsConfig{
		Enabled:          false,
		Host:             "localhost",
		Port:             4222,
		Username:         "",
		Password:         "",
		JetStreamEnabled: true,
		StreamName:       "COUNTRIES",
	}
}

type redisConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	Password string `json:"-"`
	DB       int    `json:"db"`
}

func (r *redisConfig) loadFromEnv() {
	loadEnvBool("REDIS_ENABLED", &r.Enabled)
	loadEnvString("REDIS_HOST", &r.Host)
	loadEnvUint("REDIS_PORT", &r.Port)
	loadEnvString("REDIS_PASSWORD", &r.Password)

	// Load DB number with a default of 0
	if dbStr := getEnv("REDIS_DB", "0"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
	log.Info().Interface("redis", r).Msg("Redis config loaded")
}

func (r redisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func defaultRedisConfig() redisConfig {
	return redisConfig{
		Enabled:  false,
		Host:     "localhost",
		Port:     6379,
		Password: "",
		DB:       0,
	}
}

type GCSConfig struct {
	Enabled         bool
	ProjectID       string
	CredentialsFile string
	Bucket          string `validate:"required_if=Enabled true"`
	SummaryObject   string
}

func (g *GCSConfig) loadFromEnv() {
	loadEnvBool("GCS_ENABLED", &g.Enabled)
	g.ProjectID = getEnv("GCS_PROJECT_ID", "")
	g.CredentialsFile = getEnv("GCS_CREDENTIALS_FILE", "")
	g.Bucket = getEnv("GCS_STORAGE_BUCKET", "")
	loadEnvString("GCS_SUMMARY_OBJECT", &g.SummaryObject)
}

func defaultGcsConfig() GCSConfig {
	return GCSConfig{
		Enabled:         false,
		ProjectID:       "",
		CredentialsFile: "",
		Bucket:          "",
		SummaryObject:   "cache/summary.png",
	}
}

type logConfig struct {
	Level  string `validate:"oneof=trace debug info warn error"`
	Format string `validate:"oneof=console json"`
}

func (l *logConfig) loadFromEnv() {
	loadEnvString("LOG_LEVEL", &l.Level)
	loadEnvString("LOG_FORMAT", &l.Format)
}

func defaultLogConfig() logConfig {
	return logConfig{
		Level:  "info",
		Format: "console",
	}
}

type Config struct {
	Listen  listenConfig
	PgSql   pgSqlConfig
	Sources sourcesConfig
	Refresh refreshConfig
	Nats    natsConfig
	Redis   redisConfig
	GCS     GCSConfig
	Log     logConfig
}

func (c *Config) LoadFromEnv() {
	c.Listen.loadFromEnv()
	c.PgSql.loadFromEnv()
	c.Sources.loadFromEnv()
	c.Refresh.loadFromEnv()
	c.Nats.loadFromEnv()
	c.Redis.loadFromEnv()
	c.GCS.loadFromEnv()
	c.Log.loadFromEnv()
}

// Validate checks the loaded values against the struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Listen:  defaultListenConfig(),
		PgSql:   defaultPgSql(),
		Sources: defaultSourcesConfig(),
		Refresh: defaultRefreshConfig(),
		Nats:    defaultNatsConfig(),
		Redis:   defaultRedisConfig(),
		GCS:     defaultGcsConfig(),
		Log:     defaultLogConfig(),
	}
}
