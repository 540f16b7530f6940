package logger

import (
	"os"
	"strings"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common"
	"github.com/LexiconIndonesia/country-currency-service/common/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger from cfg.Log. Every package
// logs through github.com/rs/zerolog/log, so this runs before anything else.
func Setup(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	base := zerolog.New(os.Stdout)
	if cfg.Log.Format != "json" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	log.Logger = base.With().
		Timestamp().
		Str("service", common.AppName).
		Logger()

	log.Debug().
		Str("level", level.String()).
		Str("format", cfg.Log.Format).
		Msg("Logger configured")
}
