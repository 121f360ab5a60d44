package logger

import (
	"hotel/config"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var output io.Writer = os.Stdout

// InitLogger installs a console logger at trace level so configuration loading can be followed.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured log level. Outside development the console writer is replaced by
// JSON lines tagged with the service name.
func Configure(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)

	if !cfg.IsDevelopment() {
		log.Logger = zerolog.New(output).With().Timestamp().Str("service", cfg.App.Name).Logger()
	}

	log.Trace().Str("loglevel", level.String()).Msg("Log level configured.")
}

// ErrorWithStack logs err together with the stack trace of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
