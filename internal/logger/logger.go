// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses zerolog for structured logging and integrates with
// New Relic to forward logs and correlate them with traces.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/stellarhost/portal/internal/config"
)

// LoggerService owns the New Relic application instance.
//
// When New Relic is disabled (empty license key), nrApp stays nil and
// every consumer treats the service as a no-op.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when the
// agent is disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes pending telemetry. Safe to call on a disabled service.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.nrApp == nil {
		return
	}
	s.nrApp.Shutdown(timeout)
}

// NewLoggerService initializes the New Relic agent from config.
//
// Returns a service with a nil application when no license key is
// configured; that is not an error.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	obs := cfg.Observability
	if obs == nil || obs.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(obs.ServiceName),
		newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
	}
	if obs.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	nrApp, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize new relic application: %w", err)
	}

	return &LoggerService{nrApp: nrApp}, nil
}

// New builds the application's main logger from observability config.
//
// Format "console" writes human-readable output for local work; "json"
// writes machine-parseable lines. When log forwarding is enabled, the
// writer is wrapped so each line carries New Relic linking metadata.
func New(cfg *config.Config, service *LoggerService) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Observability.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	} else if app := service.GetApplication(); app != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled {
		writer := zerologWriter.New(os.Stdout, app)
		logger = zerolog.New(writer).
			Level(level).
			With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			Level(level).
			With().Timestamp().Logger()
	}

	logger = logger.With().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

// WithTraceContext returns a child logger carrying trace.id and
// span.id from the transaction, so log lines correlate with traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	md := txn.GetTraceMetadata()
	builder := logger.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}

// NewPgxLogger builds the logger handed to the pgx tracelog adapter.
// SQL logging is noisy, so it writes console format and inherits the
// application's level.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "pgx").Logger()
}

// GetPgxTraceLogLevel maps the zerolog level to the pgx tracelog
// level so query logging respects the application's verbosity.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	// tracelog levels: 0 none, 1 error, 2 warn, 3 info, 4 debug, 5 trace.
	switch level {
	case zerolog.TraceLevel:
		return 5
	case zerolog.DebugLevel:
		return 4
	case zerolog.InfoLevel:
		return 3
	case zerolog.WarnLevel:
		return 2
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return 1
	default:
		return 0
	}
}
