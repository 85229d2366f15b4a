package infra

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/maisonthread/storefront/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// LoggerClient is the structured logger handed to every handler. With an
// OTLP endpoint configured it bridges slog records into the OpenTelemetry
// log pipeline; otherwise it logs to stdout.
type LoggerClient struct {
	logger *slog.Logger
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	if cfg.Telemetry.OTLPEndpoint != "" {
		return &LoggerClient{logger: otelslog.NewLogger(cfg.Telemetry.ServiceName)}
	}
	return &LoggerClient{logger: slog.New(slog.NewTextHandler(os.Stdout, nil))}
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	if err != nil {
		l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...), slog.Any("error", err))
		return
	}
	l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...))
}
