// Package logging builds the process-wide slog.Logger on top of zap.
package logging

import (
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// New returns a logger writing JSON in "prod" mode and human readable console output otherwise.
// The returned sync function flushes buffered entries and should be deferred by main.
func New(mode string) (*slog.Logger, func(), error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	handler := zapslog.NewHandler(zapLogger.Core(), zapslog.WithCaller(true))
	return slog.New(handler), func() { _ = zapLogger.Sync() }, nil
}
