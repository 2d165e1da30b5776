package logger

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/expensio/expensio/internal/config"
)

// Module wires slog logger for dependency injection.
var Module = fx.Provide(newLogger)

type loggerParams struct {
	fx.In

	Config *config.Config
}

func newLogger(p loggerParams) *slog.Logger {
	return New(p.Config.LogLevel)
}
