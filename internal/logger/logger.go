// Package logger builds the zap loggers used by the server and the worker.
package logger

import (
	"go.uber.org/zap"
)

// New returns a logger tuned for the environment: human-readable console
// output in development, sampled JSON in production. Dashboard errors are
// already logged with context at the call site, so production output skips
// stack traces.
func New(env string) *zap.Logger {
	if env == "development" {
		l, _ := zap.NewDevelopment()
		return l
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	l, _ := cfg.Build()
	return l
}
