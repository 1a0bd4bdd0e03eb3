// Package logger configures the process-wide slog JSON logger and carries
// scoped loggers through a context.
package logger
