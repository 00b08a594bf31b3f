// Package logger builds slog loggers for socialkit services and keeps
// attribute names consistent across packages.
//
// New creates a *slog.Logger configured by Option functions: output format,
// level, static attributes and context extractors. WithEnvironment applies the
// usual per-environment defaults (text/debug for development, JSON/info for
// staging and production).
//
// Attribute helpers such as Error, NotificationID, ToastID and Attempt return
// empty attributes for empty input, so callers can log without nil checks:
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "socialkit"))
//	log.Warn("desktop notification failed", logger.NotificationID(n.ID), logger.Error(err))
package logger
