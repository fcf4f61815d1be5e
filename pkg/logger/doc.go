// Package logger builds configured log/slog loggers for the service.
//
// The factory supports JSON and text formats, per-environment presets, static
// attributes attached to every record, and context extractors that pull
// request-scoped values (like request IDs) into each log call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "notifyd"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// The attr helpers keep attribute keys consistent across the codebase.
package logger
