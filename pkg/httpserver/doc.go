// Package httpserver provides a lightweight wrapper around net/http that adds
// graceful shutdown, configurable timeouts, a health-check handler, and
// structured logging via slog.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received and then shuts the server down with a configurable deadline:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown; use errors.Is to distinguish them.
package httpserver
