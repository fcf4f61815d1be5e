// Package redis provides helpers for connecting to a Redis server and using
// it as a small key-value store inside the notification service.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - A thin Storage key-value wrapper used by the unread-count cache.
//   - A health-check helper for readiness probes.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via github.com/caarlos0/env.
//
// Sentinel errors (e.g. ErrRedisNotReady) wrap the underlying go-redis errors
// with errors.Join, so they compare cleanly with errors.Is.
package redis
