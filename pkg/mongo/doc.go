// Package mongo provides MongoDB connection management for the notification
// service.
//
// Configuration is environment-driven (see Config) so the same binary runs
// unchanged across development, staging, and production. Connecting retries
// transient failures, which matters for hosted MongoDB where brief
// unavailability during failover is normal.
//
// # Usage
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "notifyd")
//	if err != nil {
//		// terminate: the service cannot run without its datastore
//	}
//
// Healthcheck wires the connection into readiness probes. Sentinel errors are
// comparable with errors.Is.
package mongo
