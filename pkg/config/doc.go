// Package config loads service configuration from environment variables.
//
// Configuration structs declare their sources with `env` tags understood by
// github.com/caarlos0/env. A local .env file is honored once per process via
// godotenv, which keeps development setups simple without affecting deployed
// environments.
package config
