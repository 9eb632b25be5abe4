// Package config provides database and observability configuration helpers
// for tests and the example programs.
//
// This package contains factory functions for creating database connections
// using different PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB) with
// pre-configured DSNs for the snapshot archive, plus an OpenTelemetry
// provider setup for the local observability stack.
package config
