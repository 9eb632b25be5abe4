package postgresengine

import (
	"github.com/qsimkit/circuit-snapshots-go/snapshotstore"
)

// Option defines a functional option for configuring SnapshotStore.
type Option func(*SnapshotStore) error

// WithTableName sets the table name for the SnapshotStore.
func WithTableName(tableName string) Option {
	return func(es *SnapshotStore) error {
		if tableName == "" {
			return snapshotstore.ErrEmptySnapshotsTableName
		}

		es.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the SnapshotStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Record counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger snapshotstore.Logger) Option {
	return func(es *SnapshotStore) error {
		es.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the SnapshotStore.
// The metrics collector will receive performance and operational metrics including
// query/append durations, record counts, concurrency conflicts, and database errors.
func WithMetrics(collector snapshotstore.MetricsCollector) Option {
	return func(es *SnapshotStore) error {
		es.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the SnapshotStore.
// The tracing collector will receive distributed tracing information including
// span creation for query/append operations, context propagation, and error tracking.
func WithTracing(collector snapshotstore.TracingCollector) Option {
	return func(es *SnapshotStore) error {
		es.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the SnapshotStore.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled, enabling unified observability.
func WithContextualLogger(logger snapshotstore.ContextualLogger) Option {
	return func(es *SnapshotStore) error {
		es.contextualLogger = logger
		return nil
	}
}
