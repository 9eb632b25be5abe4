// Package spies provides test doubles for the snapshotstore observability
// interfaces: a capturing slog handler, a metrics collector spy and a
// tracing collector spy with fluent assertion helpers.
package spies
