package snapshotstore

import "context"

// ConsistencyLevel defines the consistency requirements for SnapshotStore operations.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database to ensure
	// read-after-write consistency. This is the default for SnapshotStore
	// operations so that writers appending to a snapshot stream see their own
	// writes immediately.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from replica databases, trading
	// consistency for performance. Suitable for pure query operations, e.g.
	// analysis tooling reading archived snapshots, that can tolerate slightly
	// stale data in exchange for a reduced load on the primary database.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "snapshotstore.consistency_level"

// WithStrongConsistency returns a context that signals SnapshotStore
// operations should use the primary database for strong consistency
// guarantees.
//
// Example usage:
//
//	ctx = snapshotstore.WithStrongConsistency(ctx)
//	records, maxSeq, err := store.Query(ctx, filter)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals SnapshotStore
// operations may use replica databases for eventual consistency, trading
// consistency for performance.
//
// Example usage:
//
//	ctx = snapshotstore.WithEventualConsistency(ctx)
//	records, maxSeq, err := store.Query(ctx, filter)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency as the safe
// default for append workflows that read back their own writes.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
