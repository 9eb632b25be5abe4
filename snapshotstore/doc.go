// Package snapshotstore provides core abstractions and types for archiving
// the snapshot data a simulator backend emits while executing circuits.
//
// This package defines the fundamental interfaces and types used across
// different snapshot store implementations, including filters, snapshot
// records, and common error definitions.
//
// The snapshot store supports dynamic filtering of records based on:
//   - Snapshot type tags
//   - JSON data predicates
//   - Time ranges (taken from/until)
//   - A sequence number floor for incremental reads
//
// Key types:
//   - Filter: Defines criteria for querying snapshot records
//   - SnapshotRecord: Represents one captured snapshot that can be stored
//     and retrieved
//   - SnapshotRecords: Collection of snapshot records
//
// Common usage pattern:
//
//	filter := snapshotstore.BuildSnapshotFilter().
//		Matching().
//		AnySnapshotTypeOf(
//			circuit.SnapshotTypeStabilizer,
//			circuit.SnapshotTypeStatevector).
//		AndAnyPredicateOf(snapshotstore.P("experiment", experimentID)).
//		Finalize()
//
//	records, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	record, _ := snapshotstore.BuildSnapshotRecord(label, snapshotType, time.Now(), data, metadata)
//	err = store.Append(ctx, filter, maxSeq, record)
package snapshotstore
