// Package postgresengine provides a PostgreSQL implementation of the
// snapshot store.
//
// This package archives the snapshot data a simulator backend emits as
// dynamic snapshot streams in PostgreSQL, supporting multiple database
// adapters (pgx, sql.DB, sqlx) with atomic operations and concurrency
// control.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Atomic record appending with concurrency conflict detection
//   - Dynamic snapshot stream filtering with JSON predicate support
//   - Configurable table names, logging, metrics and tracing
//   - Optional read replica usage for eventually consistent queries
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewSnapshotStoreFromPGXPool(db)
//
//	// With operational logging and a custom table name
//	store, _ := postgresengine.NewSnapshotStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("circuit_snapshots"),
//		postgresengine.WithLogger(logger),
//	)
//
//	records, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newRecord)
package postgresengine
