// Package adapters provides database adapter implementations for the
// Postgres snapshot store.
//
// The adapters wrap the supported database client libraries (pgx,
// database/sql, sqlx) behind the small DBAdapter seam the engine uses, so
// query building and result handling stay identical across clients.
package adapters
