package postgresengine_test

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database driver
	"github.com/stretchr/testify/assert"

	"github.com/qsimkit/circuit-snapshots-go/snapshotstore"
	"github.com/qsimkit/circuit-snapshots-go/snapshotstore/postgresengine"
	"github.com/qsimkit/circuit-snapshots-go/testutil/config"
	"github.com/qsimkit/circuit-snapshots-go/testutil/spies"
)

// openLazySQLDB returns a sql.DB handle without connecting, which is all the
// factory methods need.
func openLazySQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("postgres", config.PostgresSingleDSN())
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func Test_NewSnapshotStore_NilConnection(t *testing.T) {
	t.Run("pgx pool", func(t *testing.T) {
		_, err := postgresengine.NewSnapshotStoreFromPGXPool(nil)

		assert.ErrorIs(t, err, snapshotstore.ErrNilDatabaseConnection)
	})

	t.Run("pgx pool with nil replica", func(t *testing.T) {
		_, err := postgresengine.NewSnapshotStoreFromPGXPoolAndReplica(nil, nil)

		assert.ErrorIs(t, err, snapshotstore.ErrNilDatabaseConnection)
	})

	t.Run("sql db", func(t *testing.T) {
		_, err := postgresengine.NewSnapshotStoreFromSQLDB(nil)

		assert.ErrorIs(t, err, snapshotstore.ErrNilDatabaseConnection)
	})

	t.Run("sqlx db", func(t *testing.T) {
		_, err := postgresengine.NewSnapshotStoreFromSQLX(nil)

		assert.ErrorIs(t, err, snapshotstore.ErrNilDatabaseConnection)
	})
}

func Test_NewSnapshotStore_WithEmptyTableName(t *testing.T) {
	db := openLazySQLDB(t)

	_, err := postgresengine.NewSnapshotStoreFromSQLDB(db, postgresengine.WithTableName(""))

	assert.ErrorIs(t, err, snapshotstore.ErrEmptySnapshotsTableName)
}

func Test_NewSnapshotStore_WithOptions(t *testing.T) {
	db := openLazySQLDB(t)
	logHandler := spies.NewTestLogHandler(false)

	store, err := postgresengine.NewSnapshotStoreFromSQLDB(
		db,
		postgresengine.WithTableName("circuit_snapshots"),
		postgresengine.WithLogger(slog.New(logHandler)),
		postgresengine.WithContextualLogger(spies.NewTestContextualLogger()),
		postgresengine.WithMetrics(spies.NewTestMetricsCollector(true)),
		postgresengine.WithTracing(spies.NewTestTracingCollector(true)),
	)

	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func Test_NewSnapshotStoreFromSQLX(t *testing.T) {
	db := sqlx.NewDb(openLazySQLDB(t), "postgres")

	store, err := postgresengine.NewSnapshotStoreFromSQLX(db)

	assert.NoError(t, err)
	assert.NotNil(t, store)
}
