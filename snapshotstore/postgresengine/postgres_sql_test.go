package postgresengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qsimkit/circuit-snapshots-go/snapshotstore"
)

func sqlTestStore() *SnapshotStore {
	return &SnapshotStore{tableName: defaultTableName}
}

func stabilizerFilter() snapshotstore.Filter {
	return snapshotstore.BuildSnapshotFilter().
		Matching().
		AnySnapshotTypeOf("stabilizer").
		AndAnyPredicateOf(snapshotstore.P("experiment", "bell")).
		Finalize()
}

func sqlTestRecord(t *testing.T, label string) snapshotstore.SnapshotRecord {
	t.Helper()

	record, err := snapshotstore.BuildSnapshotRecordWithEmptyMetadata(
		label,
		"stabilizer",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		[]byte(`{"experiment": "bell"}`),
	)
	assert.NoError(t, err)

	return record
}

func Test_BuildSelectQuery(t *testing.T) {
	store := sqlTestStore()

	sqlQuery, err := store.buildSelectQuery(stabilizerFilter())

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery,
		`SELECT "snapshot_id", "label", "snapshot_type", "taken_at", "data", "metadata", "sequence_number" FROM "snapshots"`)
	assert.Contains(t, sqlQuery, `"snapshot_type" = 'stabilizer'`)
	assert.Contains(t, sqlQuery, `data @> '{"experiment": "bell"}'`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
}

func Test_BuildSelectQuery_TimeAndSequenceConstraints(t *testing.T) {
	store := sqlTestStore()
	filter := snapshotstore.BuildSnapshotFilter().
		Matching().
		AnySnapshotTypeOf("statevector").
		AndTakenFrom(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).
		AndTakenUntil(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)).
		Finalize()

	sqlQuery, err := store.buildSelectQuery(filter)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `"taken_at" >=`)
	assert.Contains(t, sqlQuery, `"taken_at" <=`)
}

func Test_BuildSelectQuery_SequenceNumberConstraint(t *testing.T) {
	store := sqlTestStore()
	filter := snapshotstore.BuildSnapshotFilter().
		WithSequenceNumberHigherThan(42).
		Finalize()

	sqlQuery, err := store.buildSelectQuery(filter)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `"sequence_number" > 42`)
}

func Test_BuildDeleteQuery(t *testing.T) {
	store := sqlTestStore()

	sqlQuery, err := store.buildDeleteQuery(stabilizerFilter())

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `DELETE FROM "snapshots"`)
	assert.Contains(t, sqlQuery, `"snapshot_type" = 'stabilizer'`)
	assert.Contains(t, sqlQuery, `data @> '{"experiment": "bell"}'`)
}

func Test_BuildInsertQueryForSingleRecord(t *testing.T) {
	store := sqlTestStore()
	record := sqlTestRecord(t, "bell_state")

	sqlQuery, err := store.buildInsertQueryForSingleRecord(record, stabilizerFilter(), 7)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `WITH "context" AS`)
	assert.Contains(t, sqlQuery, `MAX("sequence_number") AS "max_seq"`)
	assert.Contains(t, sqlQuery,
		`INSERT INTO "snapshots" ("snapshot_id", "label", "snapshot_type", "taken_at", "data", "metadata")`)
	assert.Contains(t, sqlQuery, `COALESCE("max_seq", 0) = 7`)
	assert.Contains(t, sqlQuery, record.SnapshotID.String())
	assert.Contains(t, sqlQuery, `'bell_state'`)
}

func Test_BuildInsertQueryForMultipleRecords(t *testing.T) {
	store := sqlTestStore()
	first := sqlTestRecord(t, "bell_state")
	second := sqlTestRecord(t, "zz_corr")

	sqlQuery, err := store.buildInsertQueryForMultipleRecords(
		snapshotstore.SnapshotRecords{first, second}, stabilizerFilter(), 7)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `WITH "context" AS`)
	assert.Contains(t, sqlQuery, `"vals" AS`)
	assert.Contains(t, sqlQuery, `UNION ALL`)
	assert.Contains(t, sqlQuery, `::uuid`)
	assert.Contains(t, sqlQuery, `::jsonb`)
	assert.Contains(t, sqlQuery, `COALESCE("max_seq", 0) = 7`)
	assert.Contains(t, sqlQuery, first.SnapshotID.String())
	assert.Contains(t, sqlQuery, second.SnapshotID.String())
}

func Test_WhereExpression_CombinesItemsWithOr(t *testing.T) {
	store := sqlTestStore()
	filter := snapshotstore.BuildSnapshotFilter().
		Matching().
		AnySnapshotTypeOf("stabilizer").
		OrMatching().
		AnySnapshotTypeOf("statevector").
		Finalize()

	sqlQuery, err := store.buildSelectQuery(filter)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `"snapshot_type" = 'stabilizer'`)
	assert.Contains(t, sqlQuery, `"snapshot_type" = 'statevector'`)
	assert.Contains(t, sqlQuery, ` OR `)
}

func Test_WhereExpression_AllPredicatesMustMatch(t *testing.T) {
	store := sqlTestStore()
	filter := snapshotstore.BuildSnapshotFilter().
		Matching().
		AnySnapshotTypeOf("stabilizer").
		AndAllPredicatesOf(
			snapshotstore.P("experiment", "bell"),
			snapshotstore.P("shot", "1"),
		).
		Finalize()

	sqlQuery, err := store.buildSelectQuery(filter)

	assert.NoError(t, err)
	assert.Contains(t, sqlQuery, `data @> '{"experiment": "bell"}' AND`)
	assert.Contains(t, sqlQuery, `data @> '{"shot": "1"}'`)
}
