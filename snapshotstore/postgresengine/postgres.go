package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/qsimkit/circuit-snapshots-go/snapshotstore"
	"github.com/qsimkit/circuit-snapshots-go/snapshotstore/postgresengine/internal/adapters"
)

const (
	defaultTableName                = "snapshots"
	logMsgBuildSelectQueryFailed    = "failed to build select query"
	logMsgBuildDeleteQueryFailed    = "failed to build delete query"
	logMsgDBQueryFailed             = "database query execution failed"
	logMsgCloseRowsFailed           = "failed to close database rows"
	logMsgScanRowFailed             = "failed to scan database row"
	logMsgBuildRecordFailed         = "failed to build snapshot record from database row"
	logMsgBuildInsertQueryFailed    = "failed to build insert query"
	logMsgDBExecFailed              = "database execution failed during snapshot append"
	logMsgDBExecPruneFailed         = "database execution failed during snapshot prune"
	logMsgRowsAffectedFailed        = "failed to get rows affected count"
	logMsgSingleRecordSQLFailed     = "failed to convert single record insert statement to SQL"
	logMsgMultiRecordSQLFailed      = "failed to convert multiple records insert statement to SQL"
	logMsgQueryCompleted            = "query completed"
	logMsgSnapshotsAppended         = "snapshots appended"
	logMsgSnapshotsPruned           = "snapshots pruned"
	logMsgConcurrencyConflict       = "concurrency conflict detected"
	logMsgSQLExecuted               = "executed sql for: "
	logMsgOperation                 = "snapshotstore operation: "
	logAttrError                    = "error"
	logAttrQuery                    = "query"
	logAttrSnapshotType             = "snapshot_type"
	logAttrRecordCount              = "record_count"
	logAttrDurationMS               = "duration_ms"
	logAttrExpectedRecords          = "expected_records"
	logAttrRowsAffected             = "rows_affected"
	logAttrExpectedSequence         = "expected_sequence"
	logActionQuery                  = "query"
	logActionAppend                 = "append"
	logActionPrune                  = "prune"
	colSnapshotID                   = "snapshot_id"
	colLabel                        = "label"
	colSnapshotType                 = "snapshot_type"
	colTakenAt                      = "taken_at"
	colData                         = "data"
	colMetadata                     = "metadata"
	colSequenceNumber               = "sequence_number"
	cteContext                      = "context"
	cteVals                         = "vals"
	dialectPostgres                 = "postgres"
	aliasMaxSeq                     = "max_seq"
	castUUID                        = "?::uuid"
	castText                        = "?::text"
	castTimestamp                   = "?::timestamp with time zone"
	castJsonb                       = "?::jsonb"
	metricQueryDuration             = "snapshotstore_query_duration_seconds"
	metricAppendDuration            = "snapshotstore_append_duration_seconds"
	metricPruneDuration             = "snapshotstore_prune_duration_seconds"
	metricRecordsQueried            = "snapshotstore_records_queried"
	metricRecordsAppended           = "snapshotstore_records_appended"
	metricDatabaseErrors            = "snapshotstore_database_errors_total"
	metricConcurrencyConflicts      = "snapshotstore_concurrency_conflicts_total"
	spanNameQuery                   = "snapshotstore.query"
	spanNameAppend                  = "snapshotstore.append"
	spanNamePrune                   = "snapshotstore.prune"
	spanAttrOperation               = "operation"
	spanAttrErrorType               = "error_type"
	spanAttrRecordCount             = "record_count"
	spanAttrSnapshotType            = "snapshot_type"
	spanAttrMaxSequence             = "max_sequence"
	spanAttrExpectedSeq             = "expected_sequence"
	spanAttrRowsAffected            = "rows_affected"
	spanAttrDurationMS              = "duration_ms"
	operationQuery                  = "query"
	operationAppend                 = "append"
	operationPrune                  = "prune"
	statusSuccess                   = "success"
	statusError                     = "error"
	errorTypeBuildQueryFailed       = "build_query_failed"
	errorTypeDBQueryFailed          = "db_query_failed"
	errorTypeScanFailed             = "scan_failed"
	errorTypeBuildRecordFailed      = "build_record_failed"
	errorTypeDBExecFailed           = "db_exec_failed"
	errorTypeRowsAffectedFailed     = "rows_affected_failed"
	errorTypeConcurrencyConflict    = "concurrency_conflict"
	conflictErrAttrExpectedRecords  = "expected_records"
	conflictErrAttrRowsAffected     = "rows_affected"
	conflictErrAttrExpectedSequence = "expected_sequence"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// SnapshotStore archives the snapshot records a simulator backend emits,
// organized as dynamic snapshot streams selected by filters. It leverages a
// database adapter and supports customizable logging, metrics and tracing.
type SnapshotStore struct {
	db               adapters.DBAdapter
	tableName        string
	logger           snapshotstore.Logger
	contextualLogger snapshotstore.ContextualLogger
	metricsCollector snapshotstore.MetricsCollector
	tracingCollector snapshotstore.TracingCollector
}

type queryResultRow struct {
	snapshotID        string
	label             string
	snapshotType      string
	data              []byte
	metadata          []byte
	takenAt           time.Time
	maxSequenceNumber snapshotstore.MaxSequenceNumberUint
}

// NewSnapshotStoreFromPGXPool creates a new SnapshotStore using a pgx Pool with optional configuration.
func NewSnapshotStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*SnapshotStore, error) {
	if db == nil {
		return nil, snapshotstore.ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewPGXAdapter(db), options...)
}

// NewSnapshotStoreFromPGXPoolAndReplica creates a new SnapshotStore using a primary pgx Pool
// and a replica pool which serves eventually consistent queries.
func NewSnapshotStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*SnapshotStore, error) {
	if db == nil || replica == nil {
		return nil, snapshotstore.ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewSnapshotStoreFromSQLDB creates a new SnapshotStore using a sql.DB with optional configuration.
func NewSnapshotStoreFromSQLDB(db *sql.DB, options ...Option) (*SnapshotStore, error) {
	if db == nil {
		return nil, snapshotstore.ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewSQLAdapter(db), options...)
}

// NewSnapshotStoreFromSQLX creates a new SnapshotStore using a sqlx.DB with optional configuration.
func NewSnapshotStoreFromSQLX(db *sqlx.DB, options ...Option) (*SnapshotStore, error) {
	if db == nil {
		return nil, snapshotstore.ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewSQLXAdapter(db), options...)
}

func newSnapshotStore(db adapters.DBAdapter, options ...Option) (*SnapshotStore, error) {
	es := &SnapshotStore{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query retrieves snapshot records from the Postgres snapshot store based on
// the provided snapshotstore.Filter criteria and returns them as
// snapshotstore.SnapshotRecords as well as the MaxSequenceNumberUint for this
// "dynamic snapshot stream" at the time of the query.
func (es *SnapshotStore) Query(ctx context.Context, filter snapshotstore.Filter) (
	snapshotstore.SnapshotRecords,
	snapshotstore.MaxSequenceNumberUint,
	error,
) {

	var empty snapshotstore.SnapshotRecords

	tracing, ctx := es.startQueryTracing(ctx)
	metrics := es.startQueryMetrics(ctx)

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.logError(logMsgBuildSelectQueryFailed, buildQueryErr)
		es.logErrorContext(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		metrics.recordError(errorTypeBuildQueryFailed, 0)
		tracing.finishError(errorTypeBuildQueryFailed, 0)

		return empty, 0, buildQueryErr
	}

	rows, duration, queryErr := es.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		metrics.recordError(errorTypeDBQueryFailed, duration)
		tracing.finishError(errorTypeDBQueryFailed, duration)

		return empty, 0, queryErr
	}
	defer es.closeRows(rows)

	records, maxSequenceNumber, scanErr := es.processQueryResults(ctx, rows)
	if scanErr != nil {
		metrics.recordError(errorTypeScanFailed, duration)
		tracing.finishError(errorTypeScanFailed, duration)

		return empty, 0, scanErr
	}

	es.logOperation(
		logMsgQueryCompleted,
		logAttrRecordCount, len(records),
		logAttrDurationMS, es.toMilliseconds(duration))
	es.logOperationContext(
		ctx,
		logMsgQueryCompleted,
		logAttrRecordCount, len(records),
		logAttrDurationMS, es.toMilliseconds(duration))

	metrics.recordSuccess(records, duration)
	tracing.finishSuccess(records, maxSequenceNumber, duration)

	return records, maxSequenceNumber, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (es *SnapshotStore) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionQuery, duration)
	es.logQueryWithDurationContext(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		es.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		es.logErrorContext(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)

		return nil, duration, errors.Join(snapshotstore.ErrQueryingSnapshotsFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (es *SnapshotStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if es.logger != nil {
			es.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// processQueryResults processes database rows and converts them to snapshot records.
func (es *SnapshotStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	snapshotstore.SnapshotRecords,
	snapshotstore.MaxSequenceNumberUint,
	error,
) {

	var empty snapshotstore.SnapshotRecords
	result := queryResultRow{}
	records := make(snapshotstore.SnapshotRecords, 0)
	maxSequenceNumber := snapshotstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(
			&result.snapshotID,
			&result.label,
			&result.snapshotType,
			&result.takenAt,
			&result.data,
			&result.metadata,
			&result.maxSequenceNumber,
		)
		if rowScanErr != nil {
			es.logError(logMsgScanRowFailed, rowScanErr)
			es.logErrorContext(ctx, logMsgScanRowFailed, rowScanErr)

			return empty, 0, errors.Join(snapshotstore.ErrScanningDBRowFailed, rowScanErr)
		}

		record, buildRecordErr := es.buildRecordFromRow(result)
		if buildRecordErr != nil {
			es.logError(logMsgBuildRecordFailed, buildRecordErr, logAttrSnapshotType, result.snapshotType)
			es.logErrorContext(ctx, logMsgBuildRecordFailed, buildRecordErr, logAttrSnapshotType, result.snapshotType)

			return empty, 0, errors.Join(snapshotstore.ErrBuildingSnapshotRecordFailed, buildRecordErr)
		}

		records = append(records, record)
		maxSequenceNumber = result.maxSequenceNumber
	}

	return records, maxSequenceNumber, nil
}

// buildRecordFromRow rehydrates a snapshot record from a scanned row.
func (es *SnapshotStore) buildRecordFromRow(row queryResultRow) (snapshotstore.SnapshotRecord, error) {
	snapshotID, parseErr := uuid.Parse(row.snapshotID)
	if parseErr != nil {
		return snapshotstore.SnapshotRecord{}, parseErr
	}

	return snapshotstore.BuildSnapshotRecordWithID(
		snapshotID,
		row.label,
		row.snapshotType,
		row.takenAt,
		row.data,
		row.metadata,
	)
}

// Append attempts to append one or multiple snapshotstore.SnapshotRecord(s) onto the Postgres snapshot store
// respecting concurrency constraints for this "dynamic snapshot stream" based on the provided
// snapshotstore.Filter criteria and the expected MaxSequenceNumberUint.
//
// The provided snapshotstore.Filter criteria should be the same as the ones used for the Query
// before deciding to write.
//
// The insert query to append multiple records atomically is heavier than the one built to append a
// single record. Only supply multiple records if you are sure that you need to append them at once,
// e.g. all snapshots captured by one simulation shot.
func (es *SnapshotStore) Append(
	ctx context.Context,
	filter snapshotstore.Filter,
	expectedMaxSequenceNumber snapshotstore.MaxSequenceNumberUint,
	record snapshotstore.SnapshotRecord,
	additionalRecords ...snapshotstore.SnapshotRecord,
) error {

	allRecords := snapshotstore.SnapshotRecords{record}
	allRecords = append(allRecords, additionalRecords...)

	tracing, ctx := es.startAppendTracing(ctx, allRecords, expectedMaxSequenceNumber)
	metrics := es.startAppendMetrics(ctx)

	sqlQuery, buildQueryErr := es.buildAppendQuery(allRecords, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		metrics.recordError(errorTypeBuildQueryFailed, 0)
		tracing.finishError(errorTypeBuildQueryFailed, 0)

		return buildQueryErr
	}

	rowsAffected, duration, execErr := es.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		metrics.recordError(errorTypeDBExecFailed, duration)
		tracing.finishError(errorTypeDBExecFailed, duration)

		return execErr
	}

	if conflictErr := es.validateAppendResult(ctx, rowsAffected, len(allRecords), expectedMaxSequenceNumber); conflictErr != nil {
		metrics.recordConcurrencyConflict()
		tracing.finishErrorWithAttrs(errorTypeConcurrencyConflict, map[string]string{
			conflictErrAttrExpectedRecords:  fmt.Sprintf("%d", len(allRecords)),
			conflictErrAttrRowsAffected:     fmt.Sprintf("%d", rowsAffected),
			conflictErrAttrExpectedSequence: fmt.Sprintf("%d", expectedMaxSequenceNumber),
		})

		return conflictErr
	}

	es.logOperation(
		logMsgSnapshotsAppended,
		logAttrRecordCount, len(allRecords),
		logAttrDurationMS, es.toMilliseconds(duration))
	es.logOperationContext(
		ctx,
		logMsgSnapshotsAppended,
		logAttrRecordCount, len(allRecords),
		logAttrDurationMS, es.toMilliseconds(duration))

	metrics.recordSuccess(len(allRecords), duration)
	tracing.finishSuccess(rowsAffected, duration)

	return nil
}

// buildAppendQuery builds the appropriate SQL query for single or multiple records.
func (es *SnapshotStore) buildAppendQuery(
	allRecords snapshotstore.SnapshotRecords,
	filter snapshotstore.Filter,
	expectedMaxSequenceNumber snapshotstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	var sqlQuery sqlQueryString
	var buildQueryErr error

	switch len(allRecords) {
	case 1:
		sqlQuery, buildQueryErr = es.buildInsertQueryForSingleRecord(allRecords[0], filter, expectedMaxSequenceNumber)

	default:
		sqlQuery, buildQueryErr = es.buildInsertQueryForMultipleRecords(allRecords, filter, expectedMaxSequenceNumber)
	}

	if buildQueryErr != nil {
		es.logError(logMsgBuildInsertQueryFailed, buildQueryErr, logAttrRecordCount, len(allRecords))

		return "", buildQueryErr
	}

	return sqlQuery, nil
}

// executeAppendQuery executes the SQL append query and returns rows affected and duration.
func (es *SnapshotStore) executeAppendQuery(ctx context.Context, sqlQuery string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	tag, execErr := es.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionAppend, duration)
	es.logQueryWithDurationContext(ctx, sqlQuery, logActionAppend, duration)

	if execErr != nil {
		es.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		es.logErrorContext(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)

		return 0, duration, errors.Join(snapshotstore.ErrAppendingSnapshotFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(logMsgRowsAffectedFailed, rowsAffectedErr)
		es.logErrorContext(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)

		return 0, duration, errors.Join(snapshotstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// validateAppendResult checks if the append operation was successful and detects concurrency conflicts.
func (es *SnapshotStore) validateAppendResult(
	ctx context.Context,
	rowsAffected int64,
	expectedRecordCount int,
	expectedMaxSequenceNumber snapshotstore.MaxSequenceNumberUint,
) error {

	if rowsAffected < int64(expectedRecordCount) {
		es.logOperation(
			logMsgConcurrencyConflict,
			logAttrExpectedRecords, expectedRecordCount,
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber)
		es.logOperationContext(
			ctx,
			logMsgConcurrencyConflict,
			logAttrExpectedRecords, expectedRecordCount,
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber)

		return snapshotstore.ErrConcurrencyConflict
	}

	return nil
}

// Prune deletes all snapshot records matching the filter, e.g. the snapshots
// of a finished experiment or everything older than a retention cutoff.
func (es *SnapshotStore) Prune(ctx context.Context, filter snapshotstore.Filter) error {
	ctx, span := es.startTraceSpan(ctx, spanNamePrune, map[string]string{spanAttrOperation: operationPrune})

	sqlQuery, buildQueryErr := es.buildDeleteQuery(filter)
	if buildQueryErr != nil {
		es.logError(logMsgBuildDeleteQueryFailed, buildQueryErr)
		es.logErrorContext(ctx, logMsgBuildDeleteQueryFailed, buildQueryErr)
		es.recordErrorMetricsContext(ctx, operationPrune, errorTypeBuildQueryFailed)
		es.finishTraceSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeBuildQueryFailed})

		return buildQueryErr
	}

	start := time.Now()
	tag, execErr := es.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	es.logQueryWithDuration(sqlQuery, logActionPrune, duration)
	es.logQueryWithDurationContext(ctx, sqlQuery, logActionPrune, duration)

	if execErr != nil {
		es.logError(logMsgDBExecPruneFailed, execErr, logAttrQuery, sqlQuery)
		es.logErrorContext(ctx, logMsgDBExecPruneFailed, execErr, logAttrQuery, sqlQuery)
		es.recordErrorMetricsContext(ctx, operationPrune, errorTypeDBExecFailed)
		es.finishTraceSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeDBExecFailed})

		return errors.Join(snapshotstore.ErrPruningSnapshotsFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(logMsgRowsAffectedFailed, rowsAffectedErr)
		es.logErrorContext(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		es.recordErrorMetricsContext(ctx, operationPrune, errorTypeRowsAffectedFailed)
		es.finishTraceSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeRowsAffectedFailed})

		return errors.Join(snapshotstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	es.logOperation(
		logMsgSnapshotsPruned,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, es.toMilliseconds(duration))
	es.logOperationContext(
		ctx,
		logMsgSnapshotsPruned,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, es.toMilliseconds(duration))

	es.recordDurationMetricsContext(ctx, metricPruneDuration, duration, operationPrune, statusSuccess)
	es.finishTraceSpan(span, statusSuccess, map[string]string{
		spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
	})

	return nil
}

func (es *SnapshotStore) buildSelectQuery(filter snapshotstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.tableName).
		Select(colSnapshotID, colLabel, colSnapshotType, colTakenAt, colData, colMetadata, colSequenceNumber).
		Where(es.whereExpression(filter)).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(snapshotstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es *SnapshotStore) buildDeleteQuery(filter snapshotstore.Filter) (sqlQueryString, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(es.tableName).
		Where(es.whereExpression(filter))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(snapshotstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es *SnapshotStore) buildInsertQueryForSingleRecord(
	record snapshotstore.SnapshotRecord,
	filter snapshotstore.Filter,
	expectedMaxSequenceNumber snapshotstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(es.tableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(es.whereExpression(filter))

	// Define the SELECT for the INSERT
	selectStmt := builder.
		From(cteContext).
		Select(
			goqu.V(record.SnapshotID.String()),
			goqu.V(record.Label),
			goqu.V(record.SnapshotType),
			goqu.V(record.TakenAt),
			goqu.V(record.DataJSON),
			goqu.V(record.MetadataJSON),
		).
		Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber)))

	// Finalize the full INSERT query
	insertStmt := builder.
		Insert(es.tableName).
		Cols(colSnapshotID, colLabel, colSnapshotType, colTakenAt, colData, colMetadata).
		FromQuery(selectStmt).
		With(cteContext, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		es.logError(logMsgSingleRecordSQLFailed, toSQLErr, logAttrSnapshotType, record.SnapshotType)

		return "", errors.Join(snapshotstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es *SnapshotStore) buildInsertQueryForMultipleRecords(
	records snapshotstore.SnapshotRecords,
	filter snapshotstore.Filter,
	expectedMaxSequenceNumber snapshotstore.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(es.tableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(es.whereExpression(filter))

	// Create individual SELECT statements for each record
	unionStatements := make([]*goqu.SelectDataset, len(records))
	for i, record := range records {
		unionStatements[i] = builder.
			Select(
				goqu.L(castUUID, record.SnapshotID.String()).As(colSnapshotID),
				goqu.L(castText, record.Label).As(colLabel),
				goqu.L(castText, record.SnapshotType).As(colSnapshotType),
				goqu.L(castTimestamp, record.TakenAt).As(colTakenAt),
				goqu.L(castJsonb, record.DataJSON).As(colData),
				goqu.L(castJsonb, record.MetadataJSON).As(colMetadata),
			)
	}

	// Combine all SELECT statements with UNION ALL
	valuesStmt := unionStatements[0]
	for i := 1; i < len(unionStatements); i++ {
		valuesStmt = valuesStmt.UnionAll(unionStatements[i])
	}

	// Finalize the full INSERT query
	valsSnapshotID := fmt.Sprintf("%s.%s", cteVals, colSnapshotID)
	valsLabel := fmt.Sprintf("%s.%s", cteVals, colLabel)
	valsSnapshotType := fmt.Sprintf("%s.%s", cteVals, colSnapshotType)
	valsTakenAt := fmt.Sprintf("%s.%s", cteVals, colTakenAt)
	valsData := fmt.Sprintf("%s.%s", cteVals, colData)
	valsMetadata := fmt.Sprintf("%s.%s", cteVals, colMetadata)

	insertStmt := builder.
		Insert(es.tableName).
		Cols(colSnapshotID, colLabel, colSnapshotType, colTakenAt, colData, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(valsSnapshotID, valsLabel, valsSnapshotType, valsTakenAt, valsData, valsMetadata).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		es.logError(logMsgMultiRecordSQLFailed, toSQLErr, logAttrRecordCount, len(records))

		return "", errors.Join(snapshotstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// whereExpression translates the filter into the WHERE clause shared by
// select, insert guard and delete queries.
func (es *SnapshotStore) whereExpression(filter snapshotstore.Filter) goqu.Expression {
	itemsExpressions := make([]goqu.Expression, 0)

	for _, item := range filter.Items() {
		snapshotTypeExpressions := make([]goqu.Expression, 0)
		predicateExpressions := make([]goqu.Expression, 0)

		for _, snapshotType := range item.SnapshotTypes() {
			snapshotTypeExpressions = append(
				snapshotTypeExpressions,
				goqu.Ex{colSnapshotType: snapshotType},
			)
		}

		// snapshotTypes must always be filtered with OR ;-)
		snapshotTypesExpressionList := goqu.Or(snapshotTypeExpressions...)

		for _, predicate := range item.Predicates() {
			predicateExpressions = append(
				predicateExpressions,
				goqu.L(fmt.Sprintf(`%s @> '{"%s": "%s"}'`, colData, predicate.Key(), predicate.Val())),
			)
		}

		var predicatesExpressionList exp.ExpressionList

		if item.AllPredicatesMustMatch() {
			predicatesExpressionList = goqu.And(predicateExpressions...)
		} else {
			predicatesExpressionList = goqu.Or(predicateExpressions...)
		}

		itemsExpressions = append(
			itemsExpressions,
			goqu.And(snapshotTypesExpressionList, predicatesExpressionList),
		)
	}

	constraintExpressions := make([]goqu.Expression, 0)

	if !filter.TakenFrom().IsZero() {
		constraintExpressions = append(
			constraintExpressions,
			goqu.C(colTakenAt).Gte(filter.TakenFrom()),
		)
	}

	if !filter.TakenUntil().IsZero() {
		constraintExpressions = append(
			constraintExpressions,
			goqu.C(colTakenAt).Lte(filter.TakenUntil()),
		)
	}

	if filter.SequenceNumberHigherThan() > 0 {
		constraintExpressions = append(
			constraintExpressions,
			goqu.C(colSequenceNumber).Gt(filter.SequenceNumberHigherThan()),
		)
	}

	return goqu.And(
		goqu.Or(itemsExpressions...),
		goqu.And(constraintExpressions...),
	)
}
