package snapshotstore

import (
	"errors"
)

var ErrEmptySnapshotsTableName = errors.New("empty snapshotsTableName supplied")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingSnapshotsFailed = errors.New("querying snapshots failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrBuildingSnapshotRecordFailed = errors.New("building snapshot record from database row failed")
var ErrAppendingSnapshotFailed = errors.New("appending snapshot failed")
var ErrPruningSnapshotsFailed = errors.New("pruning snapshots failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")

// MaxSequenceNumberUint is a type alias for uint, representing the maximum
// sequence number of a filtered snapshot stream.
type MaxSequenceNumberUint = uint
