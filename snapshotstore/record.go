package snapshotstore

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var ErrEmptyLabel = errors.New("snapshot label must not be empty")
var ErrEmptySnapshotType = errors.New("snapshot type must not be empty")
var ErrInvalidDataJSON = errors.New("data json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// SnapshotRecords is an alias type for a slice of SnapshotRecord.
type SnapshotRecords = []SnapshotRecord

// SnapshotRecord is a DTO (data transfer object) used by the SnapshotStore to
// append captured snapshot data and query it back.
//
// It is built on scalars to be completely agnostic of how the simulator
// backend represents snapshot data internally.
//
// While its properties are exported, it should only be constructed with the
// supplied factory methods:
//   - BuildSnapshotRecord
//   - BuildSnapshotRecordWithEmptyMetadata
type SnapshotRecord struct {
	SnapshotID   uuid.UUID
	Label        string
	SnapshotType string
	TakenAt      time.Time
	DataJSON     []byte
	MetadataJSON []byte
}

// BuildSnapshotRecord is a factory method for SnapshotRecord.
//
// It assigns a fresh SnapshotID and populates the record with the given
// scalar input. Returns an error if the label or snapshot type is empty, or
// if dataJSON or metadataJSON are not valid JSON.
func BuildSnapshotRecord(
	label string,
	snapshotType string,
	takenAt time.Time,
	dataJSON []byte,
	metadataJSON []byte,
) (SnapshotRecord, error) {

	return BuildSnapshotRecordWithID(uuid.New(), label, snapshotType, takenAt, dataJSON, metadataJSON)
}

// BuildSnapshotRecordWithID is a factory method for SnapshotRecord keeping a
// known SnapshotID, used when rehydrating records from storage.
func BuildSnapshotRecordWithID(
	snapshotID uuid.UUID,
	label string,
	snapshotType string,
	takenAt time.Time,
	dataJSON []byte,
	metadataJSON []byte,
) (SnapshotRecord, error) {

	if label == "" {
		return SnapshotRecord{}, ErrEmptyLabel
	}

	if snapshotType == "" {
		return SnapshotRecord{}, ErrEmptySnapshotType
	}

	if !jsoniter.ConfigFastest.Valid(dataJSON) {
		return SnapshotRecord{}, ErrInvalidDataJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return SnapshotRecord{}, ErrInvalidMetadataJSON
	}

	return SnapshotRecord{
		SnapshotID:   snapshotID,
		Label:        label,
		SnapshotType: snapshotType,
		TakenAt:      takenAt,
		DataJSON:     dataJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildSnapshotRecordWithEmptyMetadata is a factory method for SnapshotRecord.
//
// It populates the record with the given scalar input and creates valid empty
// JSON for MetadataJSON. Returns an error if dataJSON is not valid JSON.
func BuildSnapshotRecordWithEmptyMetadata(
	label string,
	snapshotType string,
	takenAt time.Time,
	dataJSON []byte,
) (SnapshotRecord, error) {

	return BuildSnapshotRecord(label, snapshotType, takenAt, dataJSON, []byte("{}"))
}
