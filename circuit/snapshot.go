package circuit

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var ErrEmptySnapshotLabel = errors.New("snapshot label must not be empty")
var ErrUnknownSnapshotType = errors.New("unknown snapshot type")
var ErrInvalidParamsJSON = errors.New("snapshot params json is not valid")

// SnapshotTypeString is an alias type for the snapshot type tag forwarded to
// the simulator backend.
type SnapshotTypeString = string

// Snapshot type tags understood by the simulator backend.
const (
	SnapshotTypeStatevector                        SnapshotTypeString = "statevector"
	SnapshotTypeStabilizer                         SnapshotTypeString = "stabilizer"
	SnapshotTypeDensityMatrix                      SnapshotTypeString = "density_matrix"
	SnapshotTypeProbabilities                      SnapshotTypeString = "probabilities"
	SnapshotTypeProbabilitiesWithVariance          SnapshotTypeString = "probabilities_with_variance"
	SnapshotTypeExpectationValuePauli              SnapshotTypeString = "expectation_value_pauli"
	SnapshotTypeExpectationValuePauliWithVariance  SnapshotTypeString = "expectation_value_pauli_with_variance"
	SnapshotTypeExpectationValueMatrix             SnapshotTypeString = "expectation_value_matrix"
	SnapshotTypeExpectationValueMatrixWithVariance SnapshotTypeString = "expectation_value_matrix_with_variance"
	SnapshotTypeMemory                             SnapshotTypeString = "memory"
	SnapshotTypeRegister                           SnapshotTypeString = "register"
)

// snapshotInstructionName is the instruction name shared by all snapshot
// variants; the variant is carried in the snapshot type tag.
const snapshotInstructionName = "snapshot"

// allowedSnapshotTypes is the set of snapshot type tags the backend accepts.
var allowedSnapshotTypes = map[SnapshotTypeString]struct{}{
	SnapshotTypeStatevector:                        {},
	SnapshotTypeStabilizer:                         {},
	SnapshotTypeDensityMatrix:                      {},
	SnapshotTypeProbabilities:                      {},
	SnapshotTypeProbabilitiesWithVariance:          {},
	SnapshotTypeExpectationValuePauli:              {},
	SnapshotTypeExpectationValuePauliWithVariance:  {},
	SnapshotTypeExpectationValueMatrix:             {},
	SnapshotTypeExpectationValueMatrixWithVariance: {},
	SnapshotTypeMemory:                             {},
	SnapshotTypeRegister:                           {},
}

// Snapshot is an instruction that tells the simulator backend to capture
// state during circuit execution, identified by a label and a snapshot type
// tag.
//
// It should only be constructed with the supplied factory methods:
//   - BuildSnapshot
//   - BuildSnapshotStabilizer
//   - BuildSnapshotExpectationValue
//   - BuildSnapshotStatevector
//   - BuildSnapshotProbabilities
//   - BuildSnapshotDensityMatrix
type Snapshot struct {
	label        string
	snapshotType SnapshotTypeString
	numQubits    int
	numClbits    int
	paramsJSON   []byte
}

// BuildSnapshot is a factory method for Snapshot.
//
// It validates that the label is not empty, that the snapshot type is one of
// the tags the backend accepts, and that paramsJSON, when given, is valid
// JSON.
func BuildSnapshot(
	label string,
	snapshotType SnapshotTypeString,
	numQubits int,
	numClbits int,
	paramsJSON []byte,
) (Snapshot, error) {

	if label == "" {
		return Snapshot{}, ErrEmptySnapshotLabel
	}

	if _, ok := allowedSnapshotTypes[snapshotType]; !ok {
		return Snapshot{}, ErrUnknownSnapshotType
	}

	if numQubits < 0 || numClbits < 0 {
		return Snapshot{}, ErrNegativeBitCount
	}

	if paramsJSON != nil && !jsoniter.ConfigFastest.Valid(paramsJSON) {
		return Snapshot{}, ErrInvalidParamsJSON
	}

	return Snapshot{
		label:        label,
		snapshotType: snapshotType,
		numQubits:    numQubits,
		numClbits:    numClbits,
		paramsJSON:   paramsJSON,
	}, nil
}

// Name returns the shared snapshot instruction name.
func (s Snapshot) Name() string {
	return snapshotInstructionName
}

// NumQubits returns the size of the snapshot register.
func (s Snapshot) NumQubits() int {
	return s.numQubits
}

// NumClbits returns the number of classical bits the snapshot covers.
func (s Snapshot) NumClbits() int {
	return s.numClbits
}

// Label returns the label under which the captured data is reported.
func (s Snapshot) Label() string {
	return s.label
}

// SnapshotType returns the snapshot type tag forwarded to the backend.
func (s Snapshot) SnapshotType() SnapshotTypeString {
	return s.snapshotType
}

// ParamsJSON returns the serialized snapshot parameters, nil if there are none.
func (s Snapshot) ParamsJSON() []byte {
	return s.paramsJSON
}
