package circuit

import (
	"errors"
)

var ErrOperatorQubitMismatch = errors.New("operator width does not match the snapshot register")

// expectationValueSnapshotType selects the snapshot type tag for an
// expectation value snapshot from the operator form and the variance flag.
func expectationValueSnapshotType(pauli bool, variance bool) SnapshotTypeString {
	if pauli {
		if variance {
			return SnapshotTypeExpectationValuePauliWithVariance
		}

		return SnapshotTypeExpectationValuePauli
	}

	if variance {
		return SnapshotTypeExpectationValueMatrixWithVariance
	}

	return SnapshotTypeExpectationValueMatrix
}

// BuildSnapshotExpectationValue is a factory method for an expectation value
// Snapshot of the given operator.
//
// The operator form (Pauli terms or dense matrix) together with the variance
// flag determines which of the four expectation value type tags is forwarded
// to the backend. The snapshot parameters are the serialized operator.
//
// A numQubits of 0 means the snapshot covers exactly the operator width.
func BuildSnapshotExpectationValue(
	label string,
	op Operator,
	variance bool,
	numQubits int,
	numClbits int,
) (Snapshot, error) {

	paramsJSON, paramsErr := op.ParamsJSON()
	if paramsErr != nil {
		return Snapshot{}, paramsErr
	}

	if numQubits == 0 {
		numQubits = op.NumQubits()
	}

	snapshotType := expectationValueSnapshotType(op.IsPauli(), variance)

	return BuildSnapshot(label, snapshotType, numQubits, numClbits, paramsJSON)
}

// SnapshotExpectationValue appends an expectation value snapshot of the given
// operator to the circuit.
//
// Without explicit qubits the snapshot register is the full width of the
// circuit; either way the register must match the operator width.
func (c *Circuit) SnapshotExpectationValue(label string, op Operator, qubits ...int) error {
	return c.appendExpectationValueSnapshot(label, op, false, qubits)
}

// SnapshotExpectationValueWithVariance appends an expectation value snapshot
// that additionally captures the variance of the observable.
func (c *Circuit) SnapshotExpectationValueWithVariance(label string, op Operator, qubits ...int) error {
	return c.appendExpectationValueSnapshot(label, op, true, qubits)
}

func (c *Circuit) appendExpectationValueSnapshot(
	label string,
	op Operator,
	variance bool,
	qubits []int,
) error {

	register, registerErr := c.snapshotRegister(qubits)
	if registerErr != nil {
		return registerErr
	}

	if op.NumQubits() != len(register) {
		return ErrOperatorQubitMismatch
	}

	snapshot, buildErr := BuildSnapshotExpectationValue(label, op, variance, len(register), 0)
	if buildErr != nil {
		return buildErr
	}

	return c.appendSnapshot(snapshot, register)
}
