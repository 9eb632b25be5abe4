package circuit

// BuildSnapshotDensityMatrix is a factory method for a reduced density
// matrix Snapshot.
func BuildSnapshotDensityMatrix(label string, numQubits int, numClbits int) (Snapshot, error) {
	return BuildSnapshot(label, SnapshotTypeDensityMatrix, numQubits, numClbits, nil)
}

// SnapshotDensityMatrix appends a density matrix snapshot to the circuit.
//
// Without explicit qubits the snapshot register is the full width of the
// circuit.
func (c *Circuit) SnapshotDensityMatrix(label string, qubits ...int) error {
	register, registerErr := c.snapshotRegister(qubits)
	if registerErr != nil {
		return registerErr
	}

	snapshot, buildErr := BuildSnapshotDensityMatrix(label, len(register), 0)
	if buildErr != nil {
		return buildErr
	}

	return c.appendSnapshot(snapshot, register)
}
