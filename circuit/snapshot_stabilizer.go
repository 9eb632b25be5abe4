package circuit

// BuildSnapshotStabilizer is a factory method for a stabilizer state Snapshot.
//
// It forwards the fixed type tag "stabilizer" to the backend; stabilizer
// snapshots carry no parameters.
func BuildSnapshotStabilizer(label string, numQubits int, numClbits int) (Snapshot, error) {
	return BuildSnapshot(label, SnapshotTypeStabilizer, numQubits, numClbits, nil)
}

// SnapshotStabilizer appends a stabilizer state snapshot to the circuit.
//
// Without explicit qubits the snapshot register is the full width of the
// circuit.
func (c *Circuit) SnapshotStabilizer(label string, qubits ...int) error {
	register, registerErr := c.snapshotRegister(qubits)
	if registerErr != nil {
		return registerErr
	}

	snapshot, buildErr := BuildSnapshotStabilizer(label, len(register), 0)
	if buildErr != nil {
		return buildErr
	}

	return c.appendSnapshot(snapshot, register)
}
