package circuit

// BuildSnapshotStatevector is a factory method for a statevector Snapshot.
func BuildSnapshotStatevector(label string, numQubits int, numClbits int) (Snapshot, error) {
	return BuildSnapshot(label, SnapshotTypeStatevector, numQubits, numClbits, nil)
}

// SnapshotStatevector appends a statevector snapshot to the circuit.
//
// Without explicit qubits the snapshot register is the full width of the
// circuit.
func (c *Circuit) SnapshotStatevector(label string, qubits ...int) error {
	register, registerErr := c.snapshotRegister(qubits)
	if registerErr != nil {
		return registerErr
	}

	snapshot, buildErr := BuildSnapshotStatevector(label, len(register), 0)
	if buildErr != nil {
		return buildErr
	}

	return c.appendSnapshot(snapshot, register)
}
