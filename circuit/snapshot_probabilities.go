package circuit

// BuildSnapshotProbabilities is a factory method for a measurement
// probabilities Snapshot. The variance flag selects the
// "probabilities_with_variance" type tag instead of "probabilities".
func BuildSnapshotProbabilities(label string, variance bool, numQubits int, numClbits int) (Snapshot, error) {
	snapshotType := SnapshotTypeProbabilities
	if variance {
		snapshotType = SnapshotTypeProbabilitiesWithVariance
	}

	return BuildSnapshot(label, snapshotType, numQubits, numClbits, nil)
}

// SnapshotProbabilities appends a measurement probabilities snapshot to the
// circuit.
//
// Without explicit qubits the snapshot register is the full width of the
// circuit.
func (c *Circuit) SnapshotProbabilities(label string, qubits ...int) error {
	return c.appendProbabilitiesSnapshot(label, false, qubits)
}

// SnapshotProbabilitiesWithVariance appends a measurement probabilities
// snapshot that additionally captures the variance per outcome.
func (c *Circuit) SnapshotProbabilitiesWithVariance(label string, qubits ...int) error {
	return c.appendProbabilitiesSnapshot(label, true, qubits)
}

func (c *Circuit) appendProbabilitiesSnapshot(label string, variance bool, qubits []int) error {
	register, registerErr := c.snapshotRegister(qubits)
	if registerErr != nil {
		return registerErr
	}

	snapshot, buildErr := BuildSnapshotProbabilities(label, variance, len(register), 0)
	if buildErr != nil {
		return buildErr
	}

	return c.appendSnapshot(snapshot, register)
}
