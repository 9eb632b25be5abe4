package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qsimkit/circuit-snapshots-go/circuit"
)

func Test_Circuit_MarshalQobj(t *testing.T) {
	circ := newTwoQubitCircuit(t)

	assert.NoError(t, circ.H(0))
	assert.NoError(t, circ.CX(0, 1))
	assert.NoError(t, circ.SnapshotStabilizer("bell_state"))

	zz, err := circuit.BuildPauliOperator(circuit.PauliTerm{Coeff: 1, Paulis: "ZZ"})
	assert.NoError(t, err)
	assert.NoError(t, circ.SnapshotExpectationValue("zz_corr", zz))

	assert.NoError(t, circ.Measure(0, 0))
	assert.NoError(t, circ.Measure(1, 1))

	qobjJSON, marshalErr := circ.MarshalQobj()

	assert.NoError(t, marshalErr)
	assert.JSONEq(t, `{
		"header": {
			"name": "test",
			"n_qubits": 2,
			"memory_slots": 2,
			"qreg_sizes": [{"name": "q", "size": 2}],
			"creg_sizes": [{"name": "c", "size": 2}]
		},
		"instructions": [
			{"name": "h", "qubits": [0]},
			{"name": "cx", "qubits": [0, 1]},
			{
				"name": "snapshot",
				"qubits": [0, 1],
				"label": "bell_state",
				"snapshot_type": "stabilizer"
			},
			{
				"name": "snapshot",
				"qubits": [0, 1],
				"label": "zz_corr",
				"snapshot_type": "expectation_value_pauli",
				"params": [[[1, 0], "ZZ"]]
			},
			{"name": "measure", "qubits": [0], "memory": [0]},
			{"name": "measure", "qubits": [1], "memory": [1]}
		]
	}`, string(qobjJSON))
}

func Test_Circuit_MarshalQobj_EmptyCircuit(t *testing.T) {
	circ := circuit.NewCircuit("empty")

	qobjJSON, err := circ.MarshalQobj()

	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"header": {"name": "empty", "n_qubits": 0, "memory_slots": 0},
		"instructions": []
	}`, string(qobjJSON))
}

func Test_Circuit_MarshalQobj_GateParams(t *testing.T) {
	circ := newTwoQubitCircuit(t)

	rz, err := circuit.BuildGate("rz", 1, 0, 0.25)
	assert.NoError(t, err)
	assert.NoError(t, circ.Append(rz, []int{1}, nil))

	qobjJSON, marshalErr := circ.MarshalQobj()

	assert.NoError(t, marshalErr)
	assert.Contains(t, string(qobjJSON), `"name":"rz"`)
	assert.Contains(t, string(qobjJSON), `"params":[0.25]`)
}
