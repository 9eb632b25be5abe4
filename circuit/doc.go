// Package circuit provides core abstractions for building quantum circuits
// that carry simulator snapshot instructions.
//
// A Circuit is assembled from quantum and classical registers, ordinary gate
// instructions, and Snapshot instructions that tell a simulator backend to
// capture state while executing the circuit.
//
// Snapshot instructions are created with the Build* factory functions
// (BuildSnapshotStabilizer, BuildSnapshotExpectationValue, ...) or, more
// conveniently, appended through the corresponding Circuit methods which
// resolve the snapshot register automatically.
//
// Common usage pattern:
//
//	qreg, _ := circuit.BuildQuantumRegister("q", 2)
//	creg, _ := circuit.BuildClassicalRegister("c", 2)
//	circ, _ := circuit.NewCircuitWithRegisters("bell", qreg, creg)
//
//	_ = circ.H(0)
//	_ = circ.CX(0, 1)
//	_ = circ.SnapshotStabilizer("after_entangling")
//
//	qobjJSON, _ := circ.MarshalQobj()
package circuit
