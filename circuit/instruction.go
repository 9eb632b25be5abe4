package circuit

import (
	"errors"
)

var ErrEmptyInstructionName = errors.New("instruction name must not be empty")
var ErrNegativeBitCount = errors.New("instruction bit counts must not be negative")

// Instruction is implemented by everything that can be appended to a Circuit:
// ordinary gates, measurements, and simulator snapshot instructions.
type Instruction interface {
	// Name returns the instruction name as it appears in serialized circuits.
	Name() string

	// NumQubits returns the number of qubits the instruction acts on.
	NumQubits() int

	// NumClbits returns the number of classical bits the instruction writes to.
	NumClbits() int
}

/***** Gate *****/

// Gate is a plain circuit instruction with optional real-valued parameters,
// e.g. rotation angles.
//
// It should only be constructed with BuildGate or one of the fixed-arity
// helpers (HGate, XGate, CXGate, MeasureInstruction).
type Gate struct {
	name      string
	numQubits int
	numClbits int
	params    []float64
}

// BuildGate is a factory method for Gate.
//
// Returns an error if the name is empty or a bit count is negative.
func BuildGate(name string, numQubits int, numClbits int, params ...float64) (Gate, error) {
	if name == "" {
		return Gate{}, ErrEmptyInstructionName
	}

	if numQubits < 0 || numClbits < 0 {
		return Gate{}, ErrNegativeBitCount
	}

	return Gate{name: name, numQubits: numQubits, numClbits: numClbits, params: params}, nil
}

// Name returns the gate name.
func (g Gate) Name() string {
	return g.name
}

// NumQubits returns the number of qubits the gate acts on.
func (g Gate) NumQubits() int {
	return g.numQubits
}

// NumClbits returns the number of classical bits the gate writes to.
func (g Gate) NumClbits() int {
	return g.numClbits
}

// Params returns the gate parameters.
func (g Gate) Params() []float64 {
	return g.params
}

/***** Fixed-arity helpers *****/

// HGate returns a Hadamard gate on one qubit.
func HGate() Gate {
	return Gate{name: "h", numQubits: 1}
}

// XGate returns a Pauli-X gate on one qubit.
func XGate() Gate {
	return Gate{name: "x", numQubits: 1}
}

// CXGate returns a controlled-X gate on two qubits.
func CXGate() Gate {
	return Gate{name: "cx", numQubits: 2}
}

// MeasureInstruction returns a measurement of one qubit into one classical bit.
func MeasureInstruction() Gate {
	return Gate{name: "measure", numQubits: 1, numClbits: 1}
}

/***** Operation *****/

// Operation is an Instruction bound to concrete qubit and classical bit
// indices of a Circuit. Operations are created by Circuit.Append and are
// retrieved with Circuit.Operations.
type Operation struct {
	instruction Instruction
	qubits      []int
	clbits      []int
}

// Instruction returns the bound instruction.
func (o Operation) Instruction() Instruction {
	return o.instruction
}

// Qubits returns the qubit indices the instruction is applied to.
func (o Operation) Qubits() []int {
	return o.qubits
}

// Clbits returns the classical bit indices the instruction writes to.
func (o Operation) Clbits() []int {
	return o.clbits
}
