package circuit

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrDuplicateRegisterName = errors.New("a register with this name was already added")
var ErrInstructionArityMismatch = errors.New("bit count does not match the instruction arity")
var ErrQubitOutOfRange = errors.New("qubit index is out of range")
var ErrClbitOutOfRange = errors.New("classical bit index is out of range")
var ErrDuplicateQubit = errors.New("duplicate qubit index")
var ErrNoQubitsInCircuit = errors.New("circuit has no qubits")

// Circuit is an ordered sequence of instructions over quantum and classical
// registers. It is not safe for concurrent use.
type Circuit struct {
	name       string
	qregs      []QuantumRegister
	cregs      []ClassicalRegister
	numQubits  int
	numClbits  int
	operations []Operation
}

// NewCircuit creates an empty Circuit without registers.
// If the name is empty, a unique one is generated.
func NewCircuit(name string) *Circuit {
	if name == "" {
		name = fmt.Sprintf("circuit-%.8s", uuid.NewString())
	}

	return &Circuit{name: name}
}

// NewCircuitWithRegisters creates a Circuit holding the given registers.
func NewCircuitWithRegisters(
	name string,
	qreg QuantumRegister,
	creg ClassicalRegister,
) (*Circuit, error) {

	c := NewCircuit(name)

	if err := c.AddQuantumRegister(qreg); err != nil {
		return nil, err
	}

	if err := c.AddClassicalRegister(creg); err != nil {
		return nil, err
	}

	return c, nil
}

// AddQuantumRegister appends a quantum register to the circuit.
// Register names must be unique within the circuit.
func (c *Circuit) AddQuantumRegister(qreg QuantumRegister) error {
	for _, existing := range c.qregs {
		if existing.Name() == qreg.Name() {
			return ErrDuplicateRegisterName
		}
	}

	c.qregs = append(c.qregs, qreg)
	c.numQubits += qreg.Size()

	return nil
}

// AddClassicalRegister appends a classical register to the circuit.
// Register names must be unique within the circuit.
func (c *Circuit) AddClassicalRegister(creg ClassicalRegister) error {
	for _, existing := range c.cregs {
		if existing.Name() == creg.Name() {
			return ErrDuplicateRegisterName
		}
	}

	c.cregs = append(c.cregs, creg)
	c.numClbits += creg.Size()

	return nil
}

// Name returns the circuit name.
func (c *Circuit) Name() string {
	return c.name
}

// NumQubits returns the total number of qubits over all quantum registers.
func (c *Circuit) NumQubits() int {
	return c.numQubits
}

// NumClbits returns the total number of classical bits over all classical registers.
func (c *Circuit) NumClbits() int {
	return c.numClbits
}

// QuantumRegisters returns the quantum registers of the circuit.
func (c *Circuit) QuantumRegisters() []QuantumRegister {
	return c.qregs
}

// ClassicalRegisters returns the classical registers of the circuit.
func (c *Circuit) ClassicalRegisters() []ClassicalRegister {
	return c.cregs
}

// Operations returns the instructions appended so far, in order.
func (c *Circuit) Operations() []Operation {
	return c.operations
}

// Append binds an instruction to the given qubit and classical bit indices
// and adds it to the circuit.
//
// The number of indices must match the instruction arity, all indices must
// be in range, and qubit indices must not repeat.
func (c *Circuit) Append(instruction Instruction, qubits []int, clbits []int) error {
	if len(qubits) != instruction.NumQubits() || len(clbits) != instruction.NumClbits() {
		return ErrInstructionArityMismatch
	}

	if err := c.validateQubits(qubits); err != nil {
		return err
	}

	for _, clbit := range clbits {
		if clbit < 0 || clbit >= c.numClbits {
			return ErrClbitOutOfRange
		}
	}

	c.operations = append(c.operations, Operation{
		instruction: instruction,
		qubits:      qubits,
		clbits:      clbits,
	})

	return nil
}

// H applies a Hadamard gate to the given qubit.
func (c *Circuit) H(qubit int) error {
	return c.Append(HGate(), []int{qubit}, nil)
}

// X applies a Pauli-X gate to the given qubit.
func (c *Circuit) X(qubit int) error {
	return c.Append(XGate(), []int{qubit}, nil)
}

// CX applies a controlled-X gate to the given control and target qubits.
func (c *Circuit) CX(control int, target int) error {
	return c.Append(CXGate(), []int{control, target}, nil)
}

// Measure measures the given qubit into the given classical bit.
func (c *Circuit) Measure(qubit int, clbit int) error {
	return c.Append(MeasureInstruction(), []int{qubit}, []int{clbit})
}

// snapshotRegister resolves the qubit indices a snapshot instruction covers.
// An empty qubit list means the full width of the circuit.
func (c *Circuit) snapshotRegister(qubits []int) ([]int, error) {
	if c.numQubits == 0 {
		return nil, ErrNoQubitsInCircuit
	}

	if len(qubits) == 0 {
		register := make([]int, c.numQubits)
		for i := range register {
			register[i] = i
		}

		return register, nil
	}

	if err := c.validateQubits(qubits); err != nil {
		return nil, err
	}

	return qubits, nil
}

// validateQubits checks that all qubit indices are in range and unique.
func (c *Circuit) validateQubits(qubits []int) error {
	seen := make(map[int]struct{}, len(qubits))

	for _, qubit := range qubits {
		if qubit < 0 || qubit >= c.numQubits {
			return ErrQubitOutOfRange
		}

		if _, dup := seen[qubit]; dup {
			return ErrDuplicateQubit
		}

		seen[qubit] = struct{}{}
	}

	return nil
}

// appendSnapshot appends a pre-built snapshot over the given register.
func (c *Circuit) appendSnapshot(snapshot Snapshot, register []int) error {
	return c.Append(snapshot, register, nil)
}
