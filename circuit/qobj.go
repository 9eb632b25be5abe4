package circuit

import (
	"encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var ErrMarshalingCircuitFailed = errors.New("marshaling circuit failed")

type qobjRegister struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type qobjHeader struct {
	Name       string         `json:"name"`
	NumQubits  int            `json:"n_qubits"`
	MemorySize int            `json:"memory_slots"`
	Qregs      []qobjRegister `json:"qreg_sizes,omitempty"`
	Cregs      []qobjRegister `json:"creg_sizes,omitempty"`
}

type qobjInstruction struct {
	Name         string          `json:"name"`
	Qubits       []int           `json:"qubits,omitempty"`
	Memory       []int           `json:"memory,omitempty"`
	Label        string          `json:"label,omitempty"`
	SnapshotType string          `json:"snapshot_type,omitempty"`
	Params       json.RawMessage `json:"params,omitempty"`
}

type qobjExperiment struct {
	Header       qobjHeader        `json:"header"`
	Instructions []qobjInstruction `json:"instructions"`
}

// MarshalQobj serializes the circuit as one qobj experiment, the JSON form a
// simulator backend consumes. Snapshot instructions carry their label and
// snapshot type tag alongside the shared instruction name.
func (c *Circuit) MarshalQobj() ([]byte, error) {
	experiment := qobjExperiment{
		Header: qobjHeader{
			Name:       c.name,
			NumQubits:  c.numQubits,
			MemorySize: c.numClbits,
			Qregs:      qobjRegistersFromQuantum(c.qregs),
			Cregs:      qobjRegistersFromClassical(c.cregs),
		},
		Instructions: make([]qobjInstruction, 0, len(c.operations)),
	}

	for _, operation := range c.operations {
		entry, entryErr := qobjInstructionFromOperation(operation)
		if entryErr != nil {
			return nil, errors.Join(ErrMarshalingCircuitFailed, entryErr)
		}

		experiment.Instructions = append(experiment.Instructions, entry)
	}

	qobjJSON, marshalErr := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(experiment)
	if marshalErr != nil {
		return nil, errors.Join(ErrMarshalingCircuitFailed, marshalErr)
	}

	return qobjJSON, nil
}

func qobjInstructionFromOperation(operation Operation) (qobjInstruction, error) {
	entry := qobjInstruction{
		Name:   operation.Instruction().Name(),
		Qubits: operation.Qubits(),
		Memory: operation.Clbits(),
	}

	switch instruction := operation.Instruction().(type) {
	case Snapshot:
		entry.Label = instruction.Label()
		entry.SnapshotType = instruction.SnapshotType()
		entry.Params = instruction.ParamsJSON()

	case Gate:
		if len(instruction.Params()) > 0 {
			paramsJSON, marshalErr := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(instruction.Params())
			if marshalErr != nil {
				return qobjInstruction{}, marshalErr
			}

			entry.Params = paramsJSON
		}
	}

	return entry, nil
}

func qobjRegistersFromQuantum(qregs []QuantumRegister) []qobjRegister {
	registers := make([]qobjRegister, 0, len(qregs))
	for _, qreg := range qregs {
		registers = append(registers, qobjRegister{Name: qreg.Name(), Size: qreg.Size()})
	}

	return registers
}

func qobjRegistersFromClassical(cregs []ClassicalRegister) []qobjRegister {
	registers := make([]qobjRegister, 0, len(cregs))
	for _, creg := range cregs {
		registers = append(registers, qobjRegister{Name: creg.Name(), Size: creg.Size()})
	}

	return registers
}
