package circuit

import (
	"errors"
)

var ErrEmptyRegisterName = errors.New("register name must not be empty")
var ErrInvalidRegisterSize = errors.New("register size must be at least 1")

// QuantumRegister is a named group of qubits.
//
// While its properties are only readable through accessors, it should only be
// constructed with the supplied factory method BuildQuantumRegister.
type QuantumRegister struct {
	name string
	size int
}

// BuildQuantumRegister is a factory method for QuantumRegister.
//
// Returns an error if the name is empty or the size is smaller than 1.
func BuildQuantumRegister(name string, size int) (QuantumRegister, error) {
	if name == "" {
		return QuantumRegister{}, ErrEmptyRegisterName
	}

	if size < 1 {
		return QuantumRegister{}, ErrInvalidRegisterSize
	}

	return QuantumRegister{name: name, size: size}, nil
}

// Name returns the register name.
func (r QuantumRegister) Name() string {
	return r.name
}

// Size returns the number of qubits in the register.
func (r QuantumRegister) Size() int {
	return r.size
}

// ClassicalRegister is a named group of classical bits used to hold
// measurement outcomes.
type ClassicalRegister struct {
	name string
	size int
}

// BuildClassicalRegister is a factory method for ClassicalRegister.
//
// Returns an error if the name is empty or the size is smaller than 1.
func BuildClassicalRegister(name string, size int) (ClassicalRegister, error) {
	if name == "" {
		return ClassicalRegister{}, ErrEmptyRegisterName
	}

	if size < 1 {
		return ClassicalRegister{}, ErrInvalidRegisterSize
	}

	return ClassicalRegister{name: name, size: size}, nil
}

// Name returns the register name.
func (r ClassicalRegister) Name() string {
	return r.name
}

// Size returns the number of classical bits in the register.
func (r ClassicalRegister) Size() int {
	return r.size
}
