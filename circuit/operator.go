package circuit

import (
	"errors"
	"math/bits"

	jsoniter "github.com/json-iterator/go"
)

var ErrEmptyOperator = errors.New("operator must have at least one term")
var ErrInconsistentPauliLength = errors.New("all pauli strings of an operator must have the same length")
var ErrInvalidPauliChar = errors.New("pauli strings may only contain I, X, Y and Z")
var ErrNonSquareMatrix = errors.New("operator matrix must be square")
var ErrInvalidMatrixDimension = errors.New("operator matrix dimension must be a power of two")

// Operator is an observable whose expectation value can be captured with an
// expectation value snapshot.
type Operator interface {
	// NumQubits returns the number of qubits the operator acts on.
	NumQubits() int

	// IsPauli reports whether the operator is given as a sum of Pauli terms.
	IsPauli() bool

	// ParamsJSON returns the operator serialized as snapshot instruction
	// parameters.
	ParamsJSON() ([]byte, error)
}

/***** PauliOperator *****/

// PauliTerm is one weighted Pauli string of a PauliOperator,
// e.g. 0.5 * "XX".
type PauliTerm struct {
	Coeff  complex128
	Paulis string
}

// PauliOperator is an observable given as a sum of weighted Pauli strings.
type PauliOperator struct {
	terms []PauliTerm
}

// BuildPauliOperator is a factory method for PauliOperator.
//
// It validates that at least one term is given, that all Pauli strings have
// the same non-zero length, and that they only contain I, X, Y and Z.
func BuildPauliOperator(term PauliTerm, terms ...PauliTerm) (PauliOperator, error) {
	allTerms := append([]PauliTerm{term}, terms...)

	width := len(allTerms[0].Paulis)
	if width == 0 {
		return PauliOperator{}, ErrEmptyOperator
	}

	for _, t := range allTerms {
		if len(t.Paulis) != width {
			return PauliOperator{}, ErrInconsistentPauliLength
		}

		for _, ch := range t.Paulis {
			switch ch {
			case 'I', 'X', 'Y', 'Z':
			default:
				return PauliOperator{}, ErrInvalidPauliChar
			}
		}
	}

	return PauliOperator{terms: allTerms}, nil
}

// Terms returns the weighted Pauli strings of the operator.
func (p PauliOperator) Terms() []PauliTerm {
	return p.terms
}

// NumQubits returns the length of the Pauli strings.
func (p PauliOperator) NumQubits() int {
	if len(p.terms) == 0 {
		return 0
	}

	return len(p.terms[0].Paulis)
}

// IsPauli reports that the operator is given as Pauli terms.
func (p PauliOperator) IsPauli() bool {
	return true
}

// ParamsJSON serializes the operator as a list of [[re, im], "paulis"] pairs.
func (p PauliOperator) ParamsJSON() ([]byte, error) {
	params := make([][2]any, 0, len(p.terms))

	for _, t := range p.terms {
		params = append(params, [2]any{complexPair(t.Coeff), t.Paulis})
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(params)
}

/***** MatrixOperator *****/

// MatrixOperator is an observable given as a dense square matrix whose
// dimension is a power of two.
type MatrixOperator struct {
	matrix [][]complex128
}

// BuildMatrixOperator is a factory method for MatrixOperator.
//
// It validates that the matrix is square and that its dimension is a
// power of two.
func BuildMatrixOperator(matrix [][]complex128) (MatrixOperator, error) {
	dim := len(matrix)
	if dim == 0 {
		return MatrixOperator{}, ErrEmptyOperator
	}

	for _, row := range matrix {
		if len(row) != dim {
			return MatrixOperator{}, ErrNonSquareMatrix
		}
	}

	if bits.OnesCount(uint(dim)) != 1 {
		return MatrixOperator{}, ErrInvalidMatrixDimension
	}

	return MatrixOperator{matrix: matrix}, nil
}

// Matrix returns the operator matrix.
func (m MatrixOperator) Matrix() [][]complex128 {
	return m.matrix
}

// NumQubits returns log2 of the matrix dimension.
func (m MatrixOperator) NumQubits() int {
	return bits.TrailingZeros(uint(len(m.matrix)))
}

// IsPauli reports that the operator is not given as Pauli terms.
func (m MatrixOperator) IsPauli() bool {
	return false
}

// ParamsJSON serializes the matrix as nested lists of [re, im] pairs.
func (m MatrixOperator) ParamsJSON() ([]byte, error) {
	rows := make([][][2]float64, 0, len(m.matrix))

	for _, row := range m.matrix {
		cells := make([][2]float64, 0, len(row))
		for _, cell := range row {
			cells = append(cells, complexPair(cell))
		}

		rows = append(rows, cells)
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(rows)
}

// complexPair converts a complex number to the [re, im] wire representation.
func complexPair(z complex128) [2]float64 {
	return [2]float64{real(z), imag(z)}
}
