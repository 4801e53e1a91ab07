// Package matrix implements the dense linear-algebra primitives behind the
// normal-equation solver: transpose, matrix and matrix-vector products, and
// Gauss-Jordan inversion with partial pivoting.
//
// Matrices are row-major [][]float64 values (rows = observations, columns =
// features). Every function validates its operands before computing, never
// mutates its inputs and keeps no state, so calls are safe from concurrent
// goroutines as long as the inputs themselves are not being written.
//
// Example usage:
//
//	xt, err := matrix.Transpose(X)
//	xtx, err := matrix.Multiply(xt, X)
//	inv, err := matrix.Invert(xtx)
//
// Adapters to gonum/mat (FromDense, ToDense) let callers move between the two
// representations.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/olsfit/pkg/errors"
)

// Dims validates that m is a non-empty rectangular matrix and returns its
// shape.
func Dims(m [][]float64) (rows, cols int, err error) {
	return dims("Dims", m)
}

func dims(op string, m [][]float64) (int, int, error) {
	if len(m) == 0 {
		return 0, 0, errors.NewModelError(op, "nil or empty matrix", errors.ErrEmptyData)
	}
	cols := len(m[0])
	if cols == 0 {
		return 0, 0, errors.NewModelError(op, "first row is empty", errors.ErrEmptyData)
	}
	for i := 1; i < len(m); i++ {
		if len(m[i]) != cols {
			return 0, 0, errors.NewValueError(op,
				fmt.Sprintf("ragged matrix: row %d has %d columns, row 0 has %d", i, len(m[i]), cols))
		}
	}
	return len(m), cols, nil
}

// New allocates a zeroed rows×cols matrix backed by a single slice.
func New(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) [][]float64 {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Clone returns a deep copy of m.
func Clone(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Transpose returns the matrix B with B[j][i] = m[i][j].
//
// Errors:
//   - ErrInvalidArgument: m is nil, empty, has an empty first row or is ragged
func Transpose(m [][]float64) ([][]float64, error) {
	rows, cols, err := dims("Transpose", m)
	if err != nil {
		return nil, err
	}

	out := New(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out, nil
}

// Multiply returns the dense product a·b of shape rows(a)×cols(b).
//
// Errors:
//   - ErrInvalidArgument: either operand is nil, empty or ragged
//   - ErrDimensionMismatch: cols(a) != rows(b)
func Multiply(a, b [][]float64) ([][]float64, error) {
	aRows, aCols, err := dims("Multiply", a)
	if err != nil {
		return nil, err
	}
	bRows, bCols, err := dims("Multiply", b)
	if err != nil {
		return nil, err
	}
	if aCols != bRows {
		return nil, errors.NewDimensionError("Multiply", aCols, bRows, 0)
	}

	out := New(aRows, bCols)
	for i := 0; i < aRows; i++ {
		for j := 0; j < bCols; j++ {
			var sum float64
			for k := 0; k < aCols; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// MultiplyVector returns the matrix-vector product a·v of length rows(a).
//
// Errors:
//   - ErrInvalidArgument: a is nil, empty or ragged, or v is nil
//   - ErrDimensionMismatch: cols(a) != len(v)
func MultiplyVector(a [][]float64, v []float64) ([]float64, error) {
	rows, cols, err := dims("MultiplyVector", a)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.NewValueError("MultiplyVector", "nil vector")
	}
	if len(v) != cols {
		return nil, errors.NewDimensionError("MultiplyVector", cols, len(v), 1)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			sum += a[i][j] * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// FromDense copies any gonum matrix into a [][]float64.
func FromDense(a mat.Matrix) [][]float64 {
	r, c := a.Dims()
	out := New(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i][j] = a.At(i, j)
		}
	}
	return out
}

// ToDense copies m into a new *mat.Dense.
func ToDense(m [][]float64) (*mat.Dense, error) {
	rows, cols, err := dims("ToDense", m)
	if err != nil {
		return nil, err
	}
	d := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		d.SetRow(i, m[i])
	}
	return d, nil
}
