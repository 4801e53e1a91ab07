package matrix

import (
	"math"

	"github.com/ezoic/olsfit/pkg/errors"
)

// DefaultTolerance is the smallest pivot magnitude Invert accepts.
const DefaultTolerance = 1e-10

// Invert returns the inverse of the square matrix m using Gauss-Jordan
// elimination with partial pivoting and DefaultTolerance.
//
// The augmented matrix [m | I] is reduced column by column. For each pivot
// column i the row in [i, n) holding the largest |value| in column i is
// swapped into place (ties keep the lowest row index), the pivot row is
// scaled so the diagonal becomes 1, and column i is eliminated from every
// other row. The right half of the reduced matrix is the inverse.
//
// Parameters:
//   - m: square matrix of shape (n, n); it is not modified
//
// Returns:
//   - [][]float64: the (n, n) inverse
//   - error: nil on success
//
// Errors:
//   - ErrNotSquare: m is empty, ragged or not square
//   - ErrSingularMatrix: a pivot magnitude fell below the tolerance; the
//     returned *SingularMatrixError names the pivot column
//
// Example:
//
//	inv, err := matrix.Invert([][]float64{{4, 7}, {2, 6}})
//	// inv ≈ [[0.6, -0.7], [-0.2, 0.4]]
func Invert(m [][]float64) ([][]float64, error) {
	return InvertTol(m, DefaultTolerance)
}

// InvertTol is Invert with an explicit pivot tolerance.
func InvertTol(m [][]float64, tol float64) ([][]float64, error) {
	if math.IsNaN(tol) || tol < 0 {
		return nil, errors.NewValidationError("tolerance", "must be a non-negative number", tol)
	}

	n := len(m)
	if n == 0 {
		return nil, errors.Wrap(errors.ErrNotSquare, "Invert: empty matrix")
	}
	for i := range m {
		if len(m[i]) != n {
			return nil, errors.Wrapf(errors.ErrNotSquare, "Invert: row %d has %d columns, want %d", i, len(m[i]), n)
		}
	}

	// Build [m | I]
	width := 2 * n
	aug := New(n, width)
	for i := 0; i < n; i++ {
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}

	for i := 0; i < n; i++ {
		maxRow := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[maxRow][i]) {
				maxRow = k
			}
		}
		aug[i], aug[maxRow] = aug[maxRow], aug[i]

		if math.Abs(aug[i][i]) < tol {
			return nil, errors.NewSingularMatrixError("Invert", i, math.Abs(aug[i][i]))
		}

		pivot := aug[i][i]
		for j := 0; j < width; j++ {
			aug[i][j] /= pivot
		}

		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			factor := aug[k][i]
			if factor == 0 {
				continue
			}
			for j := 0; j < width; j++ {
				aug[k][j] -= factor * aug[i][j]
			}
		}
	}

	inv := New(n, n)
	for i := 0; i < n; i++ {
		copy(inv[i], aug[i][n:])
	}
	return inv, nil
}
