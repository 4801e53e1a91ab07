package matrix

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/olsfit/pkg/errors"
)

func assertMatrixInDelta(t *testing.T, want, got [][]float64, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Len(t, got[i], len(want[i]), "row %d", i)
		for j := range want[i] {
			assert.InDelta(t, want[i][j], got[i][j], delta, "element (%d,%d)", i, j)
		}
	}
}

// randomWellConditioned returns a diagonally dominant n×n matrix.
func randomWellConditioned(rng *rand.Rand, n int) [][]float64 {
	m := New(n, n)
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			m[i][j] = rng.Float64()*2 - 1
			rowSum += math.Abs(m[i][j])
		}
		m[i][i] = rowSum + 1 + rng.Float64()
	}
	return m
}

func TestTranspose(t *testing.T) {
	tests := []struct {
		name    string
		m       [][]float64
		want    [][]float64
		wantErr error
	}{
		{
			name: "2x3",
			m:    [][]float64{{1, 2, 3}, {4, 5, 6}},
			want: [][]float64{{1, 4}, {2, 5}, {3, 6}},
		},
		{
			name: "row vector",
			m:    [][]float64{{7, 8}},
			want: [][]float64{{7}, {8}},
		},
		{name: "nil", m: nil, wantErr: errors.ErrInvalidArgument},
		{name: "empty first row", m: [][]float64{{}}, wantErr: errors.ErrInvalidArgument},
		{name: "ragged", m: [][]float64{{1, 2}, {3}}, wantErr: errors.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transpose(tt.m)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransposeTwiceIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	m := New(4, 3)
	for i := range m {
		for j := range m[i] {
			m[i][j] = rng.NormFloat64() * 1e6
		}
	}

	once, err := Transpose(m)
	require.NoError(t, err)
	twice, err := Transpose(once)
	require.NoError(t, err)

	assert.Equal(t, m, twice)
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		name    string
		a, b    [][]float64
		want    [][]float64
		wantErr error
	}{
		{
			name: "2x3 by 3x2",
			a:    [][]float64{{1, 2, 3}, {4, 5, 6}},
			b:    [][]float64{{7, 8}, {9, 10}, {11, 12}},
			want: [][]float64{{58, 64}, {139, 154}},
		},
		{
			name: "identity",
			a:    [][]float64{{2, -1}, {0.5, 3}},
			b:    Identity(2),
			want: [][]float64{{2, -1}, {0.5, 3}},
		},
		{
			name:    "2x3 by 2x2",
			a:       [][]float64{{1, 2, 3}, {4, 5, 6}},
			b:       [][]float64{{1, 2}, {3, 4}},
			wantErr: errors.ErrDimensionMismatch,
		},
		{name: "nil left", a: nil, b: Identity(2), wantErr: errors.ErrInvalidArgument},
		{name: "empty right", a: Identity(2), b: [][]float64{}, wantErr: errors.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Multiply(tt.a, tt.b)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiplyDimensionError(t *testing.T) {
	_, err := Multiply(New(2, 3), New(2, 2))

	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)
}

func TestMultiplyVector(t *testing.T) {
	a := [][]float64{{1, 2}, {3, 4}, {5, 6}}

	got, err := MultiplyVector(a, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, got)

	_, err = MultiplyVector(a, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))

	_, err = MultiplyVector(a, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = MultiplyVector(nil, []float64{1})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestInvert(t *testing.T) {
	got, err := Invert([][]float64{{4, 7}, {2, 6}})
	require.NoError(t, err)
	assertMatrixInDelta(t, [][]float64{{0.6, -0.7}, {-0.2, 0.4}}, got, 1e-12)

	// zero leading entry forces a row swap
	got, err = Invert([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	assertMatrixInDelta(t, [][]float64{{0, 1}, {1, 0}}, got, 0)
}

func TestInvertPivotSelection(t *testing.T) {
	t.Run("largest magnitude wins", func(t *testing.T) {
		// pivoting on the 1e-11 entry would fail the tolerance check
		m := [][]float64{{1e-11, 1}, {1, 1}}
		inv, err := Invert(m)
		require.NoError(t, err)

		prod, err := Multiply(m, inv)
		require.NoError(t, err)
		assertMatrixInDelta(t, Identity(2), prod, 1e-9)
	})

	// Column 0 ties across all rows. Keeping row 0 leaves pivots 1, 1, 0.5;
	// taking a later tied row leaves 1, 0.5, 1.
	tied := [][]float64{{1, 1, 1}, {1, 0, 1}, {1, 0.5, 0.5}}

	t.Run("ties keep lowest row", func(t *testing.T) {
		_, err := InvertTol(tied, 0.75)

		var singular *errors.SingularMatrixError
		require.True(t, errors.As(err, &singular), "got %v", err)
		assert.Equal(t, 2, singular.Pivot)
		assert.InDelta(t, 0.5, singular.Value, 1e-15)
	})

	t.Run("tied matrix inverts", func(t *testing.T) {
		inv, err := Invert(tied)
		require.NoError(t, err)
		assertMatrixInDelta(t, [][]float64{{-1, 0, 2}, {1, -1, 0}, {1, 1, -2}}, inv, 1e-12)
	})
}

func TestInvertDoesNotMutateInput(t *testing.T) {
	m := [][]float64{{0, 2, 1}, {1, 0, 0}, {3, 1, 4}}
	orig := Clone(m)

	_, err := Invert(m)
	require.NoError(t, err)
	assert.Equal(t, orig, m)
}

func TestInvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		m       [][]float64
		wantErr error
	}{
		{name: "singular", m: [][]float64{{1, 2}, {2, 4}}, wantErr: errors.ErrSingularMatrix},
		{name: "zero", m: New(3, 3), wantErr: errors.ErrSingularMatrix},
		{name: "below tolerance", m: [][]float64{{1e-11}}, wantErr: errors.ErrSingularMatrix},
		{name: "not square", m: New(2, 3), wantErr: errors.ErrNotSquare},
		{name: "ragged", m: [][]float64{{1, 2}, {3}}, wantErr: errors.ErrNotSquare},
		{name: "empty", m: nil, wantErr: errors.ErrNotSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Invert(tt.m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestInvertSingularReportsPivot(t *testing.T) {
	_, err := Invert([][]float64{{1, 2}, {2, 4}})

	var singular *errors.SingularMatrixError
	require.True(t, errors.As(err, &singular))
	assert.Equal(t, 1, singular.Pivot)
	assert.Less(t, singular.Value, DefaultTolerance)
}

func TestInvertTol(t *testing.T) {
	m := [][]float64{{1e-11}}

	got, err := InvertTol(m, 1e-12)
	require.NoError(t, err)
	assert.InDelta(t, 1e11, got[0][0], 1)

	_, err = InvertTol(m, -1)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestInvertProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))

	for _, n := range []int{1, 2, 3, 5, 8} {
		m := randomWellConditioned(rng, n)

		inv, err := Invert(m)
		require.NoError(t, err)

		back, err := Invert(inv)
		require.NoError(t, err)
		assertMatrixInDelta(t, m, back, 1e-9)

		prod, err := Multiply(m, inv)
		require.NoError(t, err)
		assertMatrixInDelta(t, Identity(n), prod, 1e-9)
	}
}

func TestInvertMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	m := randomWellConditioned(rng, 6)

	got, err := Invert(m)
	require.NoError(t, err)

	d, err := ToDense(m)
	require.NoError(t, err)
	var want mat.Dense
	require.NoError(t, want.Inverse(d))

	assertMatrixInDelta(t, FromDense(&want), got, 1e-9)
}

func TestDenseRoundTrip(t *testing.T) {
	m := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	d, err := ToDense(m)
	require.NoError(t, err)

	r, c := d.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, m, FromDense(d))

	_, err = ToDense(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestCloneIsDeep(t *testing.T) {
	m := [][]float64{{1, 2}, {3, 4}}
	c := Clone(m)
	c[0][0] = 99
	assert.Equal(t, 1.0, m[0][0])
	assert.Nil(t, Clone(nil))
}
