// Package dataset loads regression data into the row-major layout the
// models consume.
//
// A Dataset holds the feature matrix X, the response Y and the feature
// names. Loaders exist for CSV (one column is the target, every other column
// is a feature) and for a JSON document:
//
//	{"features": [[1.0, 2.0], [2.0, 3.5]], "target": [3.1, 5.2], "feature_names": ["a", "b"]}
//
// Example usage:
//
//	f, _ := os.Open("houses.csv")
//	ds, err := dataset.LoadCSV(f, dataset.CSVOptions{Target: "price"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	train, test, err := ds.Split(0.2)
package dataset

import (
	"fmt"
	"math"

	"github.com/ezoic/olsfit/core/matrix"
	"github.com/ezoic/olsfit/pkg/errors"
)

// Dataset is a feature matrix with its response vector.
type Dataset struct {
	X            [][]float64
	Y            []float64
	FeatureNames []string
	TargetName   string
}

// New validates X and y and wraps them in a Dataset. Missing feature names
// are generated as x0, x1, ...
func New(X [][]float64, y []float64, featureNames []string) (*Dataset, error) {
	r, c, err := matrix.Dims(X)
	if err != nil {
		return nil, err
	}
	if len(y) != r {
		return nil, errors.NewDimensionError("dataset.New", r, len(y), 0)
	}
	if featureNames == nil {
		featureNames = defaultNames(c)
	}
	if len(featureNames) != c {
		return nil, errors.NewDimensionError("dataset.New", c, len(featureNames), 1)
	}
	return &Dataset{X: X, Y: y, FeatureNames: featureNames, TargetName: "y"}, nil
}

func defaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return names
}

// Rows returns the number of observations.
func (d *Dataset) Rows() int { return len(d.X) }

// Cols returns the number of features.
func (d *Dataset) Cols() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// Split divides the dataset in order: the last round(ratio*n) rows form the
// test set, the rest the training set. Rows are shared, not copied.
//
// Errors:
//   - ErrInvalidArgument: ratio outside (0, 1), or either part would be empty
func (d *Dataset) Split(ratio float64) (train, test *Dataset, err error) {
	if !(ratio > 0 && ratio < 1) {
		return nil, nil, errors.NewValidationError("test_ratio", "must be in (0, 1)", ratio)
	}
	n := d.Rows()
	nTest := int(math.Round(ratio * float64(n)))
	if nTest == 0 || nTest == n {
		return nil, nil, errors.NewValueError("Dataset.Split",
			fmt.Sprintf("ratio %g leaves an empty split of %d rows", ratio, n))
	}
	cut := n - nTest
	train = &Dataset{X: d.X[:cut], Y: d.Y[:cut], FeatureNames: d.FeatureNames, TargetName: d.TargetName}
	test = &Dataset{X: d.X[cut:], Y: d.Y[cut:], FeatureNames: d.FeatureNames, TargetName: d.TargetName}
	return train, test, nil
}
