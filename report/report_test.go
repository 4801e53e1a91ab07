package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/olsfit/metrics"
	"github.com/ezoic/olsfit/pkg/errors"
)

func testSummary(t *testing.T, withTest bool) Summary {
	t.Helper()
	errors.SetWarningHandler(func(error) {})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })

	train, err := metrics.NewRegressionMetrics([]float64{1, 2, 3, 4}, []float64{3, 2, 3, 2}, 0)
	require.NoError(t, err)

	s := Summary{
		Model:        "LinearRegression",
		PredictMode:  "full",
		Coefficients: NameCoefficients([]float64{1.5, -2}, []string{"size"}),
		Train:        train,
	}
	if withTest {
		s.Test, err = metrics.NewRegressionMetrics([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 5}, 1)
		require.NoError(t, err)
	}
	return s
}

func TestNameCoefficients(t *testing.T) {
	tests := []struct {
		name  string
		coef  []float64
		names []string
		want  []string
	}{
		{"with intercept", []float64{1, 2, 3}, []string{"a", "b"}, []string{"intercept", "a", "b"}},
		{"without intercept", []float64{1, 2}, []string{"a", "b"}, []string{"a", "b"}},
		{"missing names", []float64{1, 2, 3}, []string{"a"}, []string{"a", "b1", "b2"}},
		{"no names", []float64{1}, nil, []string{"intercept"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameCoefficients(tt.coef, tt.names)
			require.Len(t, got, len(tt.want))
			for i, c := range got {
				assert.Equal(t, tt.want[i], c.Name)
				assert.Equal(t, tt.coef[i], c.Value)
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testSummary(t, true)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Model: LinearRegression (predict mode: full)\n"))
	assert.Contains(t, out, "  intercept  1.500000\n")
	assert.Contains(t, out, "  size       -2.000000\n")
	assert.Contains(t, out, "Training set (n=4):\n=== Regression Metrics ===\n")
	assert.Contains(t, out, "Test set (n=4):\n")
	assert.Contains(t, out, "RSE:           NaN\n")
	assert.Equal(t, 2, strings.Count(out, "=== Regression Metrics ==="))
}

func TestWriteText_TrainOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, testSummary(t, false)))
	assert.NotContains(t, buf.String(), "Test set")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testSummary(t, true)))

	var doc struct {
		Model        string                 `json:"model"`
		PredictMode  string                 `json:"predict_mode"`
		Coefficients []Coefficient          `json:"coefficients"`
		Train        map[string]interface{} `json:"train"`
		Test         map[string]interface{} `json:"test"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "LinearRegression", doc.Model)
	assert.Equal(t, "full", doc.PredictMode)
	assert.Equal(t, []Coefficient{{"intercept", 1.5}, {"size", -2}}, doc.Coefficients)
	assert.Equal(t, 2.0, doc.Train["mse"])
	assert.Equal(t, 1.0, doc.Train["rse"])
	assert.Nil(t, doc.Test["rse"])
	assert.Equal(t, 4.0, doc.Test["n"])
}

func TestWriteJSON_OmitsMissingTest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testSummary(t, false)))
	assert.NotContains(t, buf.String(), `"test"`)
}

func TestSavePredictionPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pred.png")
	require.NoError(t, SavePredictionPlot(path, []float64{1, 2, 3, 4}, []float64{1.1, 1.8, 3.2, 4.1}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSavePredictionPlot_Errors(t *testing.T) {
	dir := t.TempDir()

	err := SavePredictionPlot(filepath.Join(dir, "a.png"), nil, nil)
	assert.ErrorIs(t, err, errors.ErrEmptyData)

	err = SavePredictionPlot(filepath.Join(dir, "b.png"), []float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, errors.ErrDimensionMismatch)

	err = SavePredictionPlot(filepath.Join(dir, "missing", "c.png"), []float64{1, 2}, []float64{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save plot")
}
