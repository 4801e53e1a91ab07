package linear_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/olsfit/core/model"
	"github.com/ezoic/olsfit/linear"
	"github.com/ezoic/olsfit/pkg/errors"
)

func fittedModel(t *testing.T) *linear.LinearRegression {
	t.Helper()
	lr := linear.NewLinearRegression()
	X := [][]float64{
		{1, 1, 2},
		{1, 2, 1},
		{1, 3, 4},
		{1, 4, 3},
		{1, 5, 5},
	}
	require.NoError(t, lr.Fit(X, []float64{-3, 2, -5, 0, -4}))
	return lr
}

func TestLinearRegression_ExportImport(t *testing.T) {
	lr := fittedModel(t)

	var buf bytes.Buffer
	require.NoError(t, lr.Export(&buf))

	var doc model.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "LinearRegression", doc.ModelSpec.Name)
	assert.Equal(t, model.FormatVersion, doc.ModelSpec.FormatVersion)

	loaded := linear.NewLinearRegression()
	require.NoError(t, loaded.Import(&buf))
	assert.True(t, loaded.IsFitted())
	assert.Equal(t, 3, loaded.NFeatures())

	want, _ := lr.Coefficients()
	got, ok := loaded.Coefficients()
	require.True(t, ok)
	assert.Equal(t, want, got)

	x := []float64{2.5, -1}
	p1, err := lr.Predict(x)
	require.NoError(t, err)
	p2, err := loaded.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestLinearRegression_SaveLoadFile(t *testing.T) {
	lr := fittedModel(t)
	want, _ := lr.Coefficients()

	for _, name := range []string{"model.json", "model.json.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, lr.SaveFile(path))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			isGzip := len(raw) > 2 && raw[0] == 0x1f && raw[1] == 0x8b
			assert.Equal(t, strings.HasSuffix(name, ".gz"), isGzip)

			loaded := linear.NewLinearRegression()
			require.NoError(t, loaded.LoadFile(path))
			got, ok := loaded.Coefficients()
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestLinearRegression_ExportNotFitted(t *testing.T) {
	lr := linear.NewLinearRegression()

	var buf bytes.Buffer
	assert.ErrorIs(t, lr.Export(&buf), errors.ErrNotFitted)
	assert.ErrorIs(t, lr.SaveFile(filepath.Join(t.TempDir(), "m.json")), errors.ErrNotFitted)
}

func TestLinearRegression_InvalidModelData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid JSON", "{invalid json}"},
		{"wrong model name", `{"model_spec":{"name":"Ridge","format_version":"1.0"},"params":{"coefficients":[1],"n_features":1,"checksum":0}}`},
		{"unsupported version", `{"model_spec":{"name":"LinearRegression","format_version":"2.0"},"params":{}}`},
		{"checksum mismatch", `{"model_spec":{"name":"LinearRegression","format_version":"1.0"},"params":{"coefficients":[1,2],"n_features":2,"checksum":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := linear.NewLinearRegression()
			err := lr.Import(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidArgument)
			assert.False(t, lr.IsFitted())
		})
	}
}

func TestLinearRegression_ImportErrorContext(t *testing.T) {
	lr := linear.NewLinearRegression()
	err := lr.Import(strings.NewReader("{invalid json}"))
	require.Error(t, err)

	assert.True(t, strings.HasPrefix(err.Error(), "failed to load model document: "), err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "(*LinearRegression).Import")
}

func TestLinearRegression_LoadFileNotFound(t *testing.T) {
	lr := linear.NewLinearRegression()
	err := lr.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}
