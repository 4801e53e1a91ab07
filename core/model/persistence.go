package model

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"github.com/ezoic/olsfit/pkg/errors"
)

// FormatVersion is written into every exported document.
const FormatVersion = "1.0"

// supportedFormats is the range of format versions LoadFromReader accepts.
var supportedFormats = mustConstraint("^1.0")

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// ModelSpec is the metadata header of a persisted model.
type ModelSpec struct {
	Name          string `json:"name"`           // model name, e.g. "LinearRegression"
	FormatVersion string `json:"format_version"` // document format version
}

// Document is a persisted model: a header plus model-specific parameters.
type Document struct {
	ModelSpec ModelSpec       `json:"model_spec"`
	Params    json.RawMessage `json:"params"`
}

// LinearRegressionParams are the persisted parameters of a linear model.
// Coefficients[0] is the intercept when the design matrix carried one.
type LinearRegressionParams struct {
	Coefficients []float64 `json:"coefficients"`
	NFeatures    int       `json:"n_features"` // columns of the design matrix
	Checksum     uint64    `json:"checksum"`   // xxhash64 of Coefficients
}

// Checksum returns the xxhash64 digest of the IEEE-754 bits of coef.
func Checksum(coef []float64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, c := range coef {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// LoadFromReader decodes and validates a Document.
//
// Errors:
//   - ErrInvalidArgument: malformed JSON, missing name, or a format version
//     outside the supported range
func LoadFromReader(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.NewModelError("LoadModel", "failed to decode JSON", errors.WithKind(err, errors.ErrInvalidArgument))
	}

	if doc.ModelSpec.FormatVersion == "" {
		return nil, errors.NewValueError("LoadModel", "format_version is required")
	}
	v, err := semver.NewVersion(doc.ModelSpec.FormatVersion)
	if err != nil || !supportedFormats.Check(v) {
		return nil, errors.NewValueError("LoadModel",
			fmt.Sprintf("unsupported format version: %s", doc.ModelSpec.FormatVersion))
	}

	if doc.ModelSpec.Name == "" {
		return nil, errors.NewValueError("LoadModel", "model name is required")
	}

	return &doc, nil
}

// LoadLinearRegressionParams extracts and verifies linear model parameters.
func LoadLinearRegressionParams(doc *Document) (*LinearRegressionParams, error) {
	if doc.ModelSpec.Name != "LinearRegression" {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("expected LinearRegression, got %s", doc.ModelSpec.Name))
	}

	var params LinearRegressionParams
	if err := json.Unmarshal(doc.Params, &params); err != nil {
		return nil, errors.NewModelError("LoadLinearRegressionParams", "failed to unmarshal params",
			errors.WithKind(err, errors.ErrInvalidArgument))
	}

	if len(params.Coefficients) == 0 {
		return nil, errors.NewValueError("LoadLinearRegressionParams", "coefficients cannot be empty")
	}

	if params.NFeatures != len(params.Coefficients) {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("n_features (%d) does not match coefficients length (%d)",
				params.NFeatures, len(params.Coefficients)))
	}

	if sum := Checksum(params.Coefficients); sum != params.Checksum {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("checksum mismatch: stored %016x, computed %016x", params.Checksum, sum))
	}

	return &params, nil
}

// Export writes params as an indented Document named modelName.
func Export(w io.Writer, modelName string, params interface{}) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal params")
	}

	doc := Document{
		ModelSpec: ModelSpec{
			Name:          modelName,
			FormatVersion: FormatVersion,
		},
		Params: paramsJSON,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&doc); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}

	return nil
}

// SaveFile exports to filename. Names ending in ".gz" are gzip-compressed.
func SaveFile(filename, modelName string, params interface{}) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	if !strings.HasSuffix(filename, ".gz") {
		return Export(file, modelName, params)
	}

	zw := gzip.NewWriter(file)
	if err := Export(zw, modelName, params); err != nil {
		_ = zw.Close()
		return err
	}
	return errors.Wrap(zw.Close(), "failed to flush gzip stream")
}

// LoadFile reads a Document written by SaveFile.
func LoadFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(filename, ".gz") {
		return LoadFromReader(file)
	}

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.NewModelError("LoadModel", "invalid gzip stream", errors.WithKind(err, errors.ErrInvalidArgument))
	}
	defer func() { _ = zr.Close() }()

	return LoadFromReader(zr)
}
