package dataset

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/ezoic/olsfit/pkg/errors"
)

type document struct {
	Features     [][]float64 `json:"features"`
	Target       []float64   `json:"target"`
	FeatureNames []string    `json:"feature_names,omitempty"`
	TargetName   string      `json:"target_name,omitempty"`
}

// LoadJSON reads a dataset document from r.
func LoadJSON(r io.Reader) (*Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.NewValueError("dataset.LoadJSON", fmt.Sprintf("invalid document: %v", err))
	}
	ds, err := New(doc.Features, doc.Target, doc.FeatureNames)
	if err != nil {
		return nil, err
	}
	if doc.TargetName != "" {
		ds.TargetName = doc.TargetName
	}
	return ds, nil
}

// WriteJSON writes d in the format LoadJSON reads.
func (d *Dataset) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{
		Features:     d.X,
		Target:       d.Y,
		FeatureNames: d.FeatureNames,
		TargetName:   d.TargetName,
	})
}
