package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ezoic/olsfit/pkg/errors"
)

// LoadFile opens path and picks the loader by extension: ".json" uses
// LoadJSON, anything else LoadCSV with opts.
func LoadFile(path string, opts CSVOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(f)
	}
	return LoadCSV(f, opts)
}
