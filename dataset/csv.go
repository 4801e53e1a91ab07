package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezoic/olsfit/pkg/errors"
)

// CSVOptions controls LoadCSV.
type CSVOptions struct {
	// NoHeader marks the first record as data rather than column names.
	NoHeader bool

	// Target selects the response column by header name or by 0-based index
	// (negative counts from the end). Empty selects the last column.
	Target string

	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// LoadCSV reads a dataset from CSV. Every record must have the same number of
// fields and every cell must parse as a float.
//
// Errors:
//   - ErrEmptyData: no data rows
//   - ErrInvalidArgument: malformed CSV, unknown target, fewer than two
//     columns, or a non-numeric cell
func LoadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	const op = "dataset.LoadCSV"

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewValueError(op, fmt.Sprintf("malformed csv: %v", err))
	}

	var header []string
	if !opts.NoHeader && len(records) > 0 {
		header, records = records[0], records[1:]
	}
	if len(records) == 0 {
		return nil, errors.NewModelError(op, "no data rows", errors.ErrEmptyData)
	}

	nCols := len(records[0])
	if nCols < 2 {
		return nil, errors.NewValueError(op, fmt.Sprintf("need at least 2 columns, got %d", nCols))
	}
	if header == nil {
		header = make([]string, nCols)
		for j := range header {
			header[j] = fmt.Sprintf("x%d", j)
		}
	}

	target, err := targetColumn(header, opts.Target)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		X:          make([][]float64, len(records)),
		Y:          make([]float64, len(records)),
		TargetName: strings.TrimSpace(header[target]),
	}
	for j, name := range header {
		if j != target {
			ds.FeatureNames = append(ds.FeatureNames, strings.TrimSpace(name))
		}
	}

	for i, rec := range records {
		row := make([]float64, 0, nCols-1)
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				// +1 for the 1-based line, +1 more when the header took line 1
				line := i + 1
				if !opts.NoHeader {
					line++
				}
				return nil, errors.NewValueError(op,
					fmt.Sprintf("line %d column %q: invalid number %q", line, header[j], cell))
			}
			if j == target {
				ds.Y[i] = v
			} else {
				row = append(row, v)
			}
		}
		ds.X[i] = row
	}
	return ds, nil
}

func targetColumn(header []string, target string) (int, error) {
	if target == "" {
		return len(header) - 1, nil
	}
	for j, name := range header {
		if strings.TrimSpace(name) == target {
			return j, nil
		}
	}
	idx, err := strconv.Atoi(target)
	if err != nil {
		return 0, errors.NewValidationError("target", "no such column", target)
	}
	if idx < 0 {
		idx += len(header)
	}
	if idx < 0 || idx >= len(header) {
		return 0, errors.NewValidationError("target", "column index out of range", target)
	}
	return idx, nil
}
