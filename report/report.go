// Package report renders fitted models and their metrics for people and for
// machines: an aligned text summary, a JSON document and an actual-versus-
// predicted plot.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/ezoic/olsfit/metrics"
)

// Coefficient is a named model coefficient.
type Coefficient struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Summary describes one fitted model and how well it scores.
type Summary struct {
	Model        string
	PredictMode  string
	Coefficients []Coefficient
	Train        *metrics.RegressionMetrics
	Test         *metrics.RegressionMetrics // nil without a held-out split
}

// NameCoefficients pairs coef with names. When coef has one more entry than
// names the first coefficient is named "intercept"; otherwise missing names
// fall back to b0, b1, ...
func NameCoefficients(coef []float64, names []string) []Coefficient {
	offset := 0
	if len(coef) == len(names)+1 {
		offset = 1
	}
	out := make([]Coefficient, len(coef))
	for i, c := range coef {
		name := fmt.Sprintf("b%d", i)
		switch {
		case offset == 1 && i == 0:
			name = "intercept"
		case i-offset < len(names):
			name = names[i-offset]
		}
		out[i] = Coefficient{Name: name, Value: c}
	}
	return out
}

// WriteText writes the summary as aligned text followed by the metric
// reports of each split.
func WriteText(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintf(w, "Model: %s (predict mode: %s)\n\nCoefficients:\n", s.Model, s.PredictMode); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range s.Coefficients {
		if _, err := fmt.Fprintf(tw, "  %s\t%.6f\n", c.Name, c.Value); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	splits := []struct {
		name string
		m    *metrics.RegressionMetrics
	}{
		{"Training set", s.Train},
		{"Test set", s.Test},
	}
	for _, split := range splits {
		if split.m == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s (n=%d):\n", split.name, split.m.N()); err != nil {
			return err
		}
		if err := split.m.PrintReport(w); err != nil {
			return err
		}
	}
	return nil
}

type jsonSummary struct {
	Model        string          `json:"model"`
	PredictMode  string          `json:"predict_mode"`
	Coefficients []Coefficient   `json:"coefficients"`
	Train        *metrics.Report `json:"train,omitempty"`
	Test         *metrics.Report `json:"test,omitempty"`
}

func reportOf(m *metrics.RegressionMetrics) *metrics.Report {
	if m == nil {
		return nil
	}
	r := m.Report()
	return &r
}

// WriteJSON writes the summary as an indented JSON document. Non-finite
// statistics are written as null.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonSummary{
		Model:        s.Model,
		PredictMode:  s.PredictMode,
		Coefficients: s.Coefficients,
		Train:        reportOf(s.Train),
		Test:         reportOf(s.Test),
	})
}
