package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ezoic/olsfit/core/matrix"
	"github.com/ezoic/olsfit/linear"
	"github.com/ezoic/olsfit/pkg/errors"
)

// Environment variables consulted when the matching flag is not given.
const (
	envLogLevel = "OLSFIT_LOG_LEVEL"
	envFormat   = "OLSFIT_FORMAT"
)

// Config is the validated command line.
type Config struct {
	DataPath    string
	Target      string
	NoHeader    bool
	Intercept   bool
	Scale       string // none, standard or minmax
	TestRatio   float64
	Format      string // text or json
	SavePath    string
	PlotPath    string
	LogLevel    string
	Profile     string // "", cpu or mem
	PredictMode linear.PredictMode
	Tolerance   float64
}

func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("olsfit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &Config{}
	var predictMode string
	fs.StringVar(&cfg.DataPath, "data", "", "dataset file (.csv or .json)")
	fs.StringVar(&cfg.Target, "target", "", "target column name or index (default: last column)")
	fs.BoolVar(&cfg.NoHeader, "no-header", false, "CSV has no header row")
	fs.BoolVar(&cfg.Intercept, "intercept", true, "prepend an intercept column")
	fs.StringVar(&cfg.Scale, "scale", "none", "feature scaling: none, standard or minmax")
	fs.Float64Var(&cfg.TestRatio, "test-ratio", 0, "fraction of trailing rows held out for evaluation")
	fs.StringVar(&cfg.Format, "format", "", "output format: text or json (env "+envFormat+")")
	fs.StringVar(&cfg.SavePath, "save", "", "write the fitted model here (.gz compresses)")
	fs.StringVar(&cfg.PlotPath, "plot", "", "write a predicted-vs-actual plot here")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "log level (env "+envLogLevel+", default warn)")
	fs.StringVar(&cfg.Profile, "profile", "", "profile the run: cpu or mem")
	fs.StringVar(&predictMode, "predict-mode", "full", "prediction rule: full or truncated (truncated requires -intercept)")
	fs.Float64Var(&cfg.Tolerance, "tol", matrix.DefaultTolerance, "pivot tolerance for XᵀX inversion")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: olsfit -data FILE [options]\n\nFit an ordinary least squares model and report its metrics.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Format == "" {
		cfg.Format = getenv(envFormat)
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = getenv(envLogLevel)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	switch strings.ToLower(predictMode) {
	case "full":
		cfg.PredictMode = linear.PredictFull
	case "truncated":
		cfg.PredictMode = linear.PredictTruncated
	default:
		return nil, errors.NewValidationError("predict-mode", "must be full or truncated", predictMode)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values and combinations.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.NewValidationError("data", "is required", c.DataPath)
	}
	if c.TestRatio < 0 || c.TestRatio >= 1 {
		return errors.NewValidationError("test-ratio", "must be in [0, 1)", c.TestRatio)
	}
	switch c.Format {
	case "text", "json":
	default:
		return errors.NewValidationError("format", "must be text or json", c.Format)
	}
	switch c.Scale {
	case "none", "standard", "minmax":
	default:
		return errors.NewValidationError("scale", "must be none, standard or minmax", c.Scale)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return errors.NewValidationError("profile", "must be cpu or mem", c.Profile)
	}
	if c.PredictMode == linear.PredictTruncated && !c.Intercept {
		return errors.NewValidationError("predict-mode", "truncated requires an intercept column", "truncated")
	}
	if !(c.Tolerance > 0) {
		return errors.NewValidationError("tol", "must be positive", c.Tolerance)
	}
	return nil
}
