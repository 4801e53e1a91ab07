// Command olsfit fits an ordinary least squares model to a CSV or JSON
// dataset and reports its fit-quality metrics.
//
//	olsfit -data houses.csv -target price -test-ratio 0.2 -format json
package main

import (
	"flag"
	"io"
	"os"

	"github.com/pkg/profile"

	"github.com/ezoic/olsfit/core/matrix"
	"github.com/ezoic/olsfit/dataset"
	"github.com/ezoic/olsfit/linear"
	"github.com/ezoic/olsfit/metrics"
	"github.com/ezoic/olsfit/pkg/errors"
	"github.com/ezoic/olsfit/pkg/log"
	"github.com/ezoic/olsfit/preprocessing"
	"github.com/ezoic/olsfit/report"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.LogError(err, "Invalid arguments")
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.LogError(err, "olsfit failed")
		os.Exit(1)
	}
}

func run(cfg *Config, stdout io.Writer) error {
	log.SetupLogger(cfg.LogLevel)
	logger := log.GetLoggerWithName("olsfit")

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	ds, err := dataset.LoadFile(cfg.DataPath, dataset.CSVOptions{NoHeader: cfg.NoHeader, Target: cfg.Target})
	if err != nil {
		return err
	}
	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, ds.Rows(),
		log.FeaturesKey, ds.Cols(),
	)

	train, test := ds, (*dataset.Dataset)(nil)
	if cfg.TestRatio > 0 {
		if train, test, err = ds.Split(cfg.TestRatio); err != nil {
			return err
		}
	}

	trainX, testX, err := scale(cfg.Scale, train, test)
	if err != nil {
		return err
	}

	design := trainX
	if cfg.Intercept {
		design = preprocessing.AddIntercept(trainX)
	}

	lr := linear.NewLinearRegression(
		linear.WithTolerance(cfg.Tolerance),
		linear.WithPredictMode(cfg.PredictMode),
	)
	if err := lr.Fit(design, train.Y); err != nil {
		return err
	}

	trainPred, err := predict(lr, trainX, cfg.Intercept)
	if err != nil {
		return err
	}
	trainMetrics, err := metrics.NewRegressionMetrics(train.Y, trainPred, ds.Cols())
	if err != nil {
		return err
	}

	coef, _ := lr.Coefficients()
	summary := report.Summary{
		Model:        "LinearRegression",
		PredictMode:  cfg.PredictMode.String(),
		Coefficients: report.NameCoefficients(coef, ds.FeatureNames),
		Train:        trainMetrics,
	}

	plotTrue, plotPred := train.Y, trainPred
	if test != nil {
		testPred, err := predict(lr, testX, cfg.Intercept)
		if err != nil {
			return err
		}
		if summary.Test, err = metrics.NewRegressionMetrics(test.Y, testPred, ds.Cols()); err != nil {
			return err
		}
		plotTrue, plotPred = test.Y, testPred
	}

	if cfg.Format == "json" {
		err = report.WriteJSON(stdout, summary)
	} else {
		err = report.WriteText(stdout, summary)
	}
	if err != nil {
		return err
	}

	if cfg.SavePath != "" {
		if err := lr.SaveFile(cfg.SavePath); err != nil {
			return err
		}
	}
	if cfg.PlotPath != "" {
		if err := report.SavePredictionPlot(cfg.PlotPath, plotTrue, plotPred); err != nil {
			return err
		}
		logger.Info("Plot saved", "path", cfg.PlotPath)
	}
	return nil
}

// scale fits the chosen scaler on the training features and applies it to
// both splits.
func scale(kind string, train, test *dataset.Dataset) (trainX, testX [][]float64, err error) {
	var s preprocessing.Scaler
	switch kind {
	case "standard":
		s = preprocessing.NewStandardScalerDefault()
	case "minmax":
		s = preprocessing.NewMinMaxScalerDefault()
	default:
		if test != nil {
			testX = test.X
		}
		return train.X, testX, nil
	}

	if trainX, err = s.FitTransform(train.X); err != nil {
		return nil, nil, err
	}
	if test != nil {
		if testX, err = s.Transform(test.X); err != nil {
			return nil, nil, err
		}
	}
	return trainX, testX, nil
}

// predict scores feature rows. Without an intercept column coefficient 0
// belongs to the first feature, so Predict's implicit leading 1 does not
// apply and the rows are multiplied by the coefficients directly.
func predict(lr *linear.LinearRegression, X [][]float64, intercept bool) ([]float64, error) {
	if intercept {
		return lr.PredictBatch(X)
	}
	coef, ok := lr.Coefficients()
	if !ok {
		return nil, errors.NewNotFittedError("LinearRegression", "predict")
	}
	return matrix.MultiplyVector(X, coef)
}
