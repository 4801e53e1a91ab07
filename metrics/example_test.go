package metrics_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ezoic/olsfit/metrics"
)

// ExampleMSE demonstrates Mean Squared Error calculation
func ExampleMSE() {
	yTrue := []float64{1.0, 2.0, 3.0, 4.0}
	yPred := []float64{1.1, 1.9, 3.2, 3.8}

	mse, err := metrics.MSE(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("MSE: %.3f\n", mse)

	// Output: MSE: 0.025
}

// ExampleRMSE demonstrates Root Mean Squared Error calculation
func ExampleRMSE() {
	yTrue := []float64{10.0, 20.0, 30.0}
	yPred := []float64{12.0, 18.0, 32.0}

	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("RMSE: %.2f\n", rmse)

	// Output: RMSE: 2.00
}

// ExampleR2Score_imperfectPredictions demonstrates R² with prediction errors
func ExampleR2Score_imperfectPredictions() {
	yTrue := []float64{1.0, 3.0, 2.0, 4.0}
	yPred := []float64{1.2, 2.8, 2.1, 3.9}

	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("R² Score: %.3f\n", r2)

	// Output: R² Score: 0.980
}

// ExampleMAPE demonstrates Mean Absolute Percentage Error calculation
func ExampleMAPE() {
	yTrue := []float64{10.0, 20.0, 30.0, 40.0}
	yPred := []float64{9.0, 22.0, 28.0, 42.0}

	mape, err := metrics.MAPE(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("MAPE: %.1f%%\n", mape)

	// Output: MAPE: 7.9%
}

// ExampleExplainedVarianceScore demonstrates explained variance score calculation
func ExampleExplainedVarianceScore() {
	yTrue := []float64{1.0, 2.0, 3.0, 4.0}
	yPred := []float64{1.1, 1.9, 3.1, 3.9}

	evs, err := metrics.ExplainedVarianceScore(yTrue, yPred)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}

	fmt.Printf("Explained Variance Score: %.3f\n", evs)

	// Output: Explained Variance Score: 0.992
}

// ExampleRegressionMetrics_PrintReport prints the full report for a model
// with no predictors.
func ExampleRegressionMetrics_PrintReport() {
	yTrue := []float64{1, 2, 3, 4}
	yPred := []float64{3, 2, 3, 2}

	m, err := metrics.NewRegressionMetrics(yTrue, yPred, 0)
	if err != nil {
		slog.Error("Test failed", "error", err)
		return
	}
	if err := m.PrintReport(os.Stdout); err != nil {
		slog.Error("Test failed", "error", err)
	}

	// Output:
	// === Regression Metrics ===
	// R²:            -0.6000
	// Adjusted R²:   -0.6000
	// MSE:           2.0000
	// RMSE:          1.4142
	// MAE:           1.0000
	// RSE:           1.0000
}
