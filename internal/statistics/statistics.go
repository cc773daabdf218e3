// Package statistics provides the shared statistical primitives used by the
// decomposer, forecaster, and both anomaly detectors. All functions are pure.
//
// Empty-input policy: Mean and StdDev return 0 for empty (and StdDev for
// single-element) input. A zero here means "no signal", not an error; call
// sites that require a minimum number of points validate before calling.
package statistics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/merchantpulse/analytics/pkg/errors"
)

// Mean returns the arithmetic mean of xs, or 0 for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// StdDev returns the population standard deviation of xs:
// sqrt(mean((x - mean)^2)). Returns 0 for empty or single-element input.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.PopStdDev(xs, nil)
}

// LinearRegression fits ordinary least squares y = intercept + slope*x.
// It fails with a degenerate-input error when fewer than two points are
// given, when x and y differ in length, or when all x are equal (zero
// denominator in the closed-form slope).
func LinearRegression(x, y []float64) (slope, intercept float64, err error) {
	if len(x) != len(y) {
		return 0, 0, errors.NewDegenerateInputError(
			fmt.Sprintf("regression input length mismatch: %d != %d", len(x), len(y)))
	}
	if len(x) < 2 {
		return 0, 0, errors.NewDegenerateInputError("regression requires at least 2 points")
	}
	constant := true
	for _, v := range x[1:] {
		if v != x[0] {
			constant = false
			break
		}
	}
	if constant {
		return 0, 0, errors.NewDegenerateInputError("regression x values are all equal")
	}

	intercept, slope = stat.LinearRegression(x, y, nil, false)
	return slope, intercept, nil
}

// ZScore returns (value - mean) / stddev. The caller must guarantee
// stddev > 0; a zero-variance baseline cannot score anything as anomalous.
func ZScore(value, mean, stddev float64) float64 {
	return (value - mean) / stddev
}

// MAPE returns the mean absolute percentage error between actual and fitted
// values. Points with a zero actual are skipped rather than dividing by
// zero; if every actual is zero, MAPE is 0.
func MAPE(actual, fitted []float64) float64 {
	if len(actual) != len(fitted) || len(actual) == 0 {
		return 0
	}
	sum := 0.0
	count := 0
	for i, a := range actual {
		if a == 0 {
			continue
		}
		sum += math.Abs(a-fitted[i]) / math.Abs(a) * 100
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// RMSE returns the root mean square error between actual and fitted values.
func RMSE(actual, fitted []float64) float64 {
	if len(actual) != len(fitted) || len(actual) == 0 {
		return 0
	}
	sum := 0.0
	for i, a := range actual {
		diff := a - fitted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual)))
}

// ZValue returns the two-sided normal critical value for the given
// confidence level. Levels outside the supported set fall back to 95%.
func ZValue(confidence float64) float64 {
	switch confidence {
	case 0.90:
		return 1.645
	case 0.99:
		return 2.576
	default:
		return 1.96
	}
}
