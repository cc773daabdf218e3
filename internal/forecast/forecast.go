// Package forecast projects merchant metric series forward using
// decomposition-based trend extrapolation with seasonal reapplication.
package forecast

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/merchantpulse/analytics/internal/decompose"
	"github.com/merchantpulse/analytics/internal/statistics"
	"github.com/merchantpulse/analytics/pkg/errors"
	"github.com/merchantpulse/analytics/pkg/models"
)

// Methodology is reported on every Forecast produced by this package.
const Methodology = "Time series decomposition with seasonal adjustment and trend extrapolation"

// MinHistoryPoints is the smallest series the forecaster accepts: two full
// weekly periods, below which the seasonal split is meaningless.
const MinHistoryPoints = 14

// Config controls the forecaster.
type Config struct {
	MinHistoryPoints int     `json:"min_history_points" yaml:"min_history_points" mapstructure:"min_history_points"`
	ConfidenceLevel  float64 `json:"confidence_level" yaml:"confidence_level" mapstructure:"confidence_level"`
}

// DefaultConfig returns the standard forecaster configuration.
func DefaultConfig() Config {
	return Config{
		MinHistoryPoints: MinHistoryPoints,
		ConfidenceLevel:  0.95,
	}
}

// Forecaster produces forecasts from historical metric series. It is
// stateless and safe for concurrent use.
type Forecaster struct {
	cfg        Config
	decomposer *decompose.Decomposer
	logger     *logrus.Logger
}

// New creates a forecaster. A nil logger falls back to a default one.
func New(cfg Config, logger *logrus.Logger) *Forecaster {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.MinHistoryPoints <= 0 {
		cfg.MinHistoryPoints = MinHistoryPoints
	}
	if cfg.ConfidenceLevel <= 0 || cfg.ConfidenceLevel >= 1 {
		cfg.ConfidenceLevel = 0.95
	}
	return &Forecaster{
		cfg:        cfg,
		decomposer: decompose.NewDecomposer(),
		logger:     logger,
	}
}

// Forecast projects the series daysAhead consecutive days past its last
// point. It fails with an insufficient-history error when the series is
// shorter than the configured minimum: a forecast is a single required
// result, so a thin series fails loudly instead of producing garbage.
func (f *Forecaster) Forecast(series models.MetricSeries, daysAhead int) (*models.Forecast, error) {
	if daysAhead <= 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidInput,
			fmt.Sprintf("forecast horizon must be positive, got %d", daysAhead))
	}
	n := series.Len()
	if n < f.cfg.MinHistoryPoints {
		return nil, errors.NewInsufficientHistoryError(
			fmt.Sprintf("forecasting requires at least %d data points, got %d", f.cfg.MinHistoryPoints, n)).
			WithContext("metric", string(series.Metric))
	}

	values := series.Values()
	decomp := f.decomposer.Decompose(values)

	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	slope, intercept, err := statistics.LinearRegression(x, decomp.Trend)
	if err != nil {
		return nil, err
	}

	period := decomp.SeasonalityPeriod
	residualSigma := statistics.StdDev(decomp.Residual)
	z := statistics.ZValue(f.cfg.ConfidenceLevel)

	forecastPoints := make([]models.MetricPoint, daysAhead)
	lower := make([]float64, daysAhead)
	upper := make([]float64, daysAhead)
	lastDate := series.LastDate()

	for i := 0; i < daysAhead; i++ {
		projected := slope*float64(n+i) + intercept
		projected += seasonalForPhase(decomp.Seasonal, (len(decomp.Seasonal)+i)%period, period)

		// Interval half-width grows with horizon distance.
		margin := residualSigma * z * math.Sqrt(1+float64(i)/float64(daysAhead))
		lower[i] = math.Max(0, projected-margin)
		upper[i] = projected + margin

		forecastPoints[i] = models.MetricPoint{
			Date:  lastDate.AddDate(0, 0, i+1),
			Value: math.Max(0, math.Round(projected)),
		}
	}

	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted[i] = decomp.Trend[i] + decomp.Seasonal[i]
	}

	result := &models.Forecast{
		Metric:     series.Metric,
		Historical: series,
		Forecast: models.MetricSeries{
			Metric: series.Metric,
			Points: forecastPoints,
		},
		ConfidenceInterval: models.ConfidenceInterval{
			Lower: lower,
			Upper: upper,
		},
		ConfidenceLevel: f.cfg.ConfidenceLevel,
		Accuracy: models.AccuracyMetrics{
			MAPE: statistics.MAPE(values, fitted),
			RMSE: statistics.RMSE(values, fitted),
		},
		TrendDirection: trendDirection(slope),
		Methodology:    Methodology,
	}

	f.logger.WithFields(logrus.Fields{
		"metric":     series.Metric,
		"history":    n,
		"days_ahead": daysAhead,
		"trend":      result.TrendDirection,
		"mape":       result.Accuracy.MAPE,
	}).Debug("Generated forecast")

	return result, nil
}

// seasonalForPhase averages the historical seasonal values sharing the given
// phase. The seasonal component is periodic, so all values at one phase are
// equal; averaging keeps the step well-defined if that ever changes.
func seasonalForPhase(seasonal []float64, phase, period int) float64 {
	sum := 0.0
	count := 0
	for i := phase; i < len(seasonal); i += period {
		sum += seasonal[i]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func trendDirection(slope float64) string {
	switch {
	case slope > 0.01:
		return models.TrendIncreasing
	case slope < -0.01:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}
