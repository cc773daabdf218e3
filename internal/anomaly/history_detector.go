// Package anomaly detects statistically unusual merchant metric values
// against seasonally-adjusted baselines. Two detectors share one scoring
// core: HistoryDetector scores the latest point of a per-metric history,
// SnapshotDetector scores a daily snapshot against day-of-week baselines.
package anomaly

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/merchantpulse/analytics/internal/statistics"
	"github.com/merchantpulse/analytics/pkg/models"
)

// HistoryConfig controls the per-metric history detector.
type HistoryConfig struct {
	// MinDataPoints is the fewest points a metric needs before its latest
	// value can be scored. Metrics with less history are skipped.
	MinDataPoints int `json:"min_data_points" yaml:"min_data_points" mapstructure:"min_data_points"`
	// ZThreshold is the minimum absolute z-score to flag as anomalous.
	ZThreshold float64 `json:"z_threshold" yaml:"z_threshold" mapstructure:"z_threshold"`
	// TrendChangePercent is the recent-vs-previous average shift, in
	// percent, above which an anomaly is classified as a trend change.
	TrendChangePercent float64 `json:"trend_change_percent" yaml:"trend_change_percent" mapstructure:"trend_change_percent"`
}

// DefaultHistoryConfig returns the standard history-detector thresholds.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		MinDataPoints:      7,
		ZThreshold:         1.5,
		TrendChangePercent: 20,
	}
}

// trackedMetrics is the detection order for history mode: the core metrics
// plus the effective cashback rate. Map iteration would make output ordering
// nondeterministic.
var trackedMetrics = append(append([]models.MetricName(nil), models.CoreMetrics...), models.MetricCashbackRate)

// HistoryDetector flags anomalies by comparing each metric's latest value
// to the mean and standard deviation of its own earlier history. Stateless
// and safe for concurrent use.
type HistoryDetector struct {
	cfg    HistoryConfig
	logger *logrus.Logger
}

// NewHistoryDetector creates a history detector. A nil logger falls back to
// a default one.
func NewHistoryDetector(cfg HistoryConfig, logger *logrus.Logger) *HistoryDetector {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.MinDataPoints <= 0 {
		cfg.MinDataPoints = 7
	}
	if cfg.ZThreshold <= 0 {
		cfg.ZThreshold = 1.5
	}
	if cfg.TrendChangePercent <= 0 {
		cfg.TrendChangePercent = 20
	}
	return &HistoryDetector{cfg: cfg, logger: logger}
}

// Detect scores the latest point of every tracked metric history against a
// baseline built from all earlier points. Metrics with too little history
// or a zero-variance baseline are skipped: graceful degradation, so one
// thin metric never blocks the others. Results are ordered most severe
// first.
func (d *HistoryDetector) Detect(merchantID string, histories map[models.MetricName][]float64, at time.Time) []models.Anomaly {
	var anomalies []models.Anomaly

	for _, metric := range trackedMetrics {
		history, ok := histories[metric]
		if !ok || len(history) < d.cfg.MinDataPoints {
			continue
		}

		latest := history[len(history)-1]
		baseline := history[:len(history)-1]
		mean := statistics.Mean(baseline)
		stddev := statistics.StdDev(baseline)
		if stddev == 0 {
			// No variation in the baseline: nothing can be anomalous
			// against it, and the z-score is undefined.
			d.logger.WithFields(logrus.Fields{
				"merchant_id": merchantID,
				"metric":      metric,
			}).Debug("Skipping zero-variance baseline")
			continue
		}

		z := statistics.ZScore(latest, mean, stddev)
		if math.Abs(z) < d.cfg.ZThreshold {
			continue
		}

		anomalyType := d.classify(history, latest, mean)
		severity := historySeverity(math.Abs(z))

		anomalies = append(anomalies, models.Anomaly{
			MerchantID:      merchantID,
			Metric:          metric,
			DetectedAt:      at,
			CurrentValue:    latest,
			ExpectedValue:   mean,
			DeviationStdDev: z,
			IsSignificant:   true,
			Type:            anomalyType,
			Severity:        severity,
			Explanation:     historyExplanation(metric, anomalyType, latest, mean, z),
			Recommendation:  recommendationFor(metric, anomalyType),
			Channels:        channelsFor(severity),
		})
	}

	sortBySeverity(anomalies)
	return anomalies
}

// classify decides the anomaly shape. A >20% shift between the averages of
// the most recent three points and the three before them is a trend change;
// otherwise the sign of the deviation picks spike or drop.
func (d *HistoryDetector) classify(history []float64, latest, expected float64) models.AnomalyType {
	if len(history) >= 6 {
		recent := statistics.Mean(history[len(history)-3:])
		previous := statistics.Mean(history[len(history)-6 : len(history)-3])
		if previous != 0 {
			shift := math.Abs(recent-previous) / math.Abs(previous) * 100
			if shift > d.cfg.TrendChangePercent {
				return models.AnomalyTrendChange
			}
		}
	}
	switch {
	case latest > expected:
		return models.AnomalySpike
	case latest < expected:
		return models.AnomalyDrop
	default:
		return models.AnomalyUnusualPattern
	}
}

func historyExplanation(metric models.MetricName, anomalyType models.AnomalyType, value, expected, z float64) string {
	label := metricLabels[metric]
	switch anomalyType {
	case models.AnomalySpike:
		return fmt.Sprintf("%s spiked to %.1f, %.1f standard deviations above its expected %.1f", label, value, math.Abs(z), expected)
	case models.AnomalyDrop:
		return fmt.Sprintf("%s dropped to %.1f, %.1f standard deviations below its expected %.1f", label, value, math.Abs(z), expected)
	case models.AnomalyTrendChange:
		return fmt.Sprintf("%s is at %.1f (expected %.1f) and its recent level has shifted, indicating a trend change", label, value, expected)
	default:
		return fmt.Sprintf("%s shows an unusual pattern around %.1f", label, value)
	}
}
