package anomaly

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/merchantpulse/analytics/internal/statistics"
	"github.com/merchantpulse/analytics/pkg/models"
)

// SnapshotConfig controls the day-of-week-aligned snapshot detector.
type SnapshotConfig struct {
	// MinSnapshots is the fewest historical snapshots required before any
	// detection runs; below it Detect returns an empty list.
	MinSnapshots int `json:"min_snapshots" yaml:"min_snapshots" mapstructure:"min_snapshots"`
	// SameDayMinPoints is the fewest same-weekday snapshots needed to use
	// a seasonally-adjusted baseline instead of the full history.
	SameDayMinPoints int `json:"same_day_min_points" yaml:"same_day_min_points" mapstructure:"same_day_min_points"`
	// ZThreshold is the minimum absolute z-score to report as significant.
	ZThreshold float64 `json:"z_threshold" yaml:"z_threshold" mapstructure:"z_threshold"`
}

// DefaultSnapshotConfig returns the standard snapshot-detector thresholds.
func DefaultSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		MinSnapshots:     14,
		SameDayMinPoints: 3,
		ZThreshold:       2.0,
	}
}

// snapshotMetrics are the four core metrics scored in snapshot mode.
var snapshotMetrics = []models.MetricName{
	models.MetricTransactions,
	models.MetricRevenue,
	models.MetricCustomers,
	models.MetricCashbackPaid,
}

// criticalMetrics get a lower warning bar in snapshot mode.
var criticalMetrics = map[models.MetricName]bool{
	models.MetricTransactions: true,
	models.MetricRevenue:      true,
}

// SnapshotDetector compares a current daily snapshot to a baseline built
// from same-weekday historical snapshots when enough exist, falling back to
// the full history otherwise. Grouping uses the real calendar weekday of
// each snapshot's period start, so gaps in the history cannot silently
// misalign the baseline. Stateless and safe for concurrent use.
type SnapshotDetector struct {
	cfg    SnapshotConfig
	logger *logrus.Logger
}

// NewSnapshotDetector creates a snapshot detector. A nil logger falls back
// to a default one.
func NewSnapshotDetector(cfg SnapshotConfig, logger *logrus.Logger) *SnapshotDetector {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.MinSnapshots <= 0 {
		cfg.MinSnapshots = 14
	}
	if cfg.SameDayMinPoints <= 0 {
		cfg.SameDayMinPoints = 3
	}
	if cfg.ZThreshold <= 0 {
		cfg.ZThreshold = 2.0
	}
	return &SnapshotDetector{cfg: cfg, logger: logger}
}

// Detect scores the current snapshot's core metrics for the given date.
// With fewer than MinSnapshots historical snapshots it returns an empty
// list; zero-variance baselines skip the affected metric. Results are
// ordered most severe first.
func (d *SnapshotDetector) Detect(current models.MerchantSnapshot, historical []models.MerchantSnapshot, at time.Time) []models.Anomaly {
	if len(historical) < d.cfg.MinSnapshots {
		d.logger.WithFields(logrus.Fields{
			"merchant_id": current.MerchantID,
			"snapshots":   len(historical),
			"required":    d.cfg.MinSnapshots,
		}).Debug("Not enough history for snapshot anomaly detection")
		return nil
	}

	weekday := at.Weekday()
	var anomalies []models.Anomaly

	for _, metric := range snapshotMetrics {
		baseline, adjusted := d.baselineFor(metric, historical, weekday)
		mean := statistics.Mean(baseline)
		stddev := statistics.StdDev(baseline)
		if stddev == 0 {
			continue
		}

		value := current.MetricValue(metric)
		z := statistics.ZScore(value, mean, stddev)
		if math.Abs(z) <= d.cfg.ZThreshold {
			continue
		}

		severity := snapshotSeverity(math.Abs(z), criticalMetrics[metric])
		anomalyType := models.AnomalySpike
		if value < mean {
			anomalyType = models.AnomalyDrop
		}

		anomalies = append(anomalies, models.Anomaly{
			MerchantID:          current.MerchantID,
			Metric:              metric,
			DetectedAt:          at,
			CurrentValue:        value,
			ExpectedValue:       mean,
			DeviationStdDev:     z,
			IsSignificant:       true,
			SeasonalityAdjusted: adjusted,
			Type:                anomalyType,
			Severity:            severity,
			Explanation:         snapshotExplanation(metric, weekday, value, mean, z, adjusted),
			Recommendation:      recommendationFor(metric, anomalyType),
			Channels:            channelsFor(severity),
		})
	}

	sortBySeverity(anomalies)
	return anomalies
}

// baselineFor collects the metric's values from same-weekday snapshots, or
// from the whole history when too few same-weekday points exist.
func (d *SnapshotDetector) baselineFor(metric models.MetricName, historical []models.MerchantSnapshot, weekday time.Weekday) (values []float64, seasonallyAdjusted bool) {
	var sameDay []float64
	for _, snap := range historical {
		if snap.PeriodStart.Weekday() == weekday {
			sameDay = append(sameDay, snap.MetricValue(metric))
		}
	}
	if len(sameDay) >= d.cfg.SameDayMinPoints {
		return sameDay, true
	}

	all := make([]float64, len(historical))
	for i, snap := range historical {
		all[i] = snap.MetricValue(metric)
	}
	return all, false
}

func snapshotExplanation(metric models.MetricName, weekday time.Weekday, value, expected, z float64, adjusted bool) string {
	label := metricLabels[metric]
	direction := "above"
	if z < 0 {
		direction = "below"
	}
	baseline := fmt.Sprintf("the typical %s", weekday)
	if !adjusted {
		baseline = "the overall historical average"
	}
	return fmt.Sprintf("%s is %.1f, %.1f standard deviations %s %s (expected %.1f)",
		label, value, math.Abs(z), direction, baseline, expected)
}
