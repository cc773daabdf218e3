package anomaly

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchantpulse/analytics/pkg/models"
)

// createSnapshot derives every metric proportionally from the transaction
// count so per-metric z-scores line up in tests.
func createSnapshot(day time.Time, txns int) models.MerchantSnapshot {
	revenue := int64(txns) * 2500
	return models.MerchantSnapshot{
		MerchantID:          "m-1",
		TransactionCount:    txns,
		RevenueCents:        revenue,
		UniqueCustomers:     txns * 7 / 10,
		CashbackPaidCents:   revenue / 20,
		CashbackPercent:     5,
		AvgTransactionCents: 2500,
		PeriodStart:         day,
		PeriodEnd:           day.Add(24 * time.Hour),
	}
}

// createWeekdayHistory builds days of daily snapshots starting Monday
// 2024-01-01. Mondays run hot (148/152 alternating by week), all other days
// alternate 98/102 so every baseline has variance.
func createWeekdayHistory(days int) []models.MerchantSnapshot {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday
	snapshots := make([]models.MerchantSnapshot, days)
	for i := range snapshots {
		day := start.AddDate(0, 0, i)
		txns := 98 + (i%2)*4
		if day.Weekday() == time.Monday {
			txns = 148 + (i/7%2)*4
		}
		snapshots[i] = createSnapshot(day, txns)
	}
	return snapshots
}

func TestSnapshotDetectorNormalMonday(t *testing.T) {
	d := NewSnapshotDetector(DefaultSnapshotConfig(), logrus.New())

	historical := createWeekdayHistory(28)
	// A hot Monday is normal for Mondays, even though it is far above the
	// overall average.
	current := createSnapshot(time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), 150)

	anomalies := d.Detect(current, historical, current.PeriodStart)
	assert.Empty(t, anomalies)
}

func TestSnapshotDetectorMondayDrop(t *testing.T) {
	d := NewSnapshotDetector(DefaultSnapshotConfig(), logrus.New())

	historical := createWeekdayHistory(28)
	// Weekday-average volume on a Monday is a collapse against the Monday
	// baseline of ~150.
	current := createSnapshot(time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), 100)

	anomalies := d.Detect(current, historical, current.PeriodStart)
	require.NotEmpty(t, anomalies)

	for _, a := range anomalies {
		assert.Equal(t, models.AnomalyDrop, a.Type)
		assert.Equal(t, models.SeverityCritical, a.Severity)
		assert.True(t, a.SeasonalityAdjusted)
		assert.True(t, a.IsSignificant)
		assert.Negative(t, a.DeviationStdDev)
		assert.Len(t, a.Channels, 3)
	}
}

func TestSnapshotDetectorFallsBackToFullHistory(t *testing.T) {
	d := NewSnapshotDetector(DefaultSnapshotConfig(), logrus.New())

	// Two weeks of history means only two same-weekday points, below the
	// three needed for a weekday baseline.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	historical := make([]models.MerchantSnapshot, 14)
	for i := range historical {
		historical[i] = createSnapshot(start.AddDate(0, 0, i), 98+(i%2)*4)
	}
	current := createSnapshot(start.AddDate(0, 0, 14), 300)

	anomalies := d.Detect(current, historical, current.PeriodStart)
	require.NotEmpty(t, anomalies)
	for _, a := range anomalies {
		assert.False(t, a.SeasonalityAdjusted)
		assert.Equal(t, models.AnomalySpike, a.Type)
	}
}

func TestSnapshotDetectorInsufficientHistory(t *testing.T) {
	d := NewSnapshotDetector(DefaultSnapshotConfig(), logrus.New())

	historical := createWeekdayHistory(13)
	current := createSnapshot(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), 500)

	assert.Empty(t, d.Detect(current, historical, current.PeriodStart))
}

func TestSnapshotDetectorZeroVarianceSkipped(t *testing.T) {
	d := NewSnapshotDetector(DefaultSnapshotConfig(), logrus.New())

	// Identical history gives every baseline zero variance.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	historical := make([]models.MerchantSnapshot, 21)
	for i := range historical {
		historical[i] = createSnapshot(start.AddDate(0, 0, i), 100)
	}
	current := createSnapshot(start.AddDate(0, 0, 21), 400)

	assert.Empty(t, d.Detect(current, historical, current.PeriodStart))
}

func TestSnapshotDetectorOrdering(t *testing.T) {
	d := NewSnapshotDetector(DefaultSnapshotConfig(), logrus.New())

	historical := createWeekdayHistory(28)
	current := createSnapshot(time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), 100)

	anomalies := d.Detect(current, historical, current.PeriodStart)
	require.NotEmpty(t, anomalies)
	for i := 1; i < len(anomalies); i++ {
		prev, cur := anomalies[i-1], anomalies[i]
		if prev.Severity == cur.Severity {
			assert.GreaterOrEqual(t, abs(prev.DeviationStdDev), abs(cur.DeviationStdDev))
		} else {
			assert.Greater(t, prev.Severity.Rank(), cur.Severity.Rank())
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
