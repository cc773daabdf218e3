package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchantpulse/analytics/pkg/models"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSeriesDeterministic(t *testing.T) {
	spec := SeriesSpec{
		Metric:      models.MetricTransactions,
		Start:       start,
		Days:        30,
		Base:        100,
		WeekendLift: 0.25,
		NoiseSigma:  5,
		Spikes:      map[int]float64{20: 2.5},
	}

	first := NewGenerator(42).Series(spec)
	second := NewGenerator(42).Series(spec)
	assert.Equal(t, first, second)

	different := NewGenerator(43).Series(spec)
	assert.NotEqual(t, first.Values(), different.Values())
}

func TestSeriesShape(t *testing.T) {
	series := NewGenerator(1).Series(SeriesSpec{
		Metric:     models.MetricRevenue,
		Start:      start,
		Days:       14,
		Base:       50,
		NoiseSigma: 100, // large noise exercises the non-negative clamp
	})
	require.Equal(t, 14, series.Len())

	for i, p := range series.Points {
		assert.Equal(t, start.AddDate(0, 0, i), p.Date, "date at index %d", i)
		assert.GreaterOrEqual(t, p.Value, 0.0)
	}
}

func TestSnapshotHistoryDeterministic(t *testing.T) {
	first := NewGenerator(7).SnapshotHistory("m-1", start, 28, 100)
	second := NewGenerator(7).SnapshotHistory("m-1", start, 28, 100)
	assert.Equal(t, first, second)
}

func TestSnapshotHistoryShape(t *testing.T) {
	snapshots := NewGenerator(7).SnapshotHistory("m-1", start, 28, 100)
	require.Len(t, snapshots, 28)

	for i, snap := range snapshots {
		assert.Equal(t, "m-1", snap.MerchantID)
		assert.Equal(t, start.AddDate(0, 0, i), snap.PeriodStart)
		assert.Equal(t, snap.PeriodStart.Add(24*time.Hour), snap.PeriodEnd)
		assert.Positive(t, snap.TransactionCount)
		assert.Positive(t, snap.RevenueCents)
		assert.Positive(t, snap.UniqueCustomers)
		assert.Positive(t, snap.CashbackPaidCents)
	}
}

func TestCompetitors(t *testing.T) {
	gen := NewGenerator(11)
	you := gen.SnapshotHistory("m-1", start, 1, 100)[0]

	set := gen.Competitors(you, 5)
	require.Len(t, set, 6)

	var found int
	for i, c := range set {
		assert.Equal(t, i+1, c.Rank)
		if c.IsYou {
			found++
			assert.Equal(t, "m-1", c.MerchantID)
		}
	}
	assert.Equal(t, 1, found)

	for i := 1; i < len(set); i++ {
		assert.GreaterOrEqual(t, set[i-1].RevenueCents, set[i].RevenueCents)
	}
}
