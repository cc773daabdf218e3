package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createComparisonSet(revenues ...int64) []CompetitorSnapshot {
	set := make([]CompetitorSnapshot, len(revenues))
	for i, rev := range revenues {
		set[i] = CompetitorSnapshot{
			MerchantSnapshot: MerchantSnapshot{RevenueCents: rev},
		}
	}
	return set
}

func TestRankCompetitors(t *testing.T) {
	set := createComparisonSet(300, 500, 100, 300)
	set[0].MerchantID = "a"
	set[3].MerchantID = "b"

	ranked := RankCompetitors(set)
	require.Len(t, ranked, 4)

	assert.Equal(t, int64(500), ranked[0].RevenueCents)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 4, ranked[3].Rank)

	// Stable sort: the tied 300s keep their input order.
	assert.Equal(t, "a", ranked[1].MerchantID)
	assert.Equal(t, "b", ranked[2].MerchantID)
}

func TestRankCompetitorsMarketShare(t *testing.T) {
	ranked := RankCompetitors(createComparisonSet(600, 300, 100))

	assert.InDelta(t, 60.0, ranked[0].MarketSharePercent, 1e-9)
	assert.InDelta(t, 30.0, ranked[1].MarketSharePercent, 1e-9)
	assert.InDelta(t, 10.0, ranked[2].MarketSharePercent, 1e-9)
}

func TestRankCompetitorsDoesNotMutateInput(t *testing.T) {
	set := createComparisonSet(100, 500)
	RankCompetitors(set)

	assert.Equal(t, int64(100), set[0].RevenueCents)
	assert.Zero(t, set[0].Rank)
}

func TestRankCompetitorsZeroRevenue(t *testing.T) {
	ranked := RankCompetitors(createComparisonSet(0, 0))
	assert.Equal(t, 0.0, ranked[0].MarketSharePercent)
	assert.Equal(t, 1, ranked[0].Rank)
}

func TestMetricValue(t *testing.T) {
	snap := MerchantSnapshot{
		TransactionCount:    42,
		RevenueCents:        123400,
		UniqueCustomers:     30,
		CashbackPaidCents:   6170,
		CashbackPercent:     5.0,
		AvgTransactionCents: 2938.1,
		PeriodStart:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 42.0, snap.MetricValue(MetricTransactions))
	assert.Equal(t, 123400.0, snap.MetricValue(MetricRevenue))
	assert.Equal(t, 30.0, snap.MetricValue(MetricCustomers))
	assert.Equal(t, 6170.0, snap.MetricValue(MetricCashbackPaid))
	assert.Equal(t, 2938.1, snap.MetricValue(MetricAvgTransaction))
	assert.Equal(t, 5.0, snap.MetricValue(MetricCashbackRate))
	assert.Equal(t, 0.0, snap.MetricValue(MetricName("unknown")))
}
