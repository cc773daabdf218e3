package insights

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchantpulse/analytics/pkg/models"
)

var periodEnd = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// createSnapshot builds a snapshot with nothing remarkable about it: steady
// volume, no cashback program, repeat rate comfortably above the floor.
func createSnapshot(day time.Time) models.MerchantSnapshot {
	return models.MerchantSnapshot{
		MerchantID:          "m-1",
		TransactionCount:    100,
		RevenueCents:        250000,
		UniqueCustomers:     60,
		AvgTransactionCents: 2500,
		PeriodStart:         day,
		PeriodEnd:           day.Add(24 * time.Hour),
	}
}

func createHistory(days int) []models.MerchantSnapshot {
	snapshots := make([]models.MerchantSnapshot, days)
	for i := range snapshots {
		snapshots[i] = createSnapshot(periodEnd.AddDate(0, 0, i-days))
	}
	return snapshots
}

func createCompetitor(revenue int64, customers int, cashbackPct float64, isYou bool) models.CompetitorSnapshot {
	return models.CompetitorSnapshot{
		MerchantSnapshot: models.MerchantSnapshot{
			RevenueCents:    revenue,
			UniqueCustomers: customers,
			CashbackPercent: cashbackPct,
		},
		IsYou: isYou,
	}
}

func TestDetectQuietMerchant(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	insights := e.Detect(createSnapshot(periodEnd), createHistory(14), nil)
	assert.Empty(t, insights)
}

func TestDetectTransactionSurge(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	current := createSnapshot(periodEnd)
	current.TransactionCount = 130 // +30% vs the trailing average

	insights := e.Detect(current, createHistory(14), nil)
	require.Len(t, insights, 1)

	i := insights[0]
	assert.Equal(t, models.InsightOpportunity, i.Type)
	assert.Equal(t, models.InsightSeverityHigh, i.Severity) // double the threshold
	assert.Equal(t, models.MetricTransactions, i.Metric)
	assert.InDelta(t, 30, i.Impact.ChangePercent, 0.01)
	assert.Equal(t, periodEnd, i.DetectedAt)
}

func TestDetectTransactionDecline(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	current := createSnapshot(periodEnd)
	current.TransactionCount = 80 // -20%

	insights := e.Detect(current, createHistory(14), nil)
	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightWarning, insights[0].Type)
	assert.Equal(t, models.InsightSeverityMedium, insights[0].Severity)
	assert.Negative(t, insights[0].Impact.ChangePercent)
}

func TestDetectBasketSizeShift(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	current := createSnapshot(periodEnd)
	current.AvgTransactionCents = 3000 // +20% vs historical 2500

	insights := e.Detect(current, createHistory(14), nil)
	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightTrend, insights[0].Type)
	assert.Equal(t, models.MetricAvgTransaction, insights[0].Metric)
}

func TestDetectPoorCashbackROI(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	current := createSnapshot(periodEnd)
	current.CashbackPaidCents = 100000 // ROI 1.5x, and 40% of revenue

	insights := e.Detect(current, createHistory(14), nil)
	require.Len(t, insights, 2)

	titles := []string{insights[0].Title, insights[1].Title}
	assert.Contains(t, titles, "Cashback ROI below healthy threshold")
	assert.Contains(t, titles, "Cashback outlay threatens sustainability")
	for _, i := range insights {
		assert.Equal(t, models.InsightWarning, i.Type)
		assert.Equal(t, models.InsightSeverityHigh, i.Severity)
	}
}

func TestDetectRepeatRateLow(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	// Nearly every transaction comes from a distinct customer.
	current := createSnapshot(periodEnd)
	current.UniqueCustomers = 95
	historical := createHistory(14)
	for i := range historical {
		historical[i].UniqueCustomers = 95
	}

	insights := e.Detect(current, historical, nil)
	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightOpportunity, insights[0].Type)
	assert.Equal(t, models.InsightSeverityHigh, insights[0].Severity)
	assert.Equal(t, models.MetricCustomers, insights[0].Metric)
	assert.Equal(t, "Repeat purchase rate is low", insights[0].Title)
}

func TestDetectMarketLeader(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	competitors := []models.CompetitorSnapshot{
		createCompetitor(500000, 50, 0, true),
		createCompetitor(300000, 50, 0, false),
		createCompetitor(200000, 50, 0, false),
		createCompetitor(100000, 50, 0, false),
	}

	insights := e.Detect(createSnapshot(periodEnd), createHistory(14), competitors)
	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightComparison, insights[0].Type)
	assert.Equal(t, "Ranked #1 in your market", insights[0].Title)
}

func TestDetectTrailingTheMarket(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	competitors := []models.CompetitorSnapshot{
		createCompetitor(100000, 60, 0, true),
		createCompetitor(500000, 200, 0, false),
		createCompetitor(400000, 200, 0, false),
		createCompetitor(300000, 200, 0, false),
	}

	insights := e.Detect(createSnapshot(periodEnd), createHistory(14), competitors)
	require.Len(t, insights, 2)

	titles := []string{insights[0].Title, insights[1].Title}
	assert.Contains(t, titles, "Trailing the market at rank #4")
	assert.Contains(t, titles, "Large untapped customer base in your market")
}

func TestDetectConservativeCashbackRate(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	competitors := []models.CompetitorSnapshot{
		createCompetitor(650000, 60, 3.0, true),
		createCompetitor(900000, 60, 5.0, false),
		createCompetitor(800000, 60, 5.0, false),
		createCompetitor(700000, 60, 5.0, false),
		createCompetitor(600000, 60, 5.0, false),
		createCompetitor(500000, 60, 5.0, false),
	}

	insights := e.Detect(createSnapshot(periodEnd), createHistory(14), competitors)
	require.Len(t, insights, 1)
	assert.Equal(t, models.InsightOpportunity, insights[0].Type)
	assert.Equal(t, models.MetricCashbackRate, insights[0].Metric)
	assert.Equal(t, "Cashback rate is conservative for this market", insights[0].Title)
}

func TestDetectDeterministic(t *testing.T) {
	e := NewEngine(DefaultConfig(), logrus.New())

	current := createSnapshot(periodEnd)
	current.TransactionCount = 130
	current.CashbackPaidCents = 100000
	historical := createHistory(14)
	competitors := []models.CompetitorSnapshot{
		createCompetitor(100000, 60, 0, true),
		createCompetitor(500000, 200, 0, false),
		createCompetitor(400000, 200, 0, false),
		createCompetitor(300000, 200, 0, false),
	}

	first := e.Detect(current, historical, competitors)
	second := e.Detect(current, historical, competitors)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	for _, i := range first {
		assert.NotEmpty(t, i.ID)
	}
}

func TestDetectOrderingAndTrim(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResults = 2
	e := NewEngine(cfg, logrus.New())

	current := createSnapshot(periodEnd)
	current.TransactionCount = 130
	current.AvgTransactionCents = 3000
	current.CashbackPaidCents = 100000 // fires both ROI and risk rules

	insights := e.Detect(current, createHistory(14), nil)
	require.Len(t, insights, 2)

	// The cashback risk rule has by far the largest change magnitude.
	assert.Equal(t, "Cashback outlay threatens sustainability", insights[0].Title)
	assert.GreaterOrEqual(t, insights[0].Score(), insights[1].Score())
}

func BenchmarkDetect(b *testing.B) {
	e := NewEngine(DefaultConfig(), logrus.New())
	current := createSnapshot(periodEnd)
	current.TransactionCount = 130
	historical := createHistory(30)
	competitors := []models.CompetitorSnapshot{
		createCompetitor(100000, 60, 3, true),
		createCompetitor(500000, 200, 5, false),
		createCompetitor(400000, 200, 5, false),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Detect(current, historical, competitors)
	}
}
