package models

import (
	"sort"
	"time"
)

// MerchantSnapshot is one day's aggregate for a merchant. Monetary fields
// are integer minor currency units (cents). Immutable once produced.
type MerchantSnapshot struct {
	MerchantID          string    `json:"merchant_id"`
	TransactionCount    int       `json:"transaction_count"`
	RevenueCents        int64     `json:"revenue_cents"`
	UniqueCustomers     int       `json:"unique_customers"`
	CashbackPaidCents   int64     `json:"cashback_paid_cents"`
	CashbackPercent     float64   `json:"cashback_percent"`
	AvgTransactionCents float64   `json:"avg_transaction_cents"`
	CampaignActive      bool      `json:"campaign_active"`
	PeriodStart         time.Time `json:"period_start"`
	PeriodEnd           time.Time `json:"period_end"`
}

// MetricValue extracts the named core metric from the snapshot.
func (s MerchantSnapshot) MetricValue(metric MetricName) float64 {
	switch metric {
	case MetricTransactions:
		return float64(s.TransactionCount)
	case MetricRevenue:
		return float64(s.RevenueCents)
	case MetricCustomers:
		return float64(s.UniqueCustomers)
	case MetricCashbackPaid:
		return float64(s.CashbackPaidCents)
	case MetricAvgTransaction:
		return s.AvgTransactionCents
	case MetricCashbackRate:
		return s.CashbackPercent
	default:
		return 0
	}
}

// CompetitorSnapshot extends MerchantSnapshot with market position fields.
// Rank 1 is the highest revenue in the comparison set.
type CompetitorSnapshot struct {
	MerchantSnapshot
	Rank               int     `json:"rank"`
	IsYou              bool    `json:"is_you"`
	MarketSharePercent float64 `json:"market_share_percent,omitempty"`
}

// RankCompetitors sorts a comparison set by revenue descending and assigns
// ranks by position. The sort is stable: snapshots with equal revenue keep
// their input order. Market share is recomputed from the set's total revenue.
func RankCompetitors(competitors []CompetitorSnapshot) []CompetitorSnapshot {
	ranked := make([]CompetitorSnapshot, len(competitors))
	copy(ranked, competitors)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RevenueCents > ranked[j].RevenueCents
	})

	var totalRevenue int64
	for _, c := range ranked {
		totalRevenue += c.RevenueCents
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
		if totalRevenue > 0 {
			ranked[i].MarketSharePercent = float64(ranked[i].RevenueCents) / float64(totalRevenue) * 100
		} else {
			ranked[i].MarketSharePercent = 0
		}
	}
	return ranked
}
