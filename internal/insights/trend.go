package insights

import (
	"fmt"
	"time"

	"github.com/merchantpulse/analytics/internal/statistics"
	"github.com/merchantpulse/analytics/pkg/models"
)

// trendInsights flags current transaction volume deviating from the
// trailing-window average and average transaction value deviating from its
// historical norm.
func (e *Engine) trendInsights(current models.MerchantSnapshot, historical []models.MerchantSnapshot, at time.Time) []models.Insight {
	var insights []models.Insight

	if len(historical) >= e.cfg.TrendWindowDays {
		window := historical[len(historical)-e.cfg.TrendWindowDays:]
		values := make([]float64, len(window))
		for i, snap := range window {
			values[i] = float64(snap.TransactionCount)
		}
		trailing := statistics.Mean(values)
		if trailing > 0 {
			currentTxns := float64(current.TransactionCount)
			change := (currentTxns - trailing) / trailing * 100
			if change > e.cfg.TransactionDeviationPct {
				insights = append(insights, newInsight(
					models.InsightOpportunity,
					trendSeverity(change, e.cfg.TransactionDeviationPct),
					models.MetricTransactions,
					"Transaction volume is surging",
					fmt.Sprintf("Today's %d transactions are %.1f%% above the trailing %d-day average.",
						current.TransactionCount, change, e.cfg.TrendWindowDays),
					fmt.Sprintf("Trailing %d-day average is %.1f transactions per day.", e.cfg.TrendWindowDays, trailing),
					models.InsightImpact{
						CurrentValue:   currentTxns,
						ChangePercent:  change,
						ChangeAbsolute: currentTxns - trailing,
					},
					[]string{
						"Make sure inventory and staffing can absorb the extra volume.",
						"Identify the traffic source so the surge can be repeated deliberately.",
						"Consider a limited-time offer to convert surge visitors into repeat customers.",
					},
					0.85, at))
			} else if change < -e.cfg.TransactionDeviationPct {
				insights = append(insights, newInsight(
					models.InsightWarning,
					trendSeverity(change, e.cfg.TransactionDeviationPct),
					models.MetricTransactions,
					"Transaction volume is falling",
					fmt.Sprintf("Today's %d transactions are %.1f%% below the trailing %d-day average.",
						current.TransactionCount, -change, e.cfg.TrendWindowDays),
					fmt.Sprintf("Trailing %d-day average is %.1f transactions per day.", e.cfg.TrendWindowDays, trailing),
					models.InsightImpact{
						CurrentValue:   currentTxns,
						ChangePercent:  change,
						ChangeAbsolute: currentTxns - trailing,
					},
					[]string{
						"Check that payments and checkout were fully operational today.",
						"Review competitor promotions that may be diverting customers.",
						"Consider a re-engagement push to recent customers.",
					},
					0.85, at))
			}
		}
	}

	if len(historical) > 0 {
		values := make([]float64, 0, len(historical))
		for _, snap := range historical {
			if snap.AvgTransactionCents > 0 {
				values = append(values, snap.AvgTransactionCents)
			}
		}
		historicalAvg := statistics.Mean(values)
		if historicalAvg > 0 && current.AvgTransactionCents > 0 {
			change := (current.AvgTransactionCents - historicalAvg) / historicalAvg * 100
			if change > e.cfg.AvgTxnDeviationPct || change < -e.cfg.AvgTxnDeviationPct {
				direction := "grown"
				if change < 0 {
					direction = "shrunk"
				}
				insights = append(insights, newInsight(
					models.InsightTrend,
					models.InsightSeverityMedium,
					models.MetricAvgTransaction,
					fmt.Sprintf("Average basket size has %s", direction),
					fmt.Sprintf("Average transaction value is %.0f cents, %.1f%% away from its historical %.0f cents.",
						current.AvgTransactionCents, change, historicalAvg),
					fmt.Sprintf("Historical average transaction value is %.0f cents.", historicalAvg),
					models.InsightImpact{
						CurrentValue:   current.AvgTransactionCents,
						ChangePercent:  change,
						ChangeAbsolute: current.AvgTransactionCents - historicalAvg,
					},
					[]string{
						"Review which products are driving the shift in order value.",
						"Adjust bundle and upsell placement to reinforce the trend if positive, counter it if negative.",
					},
					0.75, at))
			}
		}
	}

	return insights
}

// trendSeverity grades a deviation: past double the threshold it is high.
func trendSeverity(changePct, threshold float64) models.InsightSeverity {
	if changePct < 0 {
		changePct = -changePct
	}
	if changePct >= 2*threshold {
		return models.InsightSeverityHigh
	}
	return models.InsightSeverityMedium
}
