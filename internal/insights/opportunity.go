package insights

import (
	"fmt"
	"time"

	"github.com/merchantpulse/analytics/pkg/models"
)

// opportunityInsights flags a weak repeat-customer rate and a large
// untapped-customer gap against the market leader.
func (e *Engine) opportunityInsights(current models.MerchantSnapshot, historical []models.MerchantSnapshot, competitors []models.CompetitorSnapshot, at time.Time) []models.Insight {
	var insights []models.Insight

	// Repeat-purchase proxy from the observable fields: the share of
	// transactions beyond one-per-customer over the trailing window. Each
	// customer's first transaction is acquisition; the rest are repeats.
	var totalTxns, totalCustomers int
	for _, snap := range historical {
		totalTxns += snap.TransactionCount
		totalCustomers += snap.UniqueCustomers
	}
	totalTxns += current.TransactionCount
	totalCustomers += current.UniqueCustomers

	if totalTxns > 0 && totalCustomers > 0 && totalCustomers <= totalTxns {
		repeatRate := 1 - float64(totalCustomers)/float64(totalTxns)
		if repeatRate < e.cfg.RepeatRateFloor {
			shortfall := (e.cfg.RepeatRateFloor - repeatRate) / e.cfg.RepeatRateFloor * 100
			insights = append(insights, newInsight(
				models.InsightOpportunity,
				models.InsightSeverityHigh,
				models.MetricCustomers,
				"Repeat purchase rate is low",
				fmt.Sprintf("Only %.0f%% of transactions come from returning customers, below the %.0f%% benchmark.",
					repeatRate*100, e.cfg.RepeatRateFloor*100),
				fmt.Sprintf("Healthy merchants see at least %.0f%% of transactions from repeat customers.", e.cfg.RepeatRateFloor*100),
				models.InsightImpact{
					CurrentValue:   repeatRate * 100,
					ChangePercent:  -shortfall,
					ChangeAbsolute: (repeatRate - e.cfg.RepeatRateFloor) * 100,
				},
				[]string{
					"Introduce a loyalty tier that unlocks after the second purchase.",
					"Send a time-boxed cashback boost to customers who bought exactly once.",
					"Review post-purchase communication for reasons customers do not return.",
				},
				0.7, at))
		}
	}

	if len(competitors) >= 2 && current.UniqueCustomers > 0 {
		ranked := models.RankCompetitors(competitors)
		for _, c := range ranked {
			if c.IsYou {
				continue
			}
			// Highest-ranked competitor that is not the subject merchant.
			gap := c.UniqueCustomers - current.UniqueCustomers
			gapPct := float64(gap) / float64(current.UniqueCustomers) * 100
			if gapPct > e.cfg.UntappedGapPct {
				insights = append(insights, newInsight(
					models.InsightOpportunity,
					models.InsightSeverityMedium,
					models.MetricCustomers,
					"Large untapped customer base in your market",
					fmt.Sprintf("The market leader reaches %d customers, %.0f%% more than your %d.",
						c.UniqueCustomers, gapPct, current.UniqueCustomers),
					fmt.Sprintf("Top competitor serves %d unique customers per day.", c.UniqueCustomers),
					models.InsightImpact{
						CurrentValue:   float64(current.UniqueCustomers),
						ChangePercent:  gapPct,
						ChangeAbsolute: float64(gap),
					},
					[]string{
						"Study which channels the leader uses to reach customers you do not.",
						"Run a referral incentive aimed at the leader's customer segments.",
					},
					0.65, at))
			}
			break
		}
	}

	return insights
}
