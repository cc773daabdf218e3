package insights

import (
	"fmt"
	"time"

	"github.com/merchantpulse/analytics/internal/statistics"
	"github.com/merchantpulse/analytics/pkg/models"
)

// efficiencyInsights evaluates cashback return on investment and customer
// acquisition cost. Ratio metrics with zero denominators are skipped rather
// than propagated as NaN.
func (e *Engine) efficiencyInsights(current models.MerchantSnapshot, historical []models.MerchantSnapshot, at time.Time) []models.Insight {
	var insights []models.Insight

	if current.CashbackPaidCents > 0 {
		roi := float64(current.RevenueCents-current.CashbackPaidCents) / float64(current.CashbackPaidCents)
		if roi < e.cfg.ROIWarnBelow {
			insights = append(insights, newInsight(
				models.InsightWarning,
				models.InsightSeverityHigh,
				models.MetricCashbackPaid,
				"Cashback ROI below healthy threshold",
				fmt.Sprintf("Every cent of cashback returns %.1fx in net revenue, below the healthy %.1fx floor.",
					roi, e.cfg.ROIWarnBelow),
				fmt.Sprintf("Healthy cashback ROI is at least %.1fx.", e.cfg.ROIWarnBelow),
				models.InsightImpact{
					CurrentValue:   roi,
					ChangePercent:  (roi - e.cfg.ROIWarnBelow) / e.cfg.ROIWarnBelow * 100,
					ChangeAbsolute: roi - e.cfg.ROIWarnBelow,
				},
				[]string{
					"Lower the cashback rate or restrict it to higher-margin categories.",
					"Add a minimum basket size to cashback eligibility.",
					"Shift part of the budget to channels with a measured return.",
				},
				0.85, at))
		} else if roi > e.cfg.ROIOpportunityAbove {
			insights = append(insights, newInsight(
				models.InsightOpportunity,
				models.InsightSeverityMedium,
				models.MetricCashbackPaid,
				"Cashback ROI leaves room to invest",
				fmt.Sprintf("Cashback is returning %.1fx in net revenue, well above the %.1fx bar; spend can scale.",
					roi, e.cfg.ROIOpportunityAbove),
				fmt.Sprintf("ROI above %.1fx indicates underinvestment in rewards.", e.cfg.ROIOpportunityAbove),
				models.InsightImpact{
					CurrentValue:   roi,
					ChangePercent:  (roi - e.cfg.ROIOpportunityAbove) / e.cfg.ROIOpportunityAbove * 100,
					ChangeAbsolute: roi - e.cfg.ROIOpportunityAbove,
				},
				[]string{
					"Trial a higher cashback rate on acquisition-focused campaigns.",
					"Expand rewards to adjacent product categories and measure the lift.",
				},
				0.8, at))
		}
	}

	if current.CashbackPaidCents > 0 && current.UniqueCustomers > 0 {
		cac := float64(current.CashbackPaidCents) / float64(current.UniqueCustomers)
		var historicalCACs []float64
		for _, snap := range historical {
			if snap.CashbackPaidCents > 0 && snap.UniqueCustomers > 0 {
				historicalCACs = append(historicalCACs, float64(snap.CashbackPaidCents)/float64(snap.UniqueCustomers))
			}
		}
		historicalAvg := statistics.Mean(historicalCACs)
		if historicalAvg > 0 {
			rise := (cac - historicalAvg) / historicalAvg * 100
			if rise > e.cfg.CACRisePct {
				insights = append(insights, newInsight(
					models.InsightWarning,
					models.InsightSeverityMedium,
					models.MetricCashbackPaid,
					"Customer acquisition cost is rising",
					fmt.Sprintf("Cashback per customer is %.0f cents, %.1f%% above the historical average of %.0f cents.",
						cac, rise, historicalAvg),
					fmt.Sprintf("Historical cashback cost per customer is %.0f cents.", historicalAvg),
					models.InsightImpact{
						CurrentValue:   cac,
						ChangePercent:  rise,
						ChangeAbsolute: cac - historicalAvg,
					},
					[]string{
						"Check whether rewards are concentrating on a shrinking customer pool.",
						"Rebalance incentives toward first-purchase offers with capped value.",
					},
					0.75, at))
			}
		}
	}

	return insights
}
