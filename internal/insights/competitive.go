package insights

import (
	"fmt"
	"time"

	"github.com/merchantpulse/analytics/internal/statistics"
	"github.com/merchantpulse/analytics/pkg/models"
)

// competitiveInsights evaluates market rank and cashback positioning
// against the competitor comparison set.
func (e *Engine) competitiveInsights(current models.MerchantSnapshot, competitors []models.CompetitorSnapshot, at time.Time) []models.Insight {
	if len(competitors) < 2 {
		return nil
	}

	ranked := models.RankCompetitors(competitors)
	var you *models.CompetitorSnapshot
	for i := range ranked {
		if ranked[i].IsYou {
			you = &ranked[i]
			break
		}
	}
	if you == nil {
		return nil
	}

	var insights []models.Insight

	var otherRevenue, otherCashbackRate []float64
	for _, c := range ranked {
		if c.IsYou {
			continue
		}
		otherRevenue = append(otherRevenue, float64(c.RevenueCents))
		otherCashbackRate = append(otherCashbackRate, c.CashbackPercent)
	}
	avgOtherRevenue := statistics.Mean(otherRevenue)

	revenueVsMarket := 0.0
	if avgOtherRevenue > 0 {
		revenueVsMarket = (float64(you.RevenueCents) - avgOtherRevenue) / avgOtherRevenue * 100
	}

	if you.Rank <= e.cfg.TopRankThreshold {
		insights = append(insights, newInsight(
			models.InsightComparison,
			models.InsightSeverityMedium,
			models.MetricRevenue,
			fmt.Sprintf("Ranked #%d in your market", you.Rank),
			fmt.Sprintf("You hold rank %d of %d by revenue, with %.1f%% market share.",
				you.Rank, len(ranked), you.MarketSharePercent),
			fmt.Sprintf("Revenue is %.1f%% above the competitor average.", revenueVsMarket),
			models.InsightImpact{
				CurrentValue:   float64(you.Rank),
				ChangePercent:  revenueVsMarket,
				ChangeAbsolute: float64(you.RevenueCents) - avgOtherRevenue,
			},
			[]string{
				"Leverage the leading position in marketing copy and partner negotiations.",
				"Monitor the next-ranked competitors for catch-up promotions.",
			},
			0.9, at))
	} else if float64(you.Rank) > float64(len(ranked))*(1-e.cfg.BottomPercentile) {
		insights = append(insights, newInsight(
			models.InsightWarning,
			models.InsightSeverityHigh,
			models.MetricRevenue,
			fmt.Sprintf("Trailing the market at rank #%d", you.Rank),
			fmt.Sprintf("You rank %d of %d by revenue, in the bottom %.0f%% of the comparison set.",
				you.Rank, len(ranked), e.cfg.BottomPercentile*100),
			fmt.Sprintf("Revenue is %.1f%% below the competitor average.", -revenueVsMarket),
			models.InsightImpact{
				CurrentValue:   float64(you.Rank),
				ChangePercent:  revenueVsMarket,
				ChangeAbsolute: float64(you.RevenueCents) - avgOtherRevenue,
			},
			[]string{
				"Benchmark pricing and cashback rate against the market leaders.",
				"Focus acquisition spend on the segments where top competitors are weakest.",
				"Review whether your catalog covers the market's best-selling categories.",
			},
			0.9, at))
	}

	avgOtherCashback := statistics.Mean(otherCashbackRate)
	if avgOtherCashback > 0 {
		delta := you.CashbackPercent - avgOtherCashback
		deltaPct := delta / avgOtherCashback * 100
		if delta > e.cfg.CashbackRateDeltaPts {
			insights = append(insights, newInsight(
				models.InsightComparison,
				models.InsightSeverityMedium,
				models.MetricCashbackRate,
				"Cashback rate is aggressive for this market",
				fmt.Sprintf("Your %.1f%% cashback is %.1f points above the competitor average of %.1f%%.",
					you.CashbackPercent, delta, avgOtherCashback),
				fmt.Sprintf("Competitor average cashback rate is %.1f%%.", avgOtherCashback),
				models.InsightImpact{
					CurrentValue:   you.CashbackPercent,
					ChangePercent:  deltaPct,
					ChangeAbsolute: delta,
				},
				[]string{
					"Verify the premium rate is actually winning share before sustaining the cost.",
					"Test a small rate reduction on low-sensitivity segments.",
				},
				0.8, at))
		} else if delta < -e.cfg.CashbackRateDeltaPts {
			insights = append(insights, newInsight(
				models.InsightOpportunity,
				models.InsightSeverityMedium,
				models.MetricCashbackRate,
				"Cashback rate is conservative for this market",
				fmt.Sprintf("Your %.1f%% cashback is %.1f points below the competitor average of %.1f%%.",
					you.CashbackPercent, -delta, avgOtherCashback),
				fmt.Sprintf("Competitor average cashback rate is %.1f%%.", avgOtherCashback),
				models.InsightImpact{
					CurrentValue:   you.CashbackPercent,
					ChangePercent:  deltaPct,
					ChangeAbsolute: delta,
				},
				[]string{
					"Consider a matched or slightly higher rate to stop share leakage.",
					"Pair any rate increase with a minimum-spend rule to protect margin.",
				},
				0.8, at))
		}
	}

	return insights
}
