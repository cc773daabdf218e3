package insights

import (
	"fmt"
	"time"

	"github.com/merchantpulse/analytics/pkg/models"
)

// healthyCashbackBand is the cashback-to-revenue range, in percent, that
// risk insights benchmark against.
var healthyCashbackBand = [2]float64{8, 12}

// riskInsights warns when cashback outlay is an unsustainable share of
// revenue.
func (e *Engine) riskInsights(current models.MerchantSnapshot, at time.Time) []models.Insight {
	if current.RevenueCents <= 0 {
		return nil
	}

	ratio := float64(current.CashbackPaidCents) / float64(current.RevenueCents) * 100
	if ratio <= e.cfg.CashbackRevenueRiskPct {
		return nil
	}

	bandTop := healthyCashbackBand[1]
	return []models.Insight{newInsight(
		models.InsightWarning,
		models.InsightSeverityHigh,
		models.MetricCashbackPaid,
		"Cashback outlay threatens sustainability",
		fmt.Sprintf("Cashback consumes %.1f%% of revenue, above the %.0f%% risk line.",
			ratio, e.cfg.CashbackRevenueRiskPct),
		fmt.Sprintf("A sustainable cashback-to-revenue ratio is %.0f%% to %.0f%%.",
			healthyCashbackBand[0], bandTop),
		models.InsightImpact{
			CurrentValue:   ratio,
			ChangePercent:  (ratio - bandTop) / bandTop * 100,
			ChangeAbsolute: ratio - bandTop,
		},
		[]string{
			"Cap per-transaction cashback while keeping the headline rate.",
			"Phase the rate down toward the healthy band and monitor volume response.",
			"Shift part of the program toward non-monetary perks.",
		},
		0.9, at)}
}
