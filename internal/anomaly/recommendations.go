package anomaly

import "github.com/merchantpulse/analytics/pkg/models"

// metricLabels are the human-readable names used in explanations.
var metricLabels = map[models.MetricName]string{
	models.MetricTransactions:   "transaction count",
	models.MetricRevenue:        "revenue",
	models.MetricCustomers:      "unique customers",
	models.MetricCashbackPaid:   "cashback paid",
	models.MetricAvgTransaction: "average transaction value",
	models.MetricCashbackRate:   "cashback rate",
}

// recommendations maps metric x anomaly type to a fixed recommended action.
// Kept as a lookup table so copy changes never touch detection logic.
var recommendations = map[models.MetricName]map[models.AnomalyType]string{
	models.MetricTransactions: {
		models.AnomalySpike:          "Check for a running campaign or external traffic source; consider raising inventory and staffing to capture the surge.",
		models.AnomalyDrop:           "Verify payment terminals and checkout flows are healthy, then review whether a competitor launched a promotion.",
		models.AnomalyTrendChange:    "Transaction volume has shifted level; review recent pricing, campaign, or catalog changes before adjusting targets.",
		models.AnomalyUnusualPattern: "Transaction volume matches baseline exactly, which is unusual for live traffic; confirm data ingestion is not stuck.",
	},
	models.MetricRevenue: {
		models.AnomalySpike:          "Confirm the revenue spike is organic rather than a settlement batch; consider extending whatever is driving it.",
		models.AnomalyDrop:           "Audit refunds and failed settlements for the day, and compare against transaction volume to isolate the cause.",
		models.AnomalyTrendChange:    "Revenue has moved to a new level; re-baseline budgets and alert thresholds once the shift is explained.",
		models.AnomalyUnusualPattern: "Revenue equals its historical baseline exactly; verify the feed is delivering fresh numbers.",
	},
	models.MetricCustomers: {
		models.AnomalySpike:          "New customer influx detected; make sure first-purchase incentives and onboarding are ready to convert them to repeat buyers.",
		models.AnomalyDrop:           "Customer count is unusually low; check acquisition channels and whether the storefront was reachable all day.",
		models.AnomalyTrendChange:    "The customer base trend has changed; review recent marketing spend and competitor activity.",
		models.AnomalyUnusualPattern: "Customer count is exactly at baseline, which rarely happens naturally; confirm deduplication is running.",
	},
	models.MetricCashbackPaid: {
		models.AnomalySpike:          "Cashback outlay is unusually high; verify reward rules were not misconfigured and cap exposure if the spike continues.",
		models.AnomalyDrop:           "Cashback paid fell sharply; confirm rewards are accruing correctly, as silent failures damage loyalty.",
		models.AnomalyTrendChange:    "Cashback spend has shifted level; recheck the reward rate against the revenue it is generating.",
		models.AnomalyUnusualPattern: "Cashback paid matches baseline exactly; verify the rewards ledger posted today's entries.",
	},
	models.MetricAvgTransaction: {
		models.AnomalySpike:          "Basket size jumped; identify which products drove it and feature them more prominently.",
		models.AnomalyDrop:           "Basket size dropped; review pricing and consider bundle offers to restore order value.",
		models.AnomalyTrendChange:    "Average order value is trending to a new level; revisit upsell placement and price points.",
		models.AnomalyUnusualPattern: "Average transaction value is exactly at baseline; confirm the averaging job consumed today's data.",
	},
	models.MetricCashbackRate: {
		models.AnomalySpike:          "Effective cashback rate is spiking; check for stacked promotions and tighten rule precedence.",
		models.AnomalyDrop:           "Effective cashback rate collapsed; confirm the advertised rate is actually being honored.",
		models.AnomalyTrendChange:    "The cashback rate has drifted from its configured level; audit reward rules against finance expectations.",
		models.AnomalyUnusualPattern: "Cashback rate equals baseline exactly; verify rate configuration changes are propagating.",
	},
}

// recommendationFor looks up the fixed action for a metric and anomaly type.
func recommendationFor(metric models.MetricName, anomalyType models.AnomalyType) string {
	if byType, ok := recommendations[metric]; ok {
		if rec, ok := byType[anomalyType]; ok {
			return rec
		}
	}
	return "Review the metric against recent operational changes."
}
