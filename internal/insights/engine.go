// Package insights synthesizes ranked, human-readable business findings
// from current, historical, and competitor merchant snapshots. Five
// independent rule blocks each contribute zero or more insights; the engine
// scores, orders, and trims the combined list.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/merchantpulse/analytics/pkg/models"
)

// Config holds the rule thresholds. Zero values are replaced with the
// defaults below, so a partially filled config is safe.
type Config struct {
	MaxResults              int     `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
	TrendWindowDays         int     `json:"trend_window_days" yaml:"trend_window_days" mapstructure:"trend_window_days"`
	TransactionDeviationPct float64 `json:"transaction_deviation_pct" yaml:"transaction_deviation_pct" mapstructure:"transaction_deviation_pct"`
	AvgTxnDeviationPct      float64 `json:"avg_txn_deviation_pct" yaml:"avg_txn_deviation_pct" mapstructure:"avg_txn_deviation_pct"`
	TopRankThreshold        int     `json:"top_rank_threshold" yaml:"top_rank_threshold" mapstructure:"top_rank_threshold"`
	BottomPercentile        float64 `json:"bottom_percentile" yaml:"bottom_percentile" mapstructure:"bottom_percentile"`
	CashbackRateDeltaPts    float64 `json:"cashback_rate_delta_pts" yaml:"cashback_rate_delta_pts" mapstructure:"cashback_rate_delta_pts"`
	ROIWarnBelow            float64 `json:"roi_warn_below" yaml:"roi_warn_below" mapstructure:"roi_warn_below"`
	ROIOpportunityAbove     float64 `json:"roi_opportunity_above" yaml:"roi_opportunity_above" mapstructure:"roi_opportunity_above"`
	CACRisePct              float64 `json:"cac_rise_pct" yaml:"cac_rise_pct" mapstructure:"cac_rise_pct"`
	RepeatRateFloor         float64 `json:"repeat_rate_floor" yaml:"repeat_rate_floor" mapstructure:"repeat_rate_floor"`
	UntappedGapPct          float64 `json:"untapped_gap_pct" yaml:"untapped_gap_pct" mapstructure:"untapped_gap_pct"`
	CashbackRevenueRiskPct  float64 `json:"cashback_revenue_risk_pct" yaml:"cashback_revenue_risk_pct" mapstructure:"cashback_revenue_risk_pct"`
}

// DefaultConfig returns the standard rule thresholds.
func DefaultConfig() Config {
	return Config{
		MaxResults:              10,
		TrendWindowDays:         7,
		TransactionDeviationPct: 15,
		AvgTxnDeviationPct:      10,
		TopRankThreshold:        3,
		BottomPercentile:        0.30,
		CashbackRateDeltaPts:    1.0,
		ROIWarnBelow:            2.0,
		ROIOpportunityAbove:     4.0,
		CACRisePct:              20,
		RepeatRateFloor:         0.30,
		UntappedGapPct:          50,
		CashbackRevenueRiskPct:  15,
	}
}

// Engine generates insights. Stateless and safe for concurrent use.
type Engine struct {
	cfg    Config
	logger *logrus.Logger
}

// NewEngine creates an insights engine. A nil logger falls back to a
// default one.
func NewEngine(cfg Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	def := DefaultConfig()
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.TrendWindowDays <= 0 {
		cfg.TrendWindowDays = def.TrendWindowDays
	}
	if cfg.TransactionDeviationPct <= 0 {
		cfg.TransactionDeviationPct = def.TransactionDeviationPct
	}
	if cfg.AvgTxnDeviationPct <= 0 {
		cfg.AvgTxnDeviationPct = def.AvgTxnDeviationPct
	}
	if cfg.TopRankThreshold <= 0 {
		cfg.TopRankThreshold = def.TopRankThreshold
	}
	if cfg.BottomPercentile <= 0 {
		cfg.BottomPercentile = def.BottomPercentile
	}
	if cfg.CashbackRateDeltaPts <= 0 {
		cfg.CashbackRateDeltaPts = def.CashbackRateDeltaPts
	}
	if cfg.ROIWarnBelow <= 0 {
		cfg.ROIWarnBelow = def.ROIWarnBelow
	}
	if cfg.ROIOpportunityAbove <= 0 {
		cfg.ROIOpportunityAbove = def.ROIOpportunityAbove
	}
	if cfg.CACRisePct <= 0 {
		cfg.CACRisePct = def.CACRisePct
	}
	if cfg.RepeatRateFloor <= 0 {
		cfg.RepeatRateFloor = def.RepeatRateFloor
	}
	if cfg.UntappedGapPct <= 0 {
		cfg.UntappedGapPct = def.UntappedGapPct
	}
	if cfg.CashbackRevenueRiskPct <= 0 {
		cfg.CashbackRevenueRiskPct = def.CashbackRevenueRiskPct
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Detect runs the five rule blocks and returns the top insights by score,
// most significant first. Given identical inputs it returns the identical
// ordered list: insight IDs are content-derived, timestamps come from the
// snapshot period, and ties keep generation order.
func (e *Engine) Detect(current models.MerchantSnapshot, historical []models.MerchantSnapshot, competitors []models.CompetitorSnapshot) []models.Insight {
	at := current.PeriodEnd

	var insights []models.Insight
	insights = append(insights, e.trendInsights(current, historical, at)...)
	insights = append(insights, e.competitiveInsights(current, competitors, at)...)
	insights = append(insights, e.efficiencyInsights(current, historical, at)...)
	insights = append(insights, e.opportunityInsights(current, historical, competitors, at)...)
	insights = append(insights, e.riskInsights(current, at)...)

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Score() > insights[j].Score()
	})
	if len(insights) > e.cfg.MaxResults {
		insights = insights[:e.cfg.MaxResults]
	}

	e.logger.WithFields(logrus.Fields{
		"merchant_id": current.MerchantID,
		"insights":    len(insights),
	}).Debug("Generated insights")

	return insights
}

// insightID derives a stable synthetic identifier from the insight's
// defining fields, so identical inputs produce identical IDs.
func insightID(insightType models.InsightType, metric models.MetricName, title string) string {
	name := fmt.Sprintf("%s/%s/%s", insightType, metric, title)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func newInsight(insightType models.InsightType, severity models.InsightSeverity, metric models.MetricName,
	title, description, context string, impact models.InsightImpact, recommendations []string,
	confidence float64, at time.Time) models.Insight {
	return models.Insight{
		ID:              insightID(insightType, metric, title),
		Type:            insightType,
		Severity:        severity,
		Title:           title,
		Description:     description,
		Metric:          metric,
		Impact:          impact,
		Context:         context,
		Recommendations: recommendations,
		DetectedAt:      at,
		Confidence:      confidence,
	}
}
