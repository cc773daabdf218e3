package models

import "time"

// InsightType categorizes a generated insight.
type InsightType string

const (
	InsightOpportunity InsightType = "opportunity"
	InsightWarning     InsightType = "warning"
	InsightTrend       InsightType = "trend"
	InsightComparison  InsightType = "comparison"
	InsightForecast    InsightType = "forecast"
)

// InsightSeverity grades how much attention an insight deserves.
type InsightSeverity string

const (
	InsightSeverityHigh   InsightSeverity = "high"
	InsightSeverityMedium InsightSeverity = "medium"
	InsightSeverityLow    InsightSeverity = "low"
)

// Weight returns the scoring weight of the severity (high=3, medium=2, low=1).
func (s InsightSeverity) Weight() float64 {
	switch s {
	case InsightSeverityHigh:
		return 3
	case InsightSeverityMedium:
		return 2
	default:
		return 1
	}
}

// InsightImpact quantifies the change an insight describes.
type InsightImpact struct {
	CurrentValue   float64 `json:"current_value"`
	ChangePercent  float64 `json:"change_percent"`
	ChangeAbsolute float64 `json:"change_absolute"`
}

// Insight is one scored, human-readable finding about a merchant. Insights
// are ephemeral: generated fresh per request, never persisted. The ID is a
// deterministic synthetic identifier used for deduplication and display.
type Insight struct {
	ID              string          `json:"id"`
	Type            InsightType     `json:"type"`
	Severity        InsightSeverity `json:"severity"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Metric          MetricName      `json:"metric"`
	Impact          InsightImpact   `json:"impact"`
	Context         string          `json:"context"`
	Recommendations []string        `json:"actionable_recommendations"`
	DetectedAt      time.Time       `json:"detected_at"`
	Confidence      float64         `json:"confidence"` // 0..1
}

// Score combines severity weight, confidence, and change magnitude into the
// value insights are ranked by.
func (i Insight) Score() float64 {
	change := i.Impact.ChangePercent
	if change < 0 {
		change = -change
	}
	return i.Severity.Weight() * i.Confidence * change
}
