package models

import "time"

// AnomalySeverity classifies how unusual an observation is. The history
// detector emits low/medium/high/critical; the snapshot detector emits
// info/warning/critical. Both map onto the same underlying z-score scale.
type AnomalySeverity string

const (
	SeverityInfo     AnomalySeverity = "info"
	SeverityLow      AnomalySeverity = "low"
	SeverityMedium   AnomalySeverity = "medium"
	SeverityWarning  AnomalySeverity = "warning"
	SeverityHigh     AnomalySeverity = "high"
	SeverityCritical AnomalySeverity = "critical"
)

// severityRank orders severities for sorting, most severe highest.
var severityRank = map[AnomalySeverity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityWarning:  3,
	SeverityHigh:     4,
	SeverityCritical: 5,
}

// Rank returns the sort weight of the severity, most severe highest.
func (s AnomalySeverity) Rank() int { return severityRank[s] }

// AnomalyType classifies the shape of a detected anomaly.
type AnomalyType string

const (
	AnomalySpike          AnomalyType = "spike"
	AnomalyDrop           AnomalyType = "drop"
	AnomalyTrendChange    AnomalyType = "trend_change"
	AnomalyUnusualPattern AnomalyType = "unusual_pattern"
)

// AlertChannel names a delivery channel for anomaly alerts.
type AlertChannel string

const (
	ChannelEmail  AlertChannel = "email"
	ChannelSlack  AlertChannel = "slack"
	ChannelMobile AlertChannel = "mobile"
)

// Anomaly is one statistically unusual observation of a metric.
type Anomaly struct {
	MerchantID          string          `json:"merchant_id,omitempty"`
	Metric              MetricName      `json:"metric"`
	DetectedAt          time.Time       `json:"detected_at"`
	CurrentValue        float64         `json:"current_value"`
	ExpectedValue       float64         `json:"expected_value"`
	DeviationStdDev     float64         `json:"deviation_stddev"` // signed z-score
	IsSignificant       bool            `json:"is_significant"`
	SeasonalityAdjusted bool            `json:"seasonality_adjusted"`
	Type                AnomalyType     `json:"type"`
	Severity            AnomalySeverity `json:"severity"`
	Explanation         string          `json:"explanation"`
	Recommendation      string          `json:"recommendation,omitempty"`
	Channels            []AlertChannel  `json:"channels"`
}
