package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsightScore(t *testing.T) {
	insight := Insight{
		Severity:   InsightSeverityHigh,
		Confidence: 0.8,
		Impact:     InsightImpact{ChangePercent: -25},
	}
	// 3 * 0.8 * 25: the change magnitude counts, not its sign.
	assert.InDelta(t, 60.0, insight.Score(), 1e-9)
}

func TestInsightScoreSeverityWeights(t *testing.T) {
	base := Insight{Confidence: 1, Impact: InsightImpact{ChangePercent: 10}}

	high, medium, low := base, base, base
	high.Severity = InsightSeverityHigh
	medium.Severity = InsightSeverityMedium
	low.Severity = InsightSeverityLow

	assert.Equal(t, 30.0, high.Score())
	assert.Equal(t, 20.0, medium.Score())
	assert.Equal(t, 10.0, low.Score())
}

func TestSeverityRank(t *testing.T) {
	ordered := []AnomalySeverity{
		SeverityInfo, SeverityLow, SeverityMedium,
		SeverityWarning, SeverityHigh, SeverityCritical,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank())
	}
}
