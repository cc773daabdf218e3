package anomaly

import (
	"math"
	"sort"

	"github.com/merchantpulse/analytics/pkg/models"
)

// historySeverity bands an absolute z-score for the history detector.
// Callers only band scores at or above the detection threshold.
func historySeverity(absZ float64) models.AnomalySeverity {
	switch {
	case absZ < 2.0:
		return models.SeverityLow
	case absZ < 2.5:
		return models.SeverityMedium
	case absZ < 3.0:
		return models.SeverityHigh
	default:
		return models.SeverityCritical
	}
}

// snapshotSeverity bands an absolute z-score for the snapshot detector.
// Transactions and revenue are critical metrics with a lower warning bar.
func snapshotSeverity(absZ float64, criticalMetric bool) models.AnomalySeverity {
	switch {
	case absZ > 3.0:
		return models.SeverityCritical
	case absZ > 2.5 || (criticalMetric && absZ > 2.0):
		return models.SeverityWarning
	default:
		return models.SeverityInfo
	}
}

// channelsFor routes an anomaly to its alert channels by severity.
func channelsFor(severity models.AnomalySeverity) []models.AlertChannel {
	switch severity {
	case models.SeverityCritical:
		return []models.AlertChannel{models.ChannelEmail, models.ChannelSlack, models.ChannelMobile}
	case models.SeverityHigh, models.SeverityWarning:
		return []models.AlertChannel{models.ChannelEmail, models.ChannelSlack}
	default:
		return []models.AlertChannel{models.ChannelEmail}
	}
}

// sortBySeverity orders anomalies most severe first, breaking ties by raw
// deviation magnitude. The sort is stable so equal anomalies keep their
// metric order.
func sortBySeverity(anomalies []models.Anomaly) {
	sort.SliceStable(anomalies, func(i, j int) bool {
		ri, rj := anomalies[i].Severity.Rank(), anomalies[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return math.Abs(anomalies[i].DeviationStdDev) > math.Abs(anomalies[j].DeviationStdDev)
	})
}
