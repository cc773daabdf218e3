// Package decompose splits a daily metric series into trend, weekly
// seasonal, and residual components.
package decompose

import (
	"github.com/merchantpulse/analytics/internal/statistics"
	"github.com/merchantpulse/analytics/pkg/models"
)

const (
	// DefaultTrendWindow is the centered moving-average window (one week).
	DefaultTrendWindow = 7
	// DefaultPeriod is the seasonality cycle length in days.
	DefaultPeriod = 7
)

// Decomposer performs additive time-series decomposition. The zero config is
// not usable; construct with NewDecomposer.
type Decomposer struct {
	TrendWindow int
	Period      int
}

// NewDecomposer creates a decomposer with the weekly defaults.
func NewDecomposer() *Decomposer {
	return &Decomposer{
		TrendWindow: DefaultTrendWindow,
		Period:      DefaultPeriod,
	}
}

// Decompose splits values into trend, seasonal, and residual components,
// index-aligned with the input. The identity
// values[i] == trend[i] + seasonal[i] + residual[i] holds for every i.
//
// The trend is a centered moving average; near the array edges the window is
// asymmetric and shorter, which smooths less there. With fewer points than
// one full period the seasonal component is all zeros. Callers wanting a
// statistically meaningful split should supply at least two full periods;
// that floor is enforced by the forecaster, not here.
func (d *Decomposer) Decompose(values []float64) *models.Decomposition {
	n := len(values)
	trend := make([]float64, n)
	seasonal := make([]float64, n)
	residual := make([]float64, n)

	half := d.TrendWindow / 2
	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > n {
			hi = n
		}
		trend[i] = statistics.Mean(values[lo:hi])
	}

	if n >= d.Period {
		phaseSums := make([]float64, d.Period)
		phaseCounts := make([]int, d.Period)
		for i := 0; i < n; i++ {
			phase := i % d.Period
			phaseSums[phase] += values[i] - trend[i]
			phaseCounts[phase]++
		}
		for i := 0; i < n; i++ {
			phase := i % d.Period
			if phaseCounts[phase] > 0 {
				seasonal[i] = phaseSums[phase] / float64(phaseCounts[phase])
			}
		}
	}

	for i := 0; i < n; i++ {
		residual[i] = values[i] - trend[i] - seasonal[i]
	}

	return &models.Decomposition{
		Trend:             trend,
		Seasonal:          seasonal,
		Residual:          residual,
		SeasonalityPeriod: d.Period,
	}
}
