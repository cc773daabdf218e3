// Package fixtures generates synthetic merchant data for tests and demos.
// All randomness flows through a Generator seeded explicitly by the caller;
// nothing in the statistical core ever calls into this package.
package fixtures

import (
	"math"
	"math/rand"
	"time"

	"github.com/merchantpulse/analytics/pkg/models"
)

// SeriesSpec describes a synthetic daily metric series.
type SeriesSpec struct {
	Metric      models.MetricName
	Start       time.Time
	Days        int
	Base        float64
	WeekendLift float64         // fractional lift applied on Sat/Sun
	NoiseSigma  float64         // gaussian noise standard deviation
	Spikes      map[int]float64 // day index -> multiplier applied to base
}

// Generator produces deterministic synthetic data from a fixed seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with the given value. The same
// seed always yields the same data.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Series builds a contiguous daily metric series per the spec. Values are
// clamped non-negative.
func (g *Generator) Series(spec SeriesSpec) models.MetricSeries {
	points := make([]models.MetricPoint, spec.Days)
	for i := 0; i < spec.Days; i++ {
		date := spec.Start.AddDate(0, 0, i)
		value := spec.Base
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			value *= 1 + spec.WeekendLift
		}
		if mult, ok := spec.Spikes[i]; ok {
			value = spec.Base * mult
		}
		value += g.rng.NormFloat64() * spec.NoiseSigma
		points[i] = models.MetricPoint{
			Date:  date,
			Value: math.Max(0, value),
		}
	}
	return models.MetricSeries{Metric: spec.Metric, Points: points}
}

// SnapshotHistory builds contiguous daily merchant snapshots with mild
// weekend lift and noise around the given base transaction volume.
func (g *Generator) SnapshotHistory(merchantID string, start time.Time, days int, baseTxns float64) []models.MerchantSnapshot {
	snapshots := make([]models.MerchantSnapshot, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		txns := baseTxns
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			txns *= 1.2
		}
		txns = math.Max(1, txns+g.rng.NormFloat64()*baseTxns*0.08)

		avgTxnCents := 2500 + g.rng.NormFloat64()*150
		revenue := int64(txns * avgTxnCents)
		customers := int(math.Max(1, txns*0.7+g.rng.NormFloat64()*3))
		cashbackRate := 5.0
		cashback := int64(float64(revenue) * cashbackRate / 100)

		snapshots[i] = models.MerchantSnapshot{
			MerchantID:          merchantID,
			TransactionCount:    int(txns),
			RevenueCents:        revenue,
			UniqueCustomers:     customers,
			CashbackPaidCents:   cashback,
			CashbackPercent:     cashbackRate,
			AvgTransactionCents: avgTxnCents,
			PeriodStart:         day,
			PeriodEnd:           day.Add(24 * time.Hour),
		}
	}
	return snapshots
}

// Competitors derives a comparison set around the subject merchant's
// snapshot, with revenues spread above and below it.
func (g *Generator) Competitors(you models.MerchantSnapshot, others int) []models.CompetitorSnapshot {
	set := make([]models.CompetitorSnapshot, 0, others+1)
	set = append(set, models.CompetitorSnapshot{MerchantSnapshot: you, IsYou: true})

	for i := 0; i < others; i++ {
		scale := 0.5 + g.rng.Float64()*1.5
		comp := you
		comp.MerchantID = ""
		comp.RevenueCents = int64(float64(you.RevenueCents) * scale)
		comp.TransactionCount = int(float64(you.TransactionCount) * scale)
		comp.UniqueCustomers = int(float64(you.UniqueCustomers) * scale)
		comp.CashbackPaidCents = int64(float64(you.CashbackPaidCents) * scale)
		comp.CashbackPercent = math.Max(0.5, you.CashbackPercent+g.rng.NormFloat64()*1.5)
		set = append(set, models.CompetitorSnapshot{MerchantSnapshot: comp})
	}
	return models.RankCompetitors(set)
}
