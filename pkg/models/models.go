package models

import "time"

// MetricName identifies one of the tracked merchant metrics.
type MetricName string

const (
	MetricTransactions   MetricName = "transactions"
	MetricRevenue        MetricName = "revenue"
	MetricCustomers      MetricName = "customers"
	MetricCashbackPaid   MetricName = "cashback_paid"
	MetricAvgTransaction MetricName = "avg_transaction"
	MetricCashbackRate   MetricName = "cashback_percent"
)

// CoreMetrics lists the metrics tracked per merchant, in reporting order.
// Iteration over metric maps goes through this slice so output ordering is
// stable across runs.
var CoreMetrics = []MetricName{
	MetricTransactions,
	MetricRevenue,
	MetricCustomers,
	MetricCashbackPaid,
	MetricAvgTransaction,
}

// MetricPoint is a single dated observation of a metric.
type MetricPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MetricSeries is an ordered sequence of daily observations for one metric.
// Points are chronological with no gaps; every consumer (moving averages,
// day-of-week alignment, trend extrapolation) relies on that invariant.
type MetricSeries struct {
	Metric MetricName    `json:"metric"`
	Points []MetricPoint `json:"points"`
}

// Len returns the number of points in the series.
func (s MetricSeries) Len() int { return len(s.Points) }

// Values returns the value column of the series.
func (s MetricSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// LastDate returns the date of the final point, or the zero time for an
// empty series.
func (s MetricSeries) LastDate() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

// Decomposition splits a value series into trend, weekly seasonal, and
// residual components, index-aligned 1:1 with the input.
// values[i] == Trend[i] + Seasonal[i] + Residual[i] for all i.
type Decomposition struct {
	Trend             []float64 `json:"trend"`
	Seasonal          []float64 `json:"seasonal"`
	Residual          []float64 `json:"residual"`
	SeasonalityPeriod int       `json:"seasonality_period"`
}

// ConfidenceInterval carries the per-step lower and upper forecast bounds.
type ConfidenceInterval struct {
	Lower []float64 `json:"lower"`
	Upper []float64 `json:"upper"`
}

// AccuracyMetrics reports in-sample fit quality for a forecast.
type AccuracyMetrics struct {
	MAPE float64 `json:"mape"` // Mean Absolute Percentage Error
	RMSE float64 `json:"rmse"` // Root Mean Square Error
}

// Trend directions reported on a Forecast.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Forecast is the result of projecting a metric series forward.
type Forecast struct {
	Metric             MetricName         `json:"metric"`
	Historical         MetricSeries       `json:"historical"`
	Forecast           MetricSeries       `json:"forecast"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	ConfidenceLevel    float64            `json:"confidence_level"`
	Accuracy           AccuracyMetrics    `json:"accuracy_metrics"`
	TrendDirection     string             `json:"trend_direction"`
	Methodology        string             `json:"methodology"`
}
