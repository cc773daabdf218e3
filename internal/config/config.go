// Package config loads the analytics thresholds from an optional YAML file
// and MERCHANT_ANALYTICS_* environment variables. Every value has a default
// matching the statistical constants, so an empty config is fully usable.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/merchantpulse/analytics/internal/anomaly"
	"github.com/merchantpulse/analytics/internal/forecast"
	"github.com/merchantpulse/analytics/internal/insights"
)

// Config aggregates the engine configurations.
type Config struct {
	Anomaly  AnomalyConfig   `mapstructure:"anomaly"`
	Forecast forecast.Config `mapstructure:"forecast"`
	Insights insights.Config `mapstructure:"insights"`
}

// AnomalyConfig groups the two detector configurations.
type AnomalyConfig struct {
	History  anomaly.HistoryConfig  `mapstructure:"history"`
	Snapshot anomaly.SnapshotConfig `mapstructure:"snapshot"`
}

// Load reads configuration from the given file path (optional) and the
// environment, applying defaults for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MERCHANT_ANALYTICS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with every default applied.
func Default() *Config {
	return &Config{
		Anomaly: AnomalyConfig{
			History:  anomaly.DefaultHistoryConfig(),
			Snapshot: anomaly.DefaultSnapshotConfig(),
		},
		Forecast: forecast.DefaultConfig(),
		Insights: insights.DefaultConfig(),
	}
}

func setDefaults(v *viper.Viper) {
	h := anomaly.DefaultHistoryConfig()
	v.SetDefault("anomaly.history.min_data_points", h.MinDataPoints)
	v.SetDefault("anomaly.history.z_threshold", h.ZThreshold)
	v.SetDefault("anomaly.history.trend_change_percent", h.TrendChangePercent)

	s := anomaly.DefaultSnapshotConfig()
	v.SetDefault("anomaly.snapshot.min_snapshots", s.MinSnapshots)
	v.SetDefault("anomaly.snapshot.same_day_min_points", s.SameDayMinPoints)
	v.SetDefault("anomaly.snapshot.z_threshold", s.ZThreshold)

	f := forecast.DefaultConfig()
	v.SetDefault("forecast.min_history_points", f.MinHistoryPoints)
	v.SetDefault("forecast.confidence_level", f.ConfidenceLevel)

	i := insights.DefaultConfig()
	v.SetDefault("insights.max_results", i.MaxResults)
	v.SetDefault("insights.trend_window_days", i.TrendWindowDays)
	v.SetDefault("insights.transaction_deviation_pct", i.TransactionDeviationPct)
	v.SetDefault("insights.avg_txn_deviation_pct", i.AvgTxnDeviationPct)
	v.SetDefault("insights.top_rank_threshold", i.TopRankThreshold)
	v.SetDefault("insights.bottom_percentile", i.BottomPercentile)
	v.SetDefault("insights.cashback_rate_delta_pts", i.CashbackRateDeltaPts)
	v.SetDefault("insights.roi_warn_below", i.ROIWarnBelow)
	v.SetDefault("insights.roi_opportunity_above", i.ROIOpportunityAbove)
	v.SetDefault("insights.cac_rise_pct", i.CACRisePct)
	v.SetDefault("insights.repeat_rate_floor", i.RepeatRateFloor)
	v.SetDefault("insights.untapped_gap_pct", i.UntappedGapPct)
	v.SetDefault("insights.cashback_revenue_risk_pct", i.CashbackRevenueRiskPct)
}
