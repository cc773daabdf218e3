package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.yaml")
	content := []byte(`
anomaly:
  history:
    z_threshold: 2.5
forecast:
  confidence_level: 0.99
insights:
  max_results: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Anomaly.History.ZThreshold)
	assert.Equal(t, 0.99, cfg.Forecast.ConfidenceLevel)
	assert.Equal(t, 5, cfg.Insights.MaxResults)

	// Unset keys keep their defaults.
	assert.Equal(t, Default().Anomaly.History.MinDataPoints, cfg.Anomaly.History.MinDataPoints)
	assert.Equal(t, Default().Anomaly.Snapshot, cfg.Anomaly.Snapshot)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/analytics.yaml")
	assert.Error(t, err)
}
