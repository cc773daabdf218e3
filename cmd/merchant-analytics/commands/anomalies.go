package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/merchantpulse/analytics/internal/anomaly"
	"github.com/merchantpulse/analytics/pkg/models"
)

type AnomaliesOptions struct {
	Mode       string
	InputFile  string
	Date       string
	OutputFile string
}

// historyInput is the input document for history mode.
type historyInput struct {
	MerchantID string                          `json:"merchant_id"`
	Histories  map[models.MetricName][]float64 `json:"histories"`
}

// snapshotInput is the input document for snapshot mode.
type snapshotInput struct {
	Current    models.MerchantSnapshot   `json:"current"`
	Historical []models.MerchantSnapshot `json:"historical"`
}

func NewAnomaliesCmd() *cobra.Command {
	opts := &AnomaliesOptions{}

	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Detect anomalies in merchant metrics",
		Long: `Detect statistically unusual metric values. History mode scores the
latest point of each metric history against its own past; snapshot mode
scores a daily snapshot against day-of-week-aligned baselines.`,
		Example: `  # Score metric histories
  merchant-analytics anomalies --mode history --input histories.json

  # Score a daily snapshot against prior snapshots
  merchant-analytics anomalies --mode snapshot --input snapshots.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnomalies(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "history", "Detection mode (history, snapshot)")
	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input JSON file (required)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Detection date as YYYY-MM-DD (history mode, default today)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runAnomalies(cmd *cobra.Command, opts *AnomaliesOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	var anomalies []models.Anomaly
	switch opts.Mode {
	case "history":
		var input historyInput
		if err := readJSONFile(opts.InputFile, &input); err != nil {
			return err
		}
		at := time.Now().UTC().Truncate(24 * time.Hour)
		if opts.Date != "" {
			at, err = time.Parse("2006-01-02", opts.Date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", opts.Date, err)
			}
		}
		detector := anomaly.NewHistoryDetector(cfg.Anomaly.History, logger)
		anomalies = detector.Detect(input.MerchantID, input.Histories, at)
	case "snapshot":
		var input snapshotInput
		if err := readJSONFile(opts.InputFile, &input); err != nil {
			return err
		}
		detector := anomaly.NewSnapshotDetector(cfg.Anomaly.Snapshot, logger)
		// The snapshot's own day: PeriodEnd is the next midnight and would
		// shift the day-of-week baseline by one weekday.
		anomalies = detector.Detect(input.Current, input.Historical, input.Current.PeriodStart)
	default:
		return fmt.Errorf("unknown mode %q, expected history or snapshot", opts.Mode)
	}

	return writeJSON(opts.OutputFile, anomalies)
}
