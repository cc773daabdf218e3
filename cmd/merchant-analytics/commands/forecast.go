package commands

import (
	"github.com/spf13/cobra"

	"github.com/merchantpulse/analytics/internal/forecast"
	"github.com/merchantpulse/analytics/pkg/models"
)

type ForecastOptions struct {
	InputFile  string
	DaysAhead  int
	OutputFile string
}

func NewForecastCmd() *cobra.Command {
	opts := &ForecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast a merchant metric series",
		Long: `Forecast a daily merchant metric series forward using time series
decomposition with trend extrapolation and seasonal reapplication.`,
		Example: `  # Forecast the next 7 days from a series file
  merchant-analytics forecast --input transactions.json

  # Longer horizon, written to a file
  merchant-analytics forecast --input revenue.json --days 30 --output forecast.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input metric series JSON file (required)")
	cmd.Flags().IntVar(&opts.DaysAhead, "days", 7, "Number of days to forecast")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runForecast(cmd *cobra.Command, opts *ForecastOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	var series models.MetricSeries
	if err := readJSONFile(opts.InputFile, &series); err != nil {
		return err
	}

	forecaster := forecast.New(cfg.Forecast, logger)
	result, err := forecaster.Forecast(series, opts.DaysAhead)
	if err != nil {
		return err
	}
	return writeJSON(opts.OutputFile, result)
}
