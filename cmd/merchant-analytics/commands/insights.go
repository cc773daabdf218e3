package commands

import (
	"github.com/spf13/cobra"

	"github.com/merchantpulse/analytics/internal/insights"
	"github.com/merchantpulse/analytics/pkg/models"
)

type InsightsOptions struct {
	InputFile       string
	CompetitorsFile string
	OutputFile      string
}

// insightsInput is the input document for insight generation.
type insightsInput struct {
	Current     models.MerchantSnapshot     `json:"current"`
	Historical  []models.MerchantSnapshot   `json:"historical"`
	Competitors []models.CompetitorSnapshot `json:"competitors"`
}

func NewInsightsCmd() *cobra.Command {
	opts := &InsightsOptions{}

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate business insights from merchant snapshots",
		Long: `Generate ranked business insights by running trend, competitive,
efficiency, opportunity, and risk rules over merchant snapshots.`,
		Example: `  # Generate insights from a snapshot document
  merchant-analytics insights --input merchant.json

  # Competitor comparison set in a separate file
  merchant-analytics insights --input merchant.json --competitors market.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsights(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input JSON file with current, historical, and competitor snapshots (required)")
	cmd.Flags().StringVar(&opts.CompetitorsFile, "competitors", "", "Competitor snapshots JSON file (overrides the input document's set)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runInsights(cmd *cobra.Command, opts *InsightsOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	var input insightsInput
	if err := readJSONFile(opts.InputFile, &input); err != nil {
		return err
	}
	if opts.CompetitorsFile != "" {
		if err := readJSONFile(opts.CompetitorsFile, &input.Competitors); err != nil {
			return err
		}
	}

	engine := insights.NewEngine(cfg.Insights, logger)
	result := engine.Detect(input.Current, input.Historical, input.Competitors)
	return writeJSON(opts.OutputFile, result)
}
