package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/merchantpulse/analytics/cmd/merchant-analytics/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "merchant-analytics",
		Short: "Merchant analytics CLI",
		Long: `A command-line interface for forecasting merchant metrics, detecting
anomalies, and generating business insights from merchant snapshots.`,
		Version: "0.1.0",
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Add commands
	rootCmd.AddCommand(commands.NewForecastCmd())
	rootCmd.AddCommand(commands.NewAnomaliesCmd())
	rootCmd.AddCommand(commands.NewInsightsCmd())
	rootCmd.AddCommand(commands.NewDemoCmd())

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
