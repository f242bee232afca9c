package main

import (
	"os"

	"github.com/spf13/cobra"

	configCmd "tastehub/internal/cli/config"
	"tastehub/internal/cli/health"
	"tastehub/internal/cli/rankings"
)

var rootCmd = &cobra.Command{
	Use:   "tastehubctl",
	Short: "TasteHub operations CLI",
	Long:  "Operational tooling for the TasteHub catalogue backend: ranking snapshot loading, configuration inspection and health checks",
}

func init() {
	rootCmd.AddCommand(configCmd.ConfigCmd)
	rootCmd.AddCommand(rankings.RankingsCmd)
	rootCmd.AddCommand(health.HealthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
