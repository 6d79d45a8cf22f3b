package main

import (
	"fmt"
	"os"

	"blanket_warmer/internal/config"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// @title        Blanket warmer dashboard API
// @version      1.0
// @description  Page interaction and readings for the blanket warmer dashboard.
// @BasePath     /

// Loaded once by the root command before any subcommand runs.
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blanketd",
	Short: "Blanket warmer dashboard",
	Long: `blanketd serves the single-page control and monitoring dashboard of
the blanket warmer: blower and setpoint sliders, temperature gauges, the
history chart and the power toggle.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			loaded.LogLevel = lvl
		}
		cfg = loaded
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./configs/config.yml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}
