package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seatsync/seatsync/bootstrap"
	"github.com/seatsync/seatsync/config"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seatsync",
	Short: "Consolidated seat billing reconciler for MSP providers",
	Long: `SeatSync keeps the seats a provider has purchased on its consolidated
subscription consistent with the seats allocated across its client
organizations and its own pool.

Quick start:
  seatsync migrate   # Create the database schema
  seatsync serve     # Start the reconciliation service

Management:
  seatsync providers # Manage providers and their subscriptions
  seatsync orgs      # Manage client organizations and their seats
  seatsync pool      # Adjust provider pool seats
  seatsync validate  # Validate configuration`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "seatsync.yaml", "config file path")
}

// loadApp builds a fully wired application for one-shot CLI commands.
func loadApp() (*bootstrap.App, error) {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return bootstrap.New(cfg)
}
