package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seatsync/seatsync/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate the configuration file and print a summary.

Examples:
  seatsync validate
  seatsync validate --config /etc/seatsync/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	fmt.Println("Configuration valid")
	fmt.Printf("  Database:       %s\n", cfg.Database.DSN)
	fmt.Printf("  Billing mode:   %s\n", cfg.Billing.Mode)
	fmt.Printf("  Email mode:     %s\n", cfg.Email.Mode)
	fmt.Printf("  Seat minimum:   %d\n", cfg.Seats.DefaultSeatMinimum)
	fmt.Printf("  Plans:          %d\n", len(cfg.Plans))
	for _, p := range cfg.Plans {
		billing := "per-org"
		if p.ConsolidatedBilling {
			billing = "consolidated"
		}
		fmt.Printf("    - %s (%s, %s)\n", p.Type, p.Name, billing)
	}
	return nil
}
