package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/seatsync/seatsync/domain/plan"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Adjust provider pool seats",
	Long: `Adjust the seats a direct MSP provider allocates to itself rather
than to a client organization.

The adjustment is a delta: positive adds seats to the pool, negative
releases them.

Examples:
  seatsync pool adjust prov_123 business 3
  seatsync pool adjust prov_123 business -- -2`,
}

var poolAdjustCmd = &cobra.Command{
	Use:   "adjust <provider-id> <plan-type> <delta>",
	Short: "Adjust the provider's pool seats and reconcile billing",
	Args:  cobra.ExactArgs(3),
	RunE:  runPoolAdjust,
}

func init() {
	rootCmd.AddCommand(poolCmd)
	poolCmd.AddCommand(poolAdjustCmd)
}

func runPoolAdjust(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid seat delta %q", args[2])
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	p, err := a.Providers.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load provider: %w", err)
	}

	res := a.Reconcile.ReconcileProviderPoolSeats(ctx, &p, plan.Type(args[1]), delta)
	if res.Failed() {
		return fmt.Errorf("reconciliation %s: %w", res.Outcome, res.Err)
	}

	if res.Change.CallGateway {
		fmt.Printf("Pool adjusted by %+d seat(s); subscription moved %d -> %d\n",
			delta, res.Change.SubscribedFrom, res.Change.SubscribedTo)
	} else {
		fmt.Printf("Pool adjusted by %+d seat(s); within the seat minimum, no billing change\n", delta)
	}
	return nil
}
