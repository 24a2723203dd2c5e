package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	seatapp "github.com/seatsync/seatsync/app"
	"github.com/seatsync/seatsync/domain/plan"
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Manage client organizations",
	Long: `Manage the client organizations whose seats are funded through a
provider's consolidated subscription.

Examples:
  seatsync orgs list prov_123
  seatsync orgs create prov_123 --name="Client A" --plan=business
  seatsync orgs set-seats org_456 5`,
}

var orgsListCmd = &cobra.Command{
	Use:   "list <provider-id>",
	Short: "List a provider's organizations",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgsList,
}

var orgsCreateCmd = &cobra.Command{
	Use:   "create <provider-id>",
	Short: "Create a client organization",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgsCreate,
}

var orgsSetSeatsCmd = &cobra.Command{
	Use:   "set-seats <org-id> <seats>",
	Short: "Set an organization's seat count and reconcile billing",
	Args:  cobra.ExactArgs(2),
	RunE:  runOrgsSetSeats,
}

var (
	orgName string
	orgPlan string
)

func init() {
	rootCmd.AddCommand(orgsCmd)

	orgsCmd.AddCommand(orgsListCmd)
	orgsCmd.AddCommand(orgsCreateCmd)
	orgsCmd.AddCommand(orgsSetSeatsCmd)

	orgsCreateCmd.Flags().StringVar(&orgName, "name", "", "organization name (required)")
	orgsCreateCmd.Flags().StringVar(&orgPlan, "plan", string(plan.TypeBusiness), "plan type")
	orgsCreateCmd.MarkFlagRequired("name")
}

func runOrgsList(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	orgs, err := app.Orgs.ListByProvider(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	if len(orgs) == 0 {
		fmt.Println("No organizations found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLAN\tSEATS")
	fmt.Fprintln(w, "--\t----\t----\t-----")

	for _, o := range orgs {
		seats := "-"
		if o.Seats != nil {
			seats = strconv.Itoa(*o.Seats)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, o.Name, o.PlanType, seats)
	}

	w.Flush()
	return nil
}

func runOrgsCreate(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	o, err := app.Provisioning.CreateOrganization(context.Background(), args[0], orgName, plan.Type(orgPlan))
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	fmt.Printf("Created organization %s with %d seat(s)\n", o.ID, o.SeatCount())
	return nil
}

func runOrgsSetSeats(cmd *cobra.Command, args []string) error {
	seats, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid seat count %q", args[1])
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	o, err := a.Orgs.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load organization: %w", err)
	}
	p, err := a.Providers.Get(ctx, o.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to load provider: %w", err)
	}

	res := a.Reconcile.ReconcileOrganizationSeats(ctx, &p, &o, seats)
	if res.Failed() {
		return fmt.Errorf("reconciliation %s: %w", res.Outcome, res.Err)
	}

	switch {
	case res.Outcome == seatapp.OutcomeUnchanged:
		fmt.Printf("Organization %s already has %d seat(s)\n", o.ID, seats)
	case res.Change.CallGateway:
		fmt.Printf("Organization %s set to %d seat(s); subscription moved %d -> %d\n",
			o.ID, seats, res.Change.SubscribedFrom, res.Change.SubscribedTo)
	default:
		fmt.Printf("Organization %s set to %d seat(s); within the seat minimum, no billing change\n",
			o.ID, seats)
	}
	return nil
}
