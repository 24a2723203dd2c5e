package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seatsync/seatsync/adapters/idgen"
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage providers",
	Long: `Manage SeatSync providers.

Providers are the MSP entities that hold a consolidated subscription and
allocate seats to their client organizations.

Examples:
  seatsync providers list
  seatsync providers create --name="Acme MSP" --email=billing@acme.example
  seatsync providers subscribe prov_123 --plans=business
  seatsync providers unsubscribe prov_123`,
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all providers",
	RunE:  runProvidersList,
}

var providersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new provider",
	RunE:  runProvidersCreate,
}

var providersGetCmd = &cobra.Command{
	Use:   "get <provider-id>",
	Short: "Get provider details including per-plan seat bookkeeping",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersGet,
}

var providersSubscribeCmd = &cobra.Command{
	Use:   "subscribe <provider-id>",
	Short: "Start consolidated seat billing for a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersSubscribe,
}

var providersUnsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <provider-id>",
	Short: "Cancel a provider's consolidated subscription",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersUnsubscribe,
}

var (
	providerName  string
	providerEmail string
	providerType  string
	providerPlans string
)

func init() {
	rootCmd.AddCommand(providersCmd)

	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersCreateCmd)
	providersCmd.AddCommand(providersGetCmd)
	providersCmd.AddCommand(providersSubscribeCmd)
	providersCmd.AddCommand(providersUnsubscribeCmd)

	providersCreateCmd.Flags().StringVar(&providerName, "name", "", "provider name (required)")
	providersCreateCmd.Flags().StringVar(&providerEmail, "email", "", "billing email (required)")
	providersCreateCmd.Flags().StringVar(&providerType, "type", string(provider.TypeDirectMSP), "provider type: direct_msp or reseller")
	providersCreateCmd.MarkFlagRequired("name")
	providersCreateCmd.MarkFlagRequired("email")

	providersSubscribeCmd.Flags().StringVar(&providerPlans, "plans", "business", "comma-separated plan types to subscribe")
}

func runProvidersList(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	providers, err := app.Providers.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list providers: %w", err)
	}

	if len(providers) == 0 {
		fmt.Println("No providers found.")
		fmt.Println()
		fmt.Println("Create one with: seatsync providers create --name=\"Acme MSP\" --email=billing@acme.example")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tSUBSCRIBED")
	fmt.Fprintln(w, "--\t----\t----\t------\t----------")

	for _, p := range providers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.Name, p.Type, p.Status, p.Subscribed())
	}

	w.Flush()
	return nil
}

func runProvidersCreate(cmd *cobra.Command, args []string) error {
	t := provider.Type(providerType)
	if t != provider.TypeDirectMSP && t != provider.TypeReseller {
		return fmt.Errorf("invalid provider type %q: must be direct_msp or reseller", providerType)
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	gen := idgen.UUID{}
	p := provider.Provider{
		ID:     "prov_" + gen.New(),
		Name:   providerName,
		Email:  providerEmail,
		Type:   t,
		Status: provider.StatusActive,
	}

	if err := app.Providers.Create(context.Background(), p); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	fmt.Printf("Created provider %s\n", p.ID)
	return nil
}

func runProvidersGet(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	p, err := app.Providers.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load provider: %w", err)
	}

	fmt.Printf("ID:            %s\n", p.ID)
	fmt.Printf("Name:          %s\n", p.Name)
	fmt.Printf("Email:         %s\n", p.Email)
	fmt.Printf("Type:          %s\n", p.Type)
	fmt.Printf("Status:        %s\n", p.Status)
	fmt.Printf("Customer:      %s\n", p.GatewayCustomerID)
	fmt.Printf("Subscription:  %s\n", p.GatewaySubscriptionID)

	plans, err := app.Plans.GetByProvider(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load provider plans: %w", err)
	}
	if len(plans) == 0 {
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAN\tMINIMUM\tALLOCATED\tPURCHASED\tPOOL")
	for _, pp := range plans {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			pp.PlanType, pp.SeatMinimum, pp.AllocatedSeats, pp.PurchasedSeats, pp.PoolSeats)
	}
	w.Flush()
	return nil
}

func runProvidersSubscribe(cmd *cobra.Command, args []string) error {
	var planTypes []plan.Type
	for _, s := range strings.Split(providerPlans, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		planTypes = append(planTypes, plan.Type(s))
	}

	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Provisioning.StartConsolidatedBilling(context.Background(), args[0], planTypes); err != nil {
		return fmt.Errorf("failed to start consolidated billing: %w", err)
	}

	fmt.Printf("Consolidated billing started for %s (%s)\n", args[0], providerPlans)
	return nil
}

func runProvidersUnsubscribe(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Provisioning.StopConsolidatedBilling(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to stop consolidated billing: %w", err)
	}

	fmt.Printf("Consolidated billing stopped for %s\n", args[0])
	return nil
}
