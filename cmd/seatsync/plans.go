package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Show the configured plan catalog",
	RunE:  runPlans,
}

func init() {
	rootCmd.AddCommand(plansCmd)
}

func runPlans(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	descs := a.Catalog.List()
	if len(descs) == 0 {
		fmt.Println("No plans configured.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tSEAT PRICE\tMONTHLY (CENTS)\tCONSOLIDATED")
	for _, d := range descs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\n",
			d.Type, d.Name, d.SeatPriceID, d.SeatPriceMonthly, d.ConsolidatedBilling)
	}
	w.Flush()
	return nil
}
