package cmd

import (
	"context"
	"fmt"

	"stock-matcher/core/reconcile"
	"stock-matcher/feature/items"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// itemCmd represents the top-level item command
var itemCmd = &cobra.Command{
	Use:   "item [barcode]",
	Short: "View where a barcode is expected and where it was scanned",
	Long:  `Traces a barcode through the master list and every rack and compares the totals.`,
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(ctx context.Context, env *environment, args []string) error {
		if err := env.syncCatalog(ctx); err != nil {
			return err
		}

		env.logger.Info("Checking item...", zap.String("barcode", args[0]))
		report, err := items.NewService(env.session, env.logger).Detail(args[0])
		if err != nil {
			return err
		}

		// Pretty Console Output
		fmt.Println("\n--- Item Detail View ---")
		fmt.Printf("Barcode:        %s\n", report.Barcode)
		fmt.Printf("Name:           %s\n", report.Name)
		fmt.Printf("In Master List: %v\n", report.InCatalog)
		if report.InCatalog {
			fmt.Printf("Expected Rack:  %s\n", report.ExpectedRack)
			fmt.Printf("Expected Qty:   %d\n", report.ExpectedQty)
		}
		fmt.Printf("Scanned Qty:    %d\n", report.ScannedQty)
		fmt.Println("-----------------------------")
		for _, rc := range report.Racks {
			fmt.Printf("  %-20s x%d\n", rc.RackID, rc.Quantity)
		}

		statusColor := "\033[32m" // Green
		switch report.Status {
		case reconcile.StatusMissing, reconcile.StatusUnlisted:
			statusColor = "\033[31m" // Red
		case reconcile.StatusMismatched, reconcile.StatusExtra:
			statusColor = "\033[33m" // Yellow
		}
		resetColor := "\033[0m"

		fmt.Printf("Status:         %s%s%s\n", statusColor, report.Status, resetColor)

		if len(report.Notes) > 0 {
			fmt.Println("\nNotes:")
			for _, n := range report.Notes {
				fmt.Printf("- %s\n", n)
			}
		}
		fmt.Println("-----------------------------")
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(itemCmd)
}
