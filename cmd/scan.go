package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanCmd records barcodes into a rack without going through the API.
var scanCmd = &cobra.Command{
	Use:   "scan [rack] [barcode...]",
	Short: "Record one scan per barcode in a rack",
	Long: `Records each barcode as one scan in the rack. The master list is synced first.
Invalid barcodes are reported and skipped; the rest are still recorded.

Examples:
  scan A1 T00001 T00001 T00002`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := contextOrBackground(cmd.Context())
		env, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer env.close()

		if err := env.syncCatalog(ctx); err != nil {
			return err
		}

		rack, codes := args[0], args[1:]
		failed := 0
		for _, code := range codes {
			rec, err := env.session.Scan(ctx, rack, code)
			if err != nil {
				failed++
				env.logger.Warn("Scan rejected", zap.String("barcode", code), zap.Error(err))
				continue
			}
			fmt.Printf("%-8s %-30s x%d\n", rec.Barcode, rec.Name, rec.Quantity)
		}

		if err := env.session.Persist(ctx); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scans rejected", failed, len(codes))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
