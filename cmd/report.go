package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stock-matcher/core/export"
	"stock-matcher/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportCSVPath string
	reportStore   bool
)

// reportCmd reconciles a rack, or every rack, against the master list.
var reportCmd = &cobra.Command{
	Use:   "report [rack]",
	Short: "Reconcile scans against the master list",
	Long: `Reconciles one rack against the items labelled with it, or every rack against
the whole master list when no rack is given.

Examples:
  # Store-wide report
  report
  report --store

  # One rack, with the discrepancies written to a CSV file
  report A1 --csv discrepancies.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(func(ctx context.Context, env *environment, args []string) error {
		if err := env.syncCatalog(ctx); err != nil {
			return err
		}

		scope := reconcile.StoreWide()
		if len(args) == 1 && !reportStore {
			scope = reconcile.SingleRack(args[0])
		}

		report, err := env.session.Report(ctx, scope)
		if err != nil {
			return err
		}
		printReport(env.logger, report)

		if reportCSVPath == "" {
			return nil
		}
		return writeDiscrepancyFile(env.logger, report, scope)
	}),
}

func init() {
	reportCmd.Flags().BoolVar(&reportStore, "store", false, "Reconcile every rack even when a rack is given")
	reportCmd.Flags().StringVar(&reportCSVPath, "csv", "", "Write the discrepancies to this file (a directory picks the default file name)")
	RootCmd.AddCommand(reportCmd)
}

func writeDiscrepancyFile(l *zap.Logger, report *reconcile.Report, scope reconcile.Scope) error {
	var buf bytes.Buffer
	if err := export.WriteDiscrepancyCSV(&buf, report); err != nil {
		return err
	}

	target := reportCSVPath
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, export.DiscrepancyFileName(scope.ID(), time.Now()))
	}
	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save csv: %w", err)
	}
	l.Info("Discrepancy CSV saved", zap.String("file", target), zap.Int("lines", len(report.Discrepancies())))
	return nil
}

// printReport prints the summary line and every non-matched line.
func printReport(l *zap.Logger, report *reconcile.Report) {
	s := report.Summary()
	l.Info("Reconciliation report",
		zap.String("scope", report.Scope),
		zap.Int("matched", s.Matched),
		zap.Int("mismatched", s.Mismatched),
		zap.Int("missing", s.Missing),
		zap.Int("extra", s.Extra),
	)

	fmt.Printf("\n=== Report: %s ===\n", report.Scope)
	fmt.Printf("Matched: %d   Mismatched: %d   Missing: %d   Extra: %d\n\n", s.Matched, s.Mismatched, s.Missing, s.Extra)
	for _, line := range report.Discrepancies() {
		fmt.Printf("%-11s %-8s %-30s %-12s %s\n", line.Status, line.Barcode, line.Name, line.Rack, line.Details)
	}
	if len(report.Discrepancies()) == 0 {
		fmt.Println("Everything is a perfect match!")
	}
}
