package cmd

import (
	"context"
	"fmt"

	"stock-matcher/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage, the master list and the state database",
	Long:  `Checks the bucket folder structure, the master list object and the state tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// catalogCheckCmd represents the integrity catalog command
var catalogCheckCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check the master list source",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the state database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, catalogCheckCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runCatalog, runSchema bool) error {
	ctx = contextOrBackground(ctx)
	env, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer env.close()
	logg := env.logger

	svc := integrity.NewService(env.storage, env.db, env.catalogs, integrity.Options{
		Bucket:        env.cfg.Storage.Bucket,
		Prefixes:      bucketPrefixes(env.cfg),
		CatalogObject: catalogObject(env.cfg),
	}, logg)

	if runStructure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if runCatalog {
		logg.Info("Checking master list...")
		if err := env.syncCatalog(ctx); err != nil {
			logg.Warn("Master list sync failed", zap.Error(err))
		}
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			return fmt.Errorf("catalog check failed: %w", err)
		}

		fields := []zap.Field{zap.String("source", report.Source), zap.Bool("loaded", report.Loaded), zap.Int("items", report.ItemCount)}
		if report.ObjectPresent != nil && !*report.ObjectPresent {
			logg.Warn("Master list object is missing", fields...)
		} else {
			logg.Info("Master list checked", fields...)
		}
	}

	if runSchema {
		logg.Info("Checking state schema integrity...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("State schema matches expected definition.")
		} else {
			logg.Warn("State schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
