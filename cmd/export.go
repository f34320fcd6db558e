package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"stock-matcher/core/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOut     string
	exportPublish bool
)

// exportCmd renders the session workbook.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export master stock, scanned data and the comparison as an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE: withSession(func(ctx context.Context, env *environment, args []string) error {
		if err := env.syncCatalog(ctx); err != nil {
			return err
		}

		sheets, err := env.session.WorkbookSheets()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := export.WriteWorkbook(&buf, sheets); err != nil {
			return err
		}

		name := export.WorkbookFileName(time.Now())
		if exportPublish {
			publisher := export.NewPublisher(env.storage, env.cfg.Storage.Bucket, env.cfg.Server.ExportPrefix)
			object, err := publisher.Publish(ctx, name, export.WorkbookContentType, buf.Bytes())
			if err != nil {
				return err
			}
			env.logger.Info("Workbook published", zap.String("bucket", env.cfg.Storage.Bucket), zap.String("object", object))
			return nil
		}

		target := exportOut
		if target == "" {
			target = name
		}
		if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to save workbook: %w", err)
		}
		env.logger.Info("Workbook saved", zap.String("file", target), zap.Int("bytes", buf.Len()))
		return nil
	}),
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default Store-Report-<date>.xlsx)")
	exportCmd.Flags().BoolVar(&exportPublish, "publish", false, "Upload to the storage bucket instead of writing a file")
	RootCmd.AddCommand(exportCmd)
}
