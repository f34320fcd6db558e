package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd fetches the master list once and reports what was loaded.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch and ingest the master stock list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := contextOrBackground(cmd.Context())
		env, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer env.close()

		cat, err := env.syncer.Sync(ctx)
		if err != nil {
			return err
		}

		env.logger.Info("Master list synced", zap.Int("items", cat.Len()))
		fmt.Printf("Loaded %d items (synced %s)\n", cat.Len(), cat.SyncedAt().Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
