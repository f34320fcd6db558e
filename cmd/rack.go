package cmd

import (
	"context"
	"fmt"
	"strconv"

	"stock-matcher/core/ledger"

	"github.com/spf13/cobra"
)

// rackCmd is the parent command for rack management.
var rackCmd = &cobra.Command{
	Use:   "rack",
	Short: "List, inspect and edit rack ledgers",
}

var rackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every rack with its item count and total units",
	Args:  cobra.NoArgs,
	RunE: withSession(func(ctx context.Context, env *environment, args []string) error {
		summaries := env.session.Racks().List()
		if len(summaries) == 0 {
			fmt.Println("No racks have been scanned yet.")
			return nil
		}
		fmt.Printf("%-20s %8s %8s\n", "RACK", "ITEMS", "UNITS")
		for _, s := range summaries {
			fmt.Printf("%-20s %8d %8d\n", s.RackID, s.ItemCount, s.TotalQuantity)
		}
		return nil
	}),
}

var rackShowCmd = &cobra.Command{
	Use:   "show [rack]",
	Short: "Show a rack's records, most recently scanned first",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(ctx context.Context, env *environment, args []string) error {
		id := ledger.NormalizeRackID(args[0])
		l, ok := env.session.Racks().Ledger(id)
		if !ok {
			return fmt.Errorf("rack %s: %w", id, ledger.ErrNotFound)
		}

		fmt.Printf("\n--- Rack %s ---\n", id)
		fmt.Printf("Items: %d   Units: %d\n\n", l.ItemCount(), l.TotalQuantity())
		for _, rec := range l.Records() {
			fmt.Printf("%-8s %-30s x%-4d %s\n", rec.Barcode, rec.Name, rec.Quantity, rec.LastScannedAt.Local().Format("2006-01-02 15:04:05"))
		}
		fmt.Println("-----------------------------")
		return nil
	}),
}

var rackRenameCmd = &cobra.Command{
	Use:   "rename [rack] [new-name]",
	Short: "Rename a rack",
	Args:  cobra.ExactArgs(2),
	RunE: withSavedSession(func(ctx context.Context, env *environment, args []string) error {
		return env.session.Rename(ctx, args[0], args[1])
	}),
}

var rackDeleteCmd = &cobra.Command{
	Use:   "delete [rack]",
	Short: "Delete a rack and its records",
	Args:  cobra.ExactArgs(1),
	RunE: withSavedSession(func(ctx context.Context, env *environment, args []string) error {
		return env.session.DeleteRack(ctx, args[0])
	}),
}

var rackAdjustCmd = &cobra.Command{
	Use:   "adjust [rack] [barcode] [delta]",
	Short: "Add or subtract units; the record is removed at zero",
	Args:  cobra.ExactArgs(3),
	RunE: withSavedSession(func(ctx context.Context, env *environment, args []string) error {
		delta, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: delta must be an integer", ledger.ErrInvalidArgument)
		}
		return env.session.Adjust(ctx, args[0], args[1], delta)
	}),
}

var rackSetCmd = &cobra.Command{
	Use:   "set [rack] [barcode] [quantity]",
	Short: "Set a record's quantity (at least 1)",
	Args:  cobra.ExactArgs(3),
	RunE: withSavedSession(func(ctx context.Context, env *environment, args []string) error {
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: quantity must be an integer", ledger.ErrInvalidArgument)
		}
		return env.session.SetQuantity(ctx, args[0], args[1], qty)
	}),
}

var rackRemoveCmd = &cobra.Command{
	Use:   "remove [rack] [barcode]",
	Short: "Remove a record from a rack",
	Args:  cobra.ExactArgs(2),
	RunE: withSavedSession(func(ctx context.Context, env *environment, args []string) error {
		return env.session.Remove(ctx, args[0], args[1])
	}),
}

func init() {
	rackCmd.AddCommand(rackListCmd, rackShowCmd, rackRenameCmd, rackDeleteCmd, rackAdjustCmd, rackSetCmd, rackRemoveCmd)
	RootCmd.AddCommand(rackCmd)
}

// withSession bootstraps the environment around a command body.
func withSession(run func(ctx context.Context, env *environment, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := contextOrBackground(cmd.Context())
		env, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer env.close()
		return run(ctx, env, args)
	}
}

// withSavedSession is withSession for commands that change the ledgers. The
// session only logs failed saves, so the final save here reports them before
// the process exits.
func withSavedSession(run func(ctx context.Context, env *environment, args []string) error) func(*cobra.Command, []string) error {
	return withSession(func(ctx context.Context, env *environment, args []string) error {
		if err := run(ctx, env, args); err != nil {
			return err
		}
		return env.session.Persist(ctx)
	})
}
