package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/ui"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the user account",
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete every task, record, stat, setting and token of the user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteAccount(ctx, cfg.User); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconTrash+" Deleted account"), cfg.User)
			return nil
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")

	cmd.AddCommand(del)
	return cmd
}
