package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/ui"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage reminder destinations",
	}

	var platform string
	add := &cobra.Command{
		Use:   "add <token>",
		Short: "Register a reminder destination (a Telegram chat id for the telegram transport)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.RegisterToken(ctx, cfg.User, args[0], platform); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBell+" Registered"), args[0])
			return nil
		},
	}
	add.Flags().StringVar(&platform, "platform", "telegram", "Platform label")

	rm := &cobra.Command{
		Use:   "rm <token>",
		Short: "Remove a reminder destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.UnregisterToken(ctx, cfg.User, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Removed"), args[0])
			return nil
		},
	}

	ls := &cobra.Command{
		Use:   "list",
		Short: "List reminder destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			toks, err := svc.ListTokens(ctx, cfg.User)
			if err != nil {
				return err
			}
			if len(toks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(none)"))
			}
			for _, t := range toks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Token, ui.Muted.Render(t.Platform))
			}
			return nil
		},
	}

	cmd.AddCommand(add, rm, ls)
	return cmd
}
