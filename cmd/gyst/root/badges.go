package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show earned and locked badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			badges, err := svc.Badges(ctx, cfg.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Badges"))
			for _, b := range badges {
				if b.Earned {
					fmt.Fprintf(out, "%s %s %s\n", b.Icon, ui.Gold.Render(b.Name), ui.Muted.Render(b.Description))
				} else {
					fmt.Fprintf(out, "🔒 %s %s\n", ui.Muted.Render(b.Name), ui.Muted.Render(b.Description))
				}
			}
			return nil
		},
	}
}
