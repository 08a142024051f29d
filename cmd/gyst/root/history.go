package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [task]",
		Short: "Show completion history, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			names := map[string]string{}
			tasks, err := svc.ListTasks(ctx, cfg.User)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				names[t.ID] = t.Name
			}

			taskID := ""
			if len(args) == 1 {
				t, err := resolveTask(ctx, svc, args[0])
				if err != nil {
					return err
				}
				taskID = t.ID
			}
			recs, err := svc.History(ctx, cfg.User, taskID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				return nil
			}
			for i, r := range recs {
				if limit > 0 && i >= limit {
					fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("… %d more", len(recs)-limit)))
					break
				}
				name, ok := names[r.ParentID]
				if !ok {
					name = ui.Muted.Render(shortID(r.ParentID) + " (deleted)")
				}
				detail := fmt.Sprintf("streak %d", r.DaysCompleted)
				if r.XPAwarded >= 0 {
					detail += fmt.Sprintf(", +%d XP", r.XPAwarded)
				}
				fmt.Fprintf(out, "%s  %s  %s\n",
					r.CompletedAt.In(svc.Location()).Format("2006-01-02 15:04"),
					name,
					ui.Muted.Render(detail),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max records to show (0 = all)")
	return cmd
}
