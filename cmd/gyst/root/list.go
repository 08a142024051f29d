package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/ui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks with their state for the current period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.ListTasks(ctx, cfg.User)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No tasks yet. Add one with `gyst add <name>`."))
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintf(out, "%s %s %-28s %s  %s\n",
					ui.Muted.Render(shortID(t.ID)),
					ui.FrequencyTag(t.Frequency),
					t.Name,
					ui.TaskState(t.Alive, t.CompletedPeriod),
					ui.Streak(t.CurrentStreak),
				)
			}
			return nil
		},
	}
}
