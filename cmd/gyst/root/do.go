package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gyst/internal/engine"
	"gyst/internal/ui"
)

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <task>",
		Short: "Toggle a task: complete it for this period, or undo today's completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := resolveTask(ctx, svc, args[0])
			if err != nil {
				return err
			}
			res, err := svc.ToggleComplete(ctx, cfg.User, t.ID)
			if err != nil {
				return err
			}
			printToggle(cmd.OutOrStdout(), t.Name, res)
			return nil
		},
	}
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <task>",
		Short: "Undo the completion of a task for this period",
		Long: `Undo the current period's completion of a task.

This will:
- Remove the completion record
- Roll the task back to its previous completion
- Deduct the XP that was awarded
- Take back the global streak point if the period had been perfect`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := resolveTask(ctx, svc, args[0])
			if err != nil {
				return err
			}
			res, err := svc.UndoComplete(ctx, cfg.User, t.ID)
			if err != nil {
				return err
			}
			if res.Action == engine.ActionNoop {
				return fmt.Errorf("%s is not completed this period", t.Name)
			}
			printToggle(cmd.OutOrStdout(), t.Name, res)
			return nil
		},
	}
}

func printToggle(out io.Writer, name string, res *engine.ToggleResult) {
	head := ui.Good.Render(ui.IconDone + " Completed")
	if res.Action == engine.ActionUncompleted {
		head = ui.Warn.Render(ui.IconUndo + " Undone")
	}
	fmt.Fprintf(out, "%s %s %s\n", head, name, ui.Muted.Render(fmt.Sprintf("(task streak %d)", res.TaskStreak)))
	fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s", res.Stats.XP, ui.Delta(res.XPDelta))))
	fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %s", ui.Streak(res.Stats.Streak), ui.Delta(res.StreakDelta))))
}
