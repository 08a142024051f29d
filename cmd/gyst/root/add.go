package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/engine"
	"gyst/internal/ui"
)

func newAddCmd() *cobra.Command {
	var freq string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recurring task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			res, err := svc.CreateTask(ctx, cfg.User, engine.CreateTaskInput{Name: args[0], Frequency: freq})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s %s\n", ui.Good.Render(ui.IconPlus+" Added"), ui.Muted.Render(shortID(res.Task.ID)), res.Task.Name, ui.FrequencyTag(res.Task.Frequency))
			if res.StreakRevoked {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Today's streak point is on hold until this task is done"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&freq, "freq", "f", "daily", "Frequency (daily|weekly|monthly)")
	return cmd
}
