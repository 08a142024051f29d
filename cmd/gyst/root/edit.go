package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/engine"
	"gyst/internal/ui"
)

func newEditCmd() *cobra.Command {
	var name, freq string

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Rename a task or change its frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in engine.UpdateTaskInput
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("freq") {
				in.Frequency = &freq
			}
			if in.Name == nil && in.Frequency == nil {
				return errors.New("nothing to change: pass --name and/or --freq")
			}

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
			updated, err := svc.UpdateTask(ctx, cfg.User, t.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render("Updated"), ui.Muted.Render(shortID(updated.ID)), updated.Name, ui.FrequencyTag(updated.Frequency))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&freq, "freq", "f", "", "New frequency (daily|weekly|monthly)")
	return cmd
}
