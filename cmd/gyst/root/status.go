package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/engine"
	"gyst/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show XP, level and the global streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.RefreshStats(ctx, cfg.User)
			if err != nil {
				return err
			}
			tasks, err := svc.ListTasks(ctx, cfg.User)
			if err != nil {
				return err
			}
			p := engine.ProgressForXP(st.XP)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status"))
			fmt.Fprintln(out, ui.LabelValue("User", cfg.User))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s %s", st.XP, ui.ProgressBar(p.Current, p.Needed, 20), ui.Muted.Render(fmt.Sprintf("(%d to next level)", p.Needed-p.Current)))))
			fmt.Fprintln(out, ui.LabelValue("Streak", ui.Streak(st.Streak)))
			if !st.LastStreakDate.IsZero() {
				fmt.Fprintln(out, ui.LabelValue("Last streak day", st.LastStreakDate.In(svc.Location()).Format("2006-01-02")))
			}
			fmt.Fprintln(out, "")

			done, lapsed := 0, 0
			for _, t := range tasks {
				if t.CompletedPeriod {
					done++
				}
				if !t.Alive {
					lapsed++
				}
			}
			fmt.Fprintln(out, ui.H2.Render("📋 This period"))
			fmt.Fprintf(out, "- %s %d/%d\n", ui.Key.Render("Done:"), done, len(tasks))
			if lapsed > 0 {
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Lapsed:"), ui.Bad.Render(fmt.Sprint(lapsed)))
			}
			if len(tasks) > 0 && done == len(tasks) {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Perfect period"))
			}
			return nil
		},
	}
}
