package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gyst/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	var notifications string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if cmd.Flags().Changed("notifications") {
				on, err := parseOnOff(notifications)
				if err != nil {
					return err
				}
				if _, err := svc.UpdateSettings(ctx, cfg.User, on); err != nil {
					return err
				}
			}
			st, err := svc.GetSettings(ctx, cfg.User)
			if err != nil {
				return err
			}
			state := ui.Muted.Render("off")
			if st.Notifications {
				state = ui.Good.Render("on")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(ui.IconBell+" Daily reminder", state))
			return nil
		},
	}

	cmd.Flags().StringVar(&notifications, "notifications", "", "Daily reminder (on|off)")
	return cmd
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}
