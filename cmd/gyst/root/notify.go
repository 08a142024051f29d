package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gyst/internal/notify"
	"gyst/internal/storage"
	"gyst/internal/ui"
)

func newSender() (notify.Sender, error) {
	switch cfg.Notify.Transport {
	case "telegram":
		return notify.NewTelegramSender(cfg.Telegram.Token)
	default:
		return notify.LogSender{Log: logger}, nil
	}
}

func newDispatcher(st *storage.Store) (*notify.Dispatcher, error) {
	sender, err := newSender()
	if err != nil {
		return nil, err
	}
	return notify.NewDispatcher(st, sender, notify.DispatcherOptions{
		Title:   cfg.Notify.Title,
		Body:    cfg.Notify.Body,
		Workers: cfg.Notify.Workers,
		Log:     logger,
	}), nil
}

func newNotifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Send the daily reminder to every opted-in user now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			d, err := newDispatcher(st)
			if err != nil {
				return err
			}
			rep, err := d.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBell, "Reminders"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Users", rep.Users))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Sent", rep.Sent))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Failed", rep.Failed))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Pruned tokens", rep.Pruned))
			return nil
		},
	}
}
