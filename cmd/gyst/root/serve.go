package root

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gyst/internal/notify"
	"gyst/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string
	var noReminders bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily reminder scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, st, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !noReminders {
				d, err := newDispatcher(st)
				if err != nil {
					return err
				}
				loc, err := cfg.NotifyLocation()
				if err != nil {
					return err
				}
				sched, err := notify.NewScheduler(d, cfg.Notify.Schedule, loc, logger)
				if err != nil {
					return err
				}
				sched.Start(ctx)
				defer sched.Stop()
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}
			return server.New(svc, logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noReminders, "no-reminders", false, "Do not schedule the daily reminder")
	return cmd
}
