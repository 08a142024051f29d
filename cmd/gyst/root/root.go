package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gyst/internal/config"
	"gyst/internal/logging"
	"gyst/internal/ui"
)

const Version = "0.1.0"

var (
	flagConfig string
	flagDB     string
	flagUser   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gyst",
	Short:         "gyst: recurring tasks, streaks and XP",
	Long:          "gyst tracks daily, weekly and monthly tasks, per-task streaks, a global streak and XP.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagDB != "" {
			c.DBPath = flagDB
		}
		if flagUser != "" {
			c.User = flagUser
		}
		l, err := logging.New(c.Log.Level, c.Log.Format, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		slog.SetDefault(l)
		cfg, logger = c, l
		return nil
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.gyst/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default ~/.gyst/gyst.db)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User id")

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newRmCmd(),
		newDoCmd(),
		newUndoCmd(),
		newListCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newBadgesCmd(),
		newSettingsCmd(),
		newTokenCmd(),
		newNotifyCmd(),
		newServeCmd(),
		newBoardCmd(),
		newAccountCmd(),
		newConfigCmd(),
	)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
