package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timeboxd/timeboxd/internal/idle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the idle watcher until interrupted",
	Long: `Run the idle auto-stop loop in the foreground. While running, any
in-progress timebox is stopped automatically once the system has been idle
longer than the configured threshold (see 'timeboxd idle').

Poll frequency comes from TIMEBOXD_IDLE_POLL_INTERVAL (default 30s).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		initStore()

		cfg, err := idle.LoadConfig()
		if err != nil {
			return fmt.Errorf("invalid watcher config: %w", err)
		}
		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		watcher := idle.New(store, nil, cfg, logger)
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

var idleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Show or change idle auto-stop settings",
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		settings, err := store.IdleSettings()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		changed := false
		if cmd.Flags().Changed("enabled") {
			settings.Enabled, _ = cmd.Flags().GetBool("enabled")
			changed = true
		}
		if cmd.Flags().Changed("timeout") {
			settings.TimeoutMinutes, _ = cmd.Flags().GetInt("timeout")
			changed = true
		}
		if changed {
			if err := store.SetIdleSettings(settings); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		state := "disabled"
		if settings.Enabled {
			state = "enabled"
		}
		fmt.Printf("Idle auto-stop: %s, threshold %d minute(s)\n", state, settings.TimeoutMinutes)
	},
}

func init() {
	idleCmd.Flags().Bool("enabled", true, "Enable or disable idle auto-stop")
	idleCmd.Flags().Int("timeout", 5, "Idle threshold in minutes")
}
