package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/timeboxd/timeboxd/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [timebox-id]",
	Short: "Start (or resume) working on a timebox",
	Long: `Start working on a timebox. Opens the interactive timer by default,
use --no-ui for a plain start. Starting a paused or stopped timebox resumes
it with a fresh session.

Examples:
  timeboxd start 42         # Start with interactive timer
  timeboxd start 42 --no-ui # Start without UI`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.StartTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Started timebox #%d: %s\n", tb.ID, tb.Intention)
			fmt.Printf("Intended duration: %s\n", formatSeconds(tb.IntendedDuration))
			return
		}
		if err := tui.RunTimerTUI(store, tb); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause [timebox-id]",
	Short: "Pause a timebox, keeping it resumable",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.PauseTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏸️  Paused timebox #%d: %s\n", tb.ID, tb.Intention)
		printActual(tb.ID)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop [timebox-id]",
	Short: "Stop a timebox before its time is up",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.StopTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏹️  Stopped timebox #%d: %s\n", tb.ID, tb.Intention)
		printActual(tb.ID)
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish [timebox-id]",
	Short: "Mark a timebox as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.FinishTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Finished timebox #%d: %s\n", tb.ID, tb.Intention)
		printActual(tb.ID)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [timebox-id]",
	Short: "Cancel a timebox, discarding its open session time",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.CancelTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("❌ Cancelled timebox #%d: %s\n", tb.ID, tb.Intention)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [timebox-id]",
	Short: "Show a timebox and its session history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.GetTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📦 Timebox #%d: %s [%s]\n", tb.ID, tb.Intention, tb.Status)
		fmt.Printf("Intended: %s\n", formatSeconds(tb.IntendedDuration))
		printActual(tb.ID)

		sessions, err := store.SessionsForTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		for _, session := range sessions {
			end := "…"
			switch {
			case session.StoppedAt != nil:
				end = session.StoppedAt.Format("15:04:05")
			case session.CancelledAt != nil:
				end = session.CancelledAt.Format("15:04:05") + " (cancelled)"
			}
			fmt.Printf("  %s → %s\n", session.StartedAt.Format("15:04:05"), end)
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete [timebox-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a timebox (it disappears from all views)",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.DeleteTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted timebox #%d: %s\n", tb.ID, tb.Intention)
	},
}

func parseID(arg string) (uint, bool) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		fmt.Printf("Error: invalid timebox ID '%s'\n", arg)
		return 0, false
	}
	return uint(id), true
}

func printActual(id uint) {
	actual, err := store.ActualDuration(id)
	if err != nil {
		return
	}
	fmt.Printf("Time worked: %s\n", formatDuration(actual))
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start without the interactive timer")
}
