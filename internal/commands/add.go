package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/timeboxd/timeboxd/internal/db"
	"github.com/timeboxd/timeboxd/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [intention]",
	Short: "Create a new timebox",
	Long: `Create a new timebox with an intention and an intended duration.

Examples:
  timeboxd add "Write the launch email" --for 25m
  timeboxd add "Review PRs" --for 1h --notes "Focus on the storage change"
  timeboxd add              # interactive form`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		if len(args) == 0 {
			// Interactive form
			if err := tui.RunAddTimeboxTUI(store); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		durationStr, _ := cmd.Flags().GetString("for")
		duration, err := time.ParseDuration(durationStr)
		if err != nil {
			fmt.Printf("Error: invalid duration '%s' (try 25m or 1h30m)\n", durationStr)
			return
		}

		req := db.CreateTimeboxRequest{
			Intention:        args[0],
			IntendedDuration: int64(duration.Seconds()),
		}
		if notes, _ := cmd.Flags().GetString("notes"); notes != "" {
			req.Notes = &notes
		}

		// New timeboxes inherit the active Linear project, if one is set.
		if project, err := store.ActiveTimeboxProject(); err == nil && project != nil {
			req.LinearProjectID = &project.LinearProjectID
		}

		tb, err := store.CreateTimebox(req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📦 Created timebox #%d: %s (%s)\n", tb.ID, tb.Intention, formatSeconds(tb.IntendedDuration))
	},
}

func init() {
	addCmd.Flags().StringP("for", "f", "25m", "Intended duration (e.g. 25m, 1h30m)")
	addCmd.Flags().StringP("notes", "n", "", "Optional notes")
}

// formatSeconds formats a second count in a human-readable way
func formatSeconds(seconds int64) string {
	return formatDuration(time.Duration(seconds) * time.Second)
}

func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}
