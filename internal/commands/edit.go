package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/timeboxd/timeboxd/internal/db"
)

var editCmd = &cobra.Command{
	Use:   "edit <timebox-id>",
	Short: "Edit a timebox's intention, notes, or duration",
	Long: `Edit an existing timebox. Only the flags you pass are changed, and every
real change is recorded in the timebox's change log.

Examples:
  timeboxd edit 42 --intention "Ship the fix"
  timeboxd edit 42 --for 45m --notes "Scope grew"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		var req db.UpdateTimeboxRequest
		if cmd.Flags().Changed("intention") {
			intention, _ := cmd.Flags().GetString("intention")
			req.Intention = &intention
		}
		if cmd.Flags().Changed("notes") {
			notes, _ := cmd.Flags().GetString("notes")
			req.Notes = &notes
		}
		if cmd.Flags().Changed("for") {
			durationStr, _ := cmd.Flags().GetString("for")
			duration, err := time.ParseDuration(durationStr)
			if err != nil {
				fmt.Printf("Error: invalid duration '%s' (try 25m or 1h30m)\n", durationStr)
				return
			}
			seconds := int64(duration.Seconds())
			req.IntendedDuration = &seconds
		}

		if req.Intention == nil && req.Notes == nil && req.IntendedDuration == nil {
			fmt.Println("Nothing to change. Pass --intention, --notes, or --for.")
			return
		}

		tb, err := store.UpdateTimebox(id, req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✏️  Updated timebox #%d: %s (%s)\n", tb.ID, tb.Intention, formatSeconds(tb.IntendedDuration))
	},
}

func init() {
	editCmd.Flags().String("intention", "", "New intention")
	editCmd.Flags().String("notes", "", "New notes")
	editCmd.Flags().String("for", "", "New intended duration (e.g. 45m)")
}
