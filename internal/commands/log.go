package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [timebox-id]",
	Short: "Show the change history of a timebox",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		entries, err := store.ChangeLogForTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(entries) == 0 {
			fmt.Printf("No changes recorded for timebox #%d\n", id)
			return
		}

		for _, entry := range entries {
			fmt.Printf("%s\n", entry.UpdatedAt.Format("2006-01-02 15:04:05"))
			if entry.PreviousIntention != nil {
				fmt.Printf("  intention: %q → %q\n", *entry.PreviousIntention, *entry.UpdatedIntention)
			}
			if entry.PreviousNotes != nil || entry.UpdatedNotes != nil {
				fmt.Printf("  notes: %s → %s\n", notesOrDash(entry.PreviousNotes), notesOrDash(entry.UpdatedNotes))
			}
			if entry.PreviousIntendedDuration != nil {
				fmt.Printf("  duration: %s → %s\n",
					formatSeconds(*entry.PreviousIntendedDuration),
					formatSeconds(*entry.NewIntendedDuration))
			}
		}
	},
}

func notesOrDash(notes *string) string {
	if notes == nil {
		return "-"
	}
	return fmt.Sprintf("%q", *notes)
}
