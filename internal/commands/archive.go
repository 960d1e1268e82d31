package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:     "archive [timebox-id]",
	Aliases: []string{"a"},
	Short:   "Archive a timebox",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.ArchiveTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗃️  Archived timebox #%d: %s\n", tb.ID, tb.Intention)
		if tb.ArchivedAt != nil {
			fmt.Printf("Archived at: %s\n", tb.ArchivedAt.Format("15:04:05"))
		}
	},
}

var unarchiveCmd = &cobra.Command{
	Use:     "unarchive [timebox-id]",
	Aliases: []string{"ua"},
	Short:   "Unarchive a timebox (it returns to today's view)",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		tb, err := store.UnarchiveTimebox(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📤 Unarchived timebox #%d: %s\n", tb.ID, tb.Intention)
		fmt.Printf("Status: %s\n", tb.Status)
	},
}
