package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeboxd/timeboxd/internal/db"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List timeboxes",
	Long:    "List today's timeboxes. Use --active for everything in flight or --archived for today's archive.",
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		var (
			rows []db.TimeboxWithSessions
			err  error
		)
		active, _ := cmd.Flags().GetBool("active")
		archived, _ := cmd.Flags().GetBool("archived")
		switch {
		case active:
			rows, err = store.ActiveTimeboxes()
		case archived:
			rows, err = store.ArchivedTimeboxes()
		default:
			rows, err = store.TodayTimeboxes()
		}
		if err != nil {
			fmt.Printf("Error fetching timeboxes: %v\n", err)
			return
		}

		if len(rows) == 0 {
			fmt.Println("No timeboxes found. Use 'timeboxd add \"intention\" --for 25m' to create one.")
			return
		}

		fmt.Printf("%-4s %-12s %-40s %-10s %-10s %s\n", "ID", "STATUS", "INTENTION", "INTENDED", "WORKED", "SESSIONS")
		fmt.Println(strings.Repeat("-", 88))

		for _, row := range rows {
			intention := row.Intention
			if len(intention) > 38 {
				intention = intention[:35] + "..."
			}
			fmt.Printf("%-4d %-12s %-40s %-10s %-10s %d\n",
				row.ID,
				row.Status,
				intention,
				formatSeconds(row.IntendedDuration),
				formatDuration(row.ActualDuration),
				len(row.Sessions))
		}
	},
}

func init() {
	listCmd.Flags().Bool("active", false, "Show started timeboxes that are still in flight")
	listCmd.Flags().Bool("archived", false, "Show today's archived timeboxes")
}
