package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeboxd/timeboxd/internal/db"
)

var reorderCmd = &cobra.Command{
	Use:   "reorder <id=position> [id=position ...]",
	Short: "Set the manual display order of timeboxes",
	Long: `Assign display positions to timeboxes in today's view. All assignments
apply together or not at all.

Example:
  timeboxd reorder 7=1 3=2 12=3`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		orders := make([]db.ReorderRequest, 0, len(args))
		for _, arg := range args {
			parts := strings.SplitN(arg, "=", 2)
			if len(parts) != 2 {
				fmt.Printf("Error: invalid assignment '%s' (expected id=position)\n", arg)
				return
			}
			id, err := strconv.ParseUint(parts[0], 10, 32)
			if err != nil {
				fmt.Printf("Error: invalid timebox ID '%s'\n", parts[0])
				return
			}
			position, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				fmt.Printf("Error: invalid position '%s'\n", parts[1])
				return
			}
			orders = append(orders, db.ReorderRequest{ID: uint(id), DisplayOrder: position})
		}

		if err := store.ReorderTimeboxes(orders); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🔀 Reordered %d timebox(es)\n", len(orders))
	},
}
