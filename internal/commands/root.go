package commands

import (
	"github.com/spf13/cobra"

	"github.com/timeboxd/timeboxd/internal/clock"
	"github.com/timeboxd/timeboxd/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "timeboxd",
	Short: "A CLI for timeboxed, intentional work",
	Long: `timeboxd tracks discrete units of intentional work. Declare an intention
and how long you mean to spend on it, then start, pause, stop, or finish the
timebox while timeboxd derives the time you actually worked from its session
history.`,
}

var store *db.Store

// initStore opens the database and panics on error
func initStore() {
	if store != nil {
		return
	}
	path, err := db.DefaultPath()
	if err != nil {
		panic(err)
	}
	s, err := db.Open(path, clock.System())
	if err != nil {
		panic(err) // For now, panic on DB init failure
	}
	store = s
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
	rootCmd.AddCommand(reorderCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(idleCmd)
	rootCmd.AddCommand(linearCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("timeboxd %s (commit %s, built %s)\n", version, commit, date)
	},
}
