package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeboxd/timeboxd/internal/db"
	"github.com/timeboxd/timeboxd/internal/models"
)

var linearCmd = &cobra.Command{
	Use:   "linear",
	Short: "Manage stored Linear projects and the Linear connection",
	Long: `Manage the local mirror of Linear projects. timeboxd only stores project
references here; it never calls the Linear API itself.`,
}

var linearSaveCmd = &cobra.Command{
	Use:   "save <project-id> <team-id> <name>",
	Short: "Save or update a Linear project reference",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		req := db.SaveLinearProjectRequest{
			LinearProjectID: args[0],
			LinearTeamID:    args[1],
			Name:            args[2],
		}
		if description, _ := cmd.Flags().GetString("description"); description != "" {
			req.Description = &description
		}
		if state, _ := cmd.Flags().GetString("state"); state != "" {
			req.State = &state
		}

		project, err := store.SaveLinearProject(req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("💾 Saved Linear project %s (%s)\n", project.Name, project.LinearProjectID)
	},
}

var linearListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored Linear projects",
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		projects, err := store.ListLinearProjects()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(projects) == 0 {
			fmt.Println("No Linear projects stored.")
			return
		}

		for _, project := range projects {
			marker := " "
			if project.IsActiveTimeboxProject {
				marker = "*"
			}
			state := ""
			if project.State != nil {
				state = " [" + *project.State + "]"
			}
			fmt.Printf("%s %-30s %s%s\n", marker, project.Name, project.LinearProjectID, state)
		}
	},
}

var linearUseCmd = &cobra.Command{
	Use:   "use <project-id>",
	Short: "Make a Linear project the target for new timeboxes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		project, err := store.SetActiveTimeboxProject(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🎯 New timeboxes will be linked to %s\n", project.Name)
	},
}

var linearConnectCmd = &cobra.Command{
	Use:   "connect <api-key>",
	Short: "Store a Linear API connection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()

		name, _ := cmd.Flags().GetString("name")
		integration, err := store.CreateIntegration(name, models.IntegrationLinear, models.LinearConfig{
			APIKey: strings.TrimSpace(args[0]),
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🔗 Stored Linear connection %q (#%d)\n", integration.ConnectionName, integration.ID)
	},
}

var linearDisconnectCmd = &cobra.Command{
	Use:   "disconnect <integration-id>",
	Short: "Remove a stored Linear connection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initStore()
		id, ok := parseID(args[0])
		if !ok {
			return
		}

		if err := store.DeleteIntegration(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🔌 Removed integration #%d\n", id)
	},
}

func init() {
	linearSaveCmd.Flags().String("description", "", "Project description")
	linearSaveCmd.Flags().String("state", "", "Project state")
	linearConnectCmd.Flags().String("name", "linear", "Connection name")

	linearCmd.AddCommand(linearSaveCmd)
	linearCmd.AddCommand(linearListCmd)
	linearCmd.AddCommand(linearUseCmd)
	linearCmd.AddCommand(linearConnectCmd)
	linearCmd.AddCommand(linearDisconnectCmd)
}
