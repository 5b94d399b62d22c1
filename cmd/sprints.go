package cmd

import (
	"context"

	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/spf13/cobra"
)

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List the team's sprints",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := newAPIClient(cmd)
		sprints, err := client.GetSprints(context.Background(), cfg.TeamID)
		if err != nil {
			fail("Failed to list sprints: %v", err)
		}
		printJSON(sprints)
	},
}

var sprintsVelocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Planned versus completed points for recent sprints",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		client, cfg := newAPIClient(cmd)
		velocity, err := client.GetSprintVelocity(context.Background(), cfg.TeamID, limit)
		if err != nil {
			fail("Failed to get sprint velocity: %v", err)
		}
		printJSON(velocity)
	},
}

var sprintsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sprint",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		capacity, _ := cmd.Flags().GetInt("capacity")
		status, _ := cmd.Flags().GetString("status")

		client, cfg := newAPIClient(cmd)
		sprint, err := client.CreateSprint(context.Background(), domain.SprintInput{
			Name:      name,
			TeamID:    cfg.TeamID,
			StartDate: start,
			EndDate:   end,
			Capacity:  capacity,
			Status:    domain.SprintStatus(status),
		})
		if err != nil {
			fail("Failed to create sprint: %v", err)
		}
		printJSON(sprint)
	},
}

var sprintsUpdateCmd = &cobra.Command{
	Use:   "update <sprint-id>",
	Short: "Update fields of a sprint; only flags that are given are sent",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		var updates domain.SprintUpdate
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			updates.Name = &v
		}
		if flags.Changed("start") {
			v, _ := flags.GetString("start")
			updates.StartDate = &v
		}
		if flags.Changed("end") {
			v, _ := flags.GetString("end")
			updates.EndDate = &v
		}
		if flags.Changed("capacity") {
			v, _ := flags.GetInt("capacity")
			updates.Capacity = &v
		}
		if flags.Changed("completed-points") {
			v, _ := flags.GetInt("completed-points")
			updates.CompletedPoints = &v
		}
		if flags.Changed("status") {
			v, _ := flags.GetString("status")
			status := domain.SprintStatus(v)
			updates.Status = &status
		}

		client, _ := newAPIClient(cmd)
		sprint, err := client.UpdateSprint(context.Background(), args[0], updates)
		if err != nil {
			fail("Failed to update sprint: %v", err)
		}
		printJSON(sprint)
	},
}

func init() {
	rootCmd.AddCommand(sprintsCmd)
	sprintsCmd.AddCommand(sprintsVelocityCmd, sprintsCreateCmd, sprintsUpdateCmd)

	sprintsVelocityCmd.Flags().Int("limit", 6, "Number of recent sprints")

	sprintsCreateCmd.Flags().String("name", "", "Sprint name (required)")
	sprintsCreateCmd.Flags().String("start", "", "Start date, YYYY-MM-DD (required)")
	sprintsCreateCmd.Flags().String("end", "", "End date, YYYY-MM-DD (required)")
	sprintsCreateCmd.Flags().Int("capacity", 0, "Capacity in story points")
	sprintsCreateCmd.Flags().String("status", string(domain.SprintPlanned), "planned, active or completed")
	sprintsCreateCmd.MarkFlagRequired("name")
	sprintsCreateCmd.MarkFlagRequired("start")
	sprintsCreateCmd.MarkFlagRequired("end")

	sprintsUpdateCmd.Flags().String("name", "", "New name")
	sprintsUpdateCmd.Flags().String("start", "", "New start date")
	sprintsUpdateCmd.Flags().String("end", "", "New end date")
	sprintsUpdateCmd.Flags().Int("capacity", 0, "New capacity")
	sprintsUpdateCmd.Flags().Int("completed-points", 0, "Completed story points")
	sprintsUpdateCmd.Flags().String("status", "", "planned, active or completed")
}
