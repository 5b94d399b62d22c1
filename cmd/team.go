package cmd

import (
	"context"

	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/spf13/cobra"
)

var prsCmd = &cobra.Command{
	Use:   "prs",
	Short: "List the team's pull requests",
	Run: func(cmd *cobra.Command, args []string) {
		state, _ := cmd.Flags().GetString("state")
		limit, _ := cmd.Flags().GetInt("limit")

		client, cfg := newAPIClient(cmd)
		prs, err := client.GetPullRequests(context.Background(), cfg.TeamID, state, limit)
		if err != nil {
			fail("Failed to list pull requests: %v", err)
		}
		printJSON(prs)
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show AI insights for the team",
	Run: func(cmd *cobra.Command, args []string) {
		category, _ := cmd.Flags().GetString("category")

		client, cfg := newAPIClient(cmd)
		insights, err := client.GetAIInsights(context.Background(), cfg.TeamID, domain.InsightCategory(category))
		if err != nil {
			fail("Failed to get insights: %v", err)
		}
		printJSON(insights)
	},
}

var insightsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the API to generate fresh insights",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := newAPIClient(cmd)
		insights, err := client.GenerateInsights(context.Background(), cfg.TeamID)
		if err != nil {
			fail("Failed to generate insights: %v", err)
		}
		printJSON(insights)
	},
}

var contributorsCmd = &cobra.Command{
	Use:   "contributors",
	Short: "Rank the team's contributors",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		client, cfg := newAPIClient(cmd)
		contributors, err := client.GetContributors(context.Background(), cfg.TeamID, limit)
		if err != nil {
			fail("Failed to list contributors: %v", err)
		}
		printJSON(contributors)
	},
}

func init() {
	rootCmd.AddCommand(prsCmd, insightsCmd, contributorsCmd)
	insightsCmd.AddCommand(insightsGenerateCmd)

	prsCmd.Flags().String("state", "", "Filter by state: open, closed or merged")
	prsCmd.Flags().Int("limit", 0, "Maximum number of pull requests")
	insightsCmd.Flags().String("category", "", "Filter by category: productivity_pattern, bottleneck_detection or team_health")
	contributorsCmd.Flags().Int("limit", 0, "Maximum number of contributors")
}
