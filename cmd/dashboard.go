package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/naka-gawa/devdash/internal/chart"
	"github.com/naka-gawa/devdash/internal/gateway"
	"github.com/naka-gawa/devdash/internal/tui"
	"github.com/naka-gawa/devdash/internal/usecase"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Shows commit activity and pull request analytics for the last 30 days",
	Long: `Loads commit activity for the trailing 30 days and the team's pull request
analytics in parallel, then renders summary cards and charts.

With --source github the same figures are computed directly from a GitHub
organization (GITHUB_TOKEN and --org or GITHUB_ORG are required).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		source, _ := cmd.Flags().GetString("source")
		output, _ := cmd.Flags().GetString("output")
		interactive, _ := cmd.Flags().GetBool("interactive")

		// Inject dependencies and run the main business logic.
		var fetcher gateway.MetricsFetcher
		var teamID string
		switch source {
		case "api":
			client, cfg := newAPIClient(cmd)
			fetcher, teamID = client, cfg.TeamID
		case "github":
			cfg := loadConfig(cmd)
			if cfg.GitHubToken == "" {
				fail("Error: GITHUB_TOKEN environment variable is not set.")
			}
			org, _ := cmd.Flags().GetString("org")
			if org == "" {
				org = cfg.GitHubOrg
			}
			if org == "" {
				fail("Error: --org or GITHUB_ORG is required with --source github.")
			}
			githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, logger)
			if err != nil {
				fail("Failed to create GitHub gateway: %v", err)
			}
			fetcher, teamID = githubGateway, org
		default:
			fail("Invalid --source %q: use api or github", source)
		}
		dashboard := usecase.NewDashboard(fetcher, teamID, logger)

		if interactive {
			if _, err := tea.NewProgram(tui.NewModel(ctx, dashboard), tea.WithAltScreen()).Run(); err != nil {
				fail("Dashboard exited with error: %v", err)
			}
			return
		}

		snapshot, err := dashboard.Load(ctx)

		switch output {
		case "json":
			if err != nil {
				fail("%v", err)
			}
			printJSON(snapshot)
		case "text":
			state := chart.Ready(snapshot)
			if err != nil {
				state = chart.Failed[*usecase.Snapshot](err.Error())
			}
			fmt.Print(tui.RenderDashboard(state))
			if err != nil {
				os.Exit(1)
			}
		default:
			fail("Invalid --output %q: use text or json", output)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().String("source", "api", "Where metrics come from: api or github")
	dashboardCmd.Flags().StringP("org", "o", "", "GitHub organization for --source github (default $GITHUB_ORG)")
	dashboardCmd.Flags().String("output", "text", "Output format: text or json")
	dashboardCmd.Flags().BoolP("interactive", "i", false, "Open the interactive dashboard (r reloads, q quits)")
}
