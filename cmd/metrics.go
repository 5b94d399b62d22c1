package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// inputDateLayout is the date format accepted by --from and --to.
const inputDateLayout = "2006/01/02"

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Raw metrics from the productivity API, as JSON",
}

var metricsCommitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "Daily commit counts and authors",
	Run: func(cmd *cobra.Command, args []string) {
		start, end := dateRange(cmd)
		client, cfg := newAPIClient(cmd)
		activity, err := client.GetCommitFrequency(context.Background(), cfg.TeamID, start, end)
		if err != nil {
			fail("Failed to get commit frequency: %v", err)
		}
		printJSON(activity)
	},
}

var metricsVelocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Pull request velocity",
	Run: func(cmd *cobra.Command, args []string) {
		start, end := dateRange(cmd)
		client, cfg := newAPIClient(cmd)
		velocity, err := client.GetPRVelocity(context.Background(), cfg.TeamID, start, end)
		if err != nil {
			fail("Failed to get PR velocity: %v", err)
		}
		printJSON(velocity)
	},
}

var metricsPRsCmd = &cobra.Command{
	Use:   "prs",
	Short: "Pull request analytics: merge and review times, approval rate, sizes",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := newAPIClient(cmd)
		metrics, err := client.GetPRMetrics(context.Background(), cfg.TeamID)
		if err != nil {
			fail("Failed to get PR analytics: %v", err)
		}
		printJSON(metrics)
	},
}

// dateRange resolves --from/--to, defaulting to the last --days days.
func dateRange(cmd *cobra.Command) (time.Time, time.Time) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	days, _ := cmd.Flags().GetInt("days")

	end := time.Now()
	if toStr != "" {
		toTime, err := time.Parse(inputDateLayout, toStr)
		if err != nil {
			fail("Invalid --to date format. Please use YYYY/MM/DD. Error: %v", err)
		}
		// Include the whole end day.
		end = toTime.Add(24*time.Hour - time.Millisecond)
	}
	start := end.AddDate(0, 0, -days)
	if fromStr != "" {
		fromTime, err := time.Parse(inputDateLayout, fromStr)
		if err != nil {
			fail("Invalid --from date format. Please use YYYY/MM/DD. Error: %v", err)
		}
		start = fromTime
	}
	if start.After(end) {
		fail("Invalid date range: --from must be before --to.")
	}
	return start, end
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.AddCommand(metricsCommitsCmd, metricsVelocityCmd, metricsPRsCmd)

	for _, c := range []*cobra.Command{metricsCommitsCmd, metricsVelocityCmd} {
		c.Flags().String("from", "", "Start date (YYYY/MM/DD)")
		c.Flags().String("to", "", "End date (YYYY/MM/DD)")
		c.Flags().Int("days", 30, "Window length in days when --from is not set")
	}
}
