// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/naka-gawa/devdash/internal/gateway"
	"golang.org/x/sync/errgroup"
)

const (
	// TrailingWindow is the span of commit activity shown on the dashboard.
	TrailingWindow = 30 * 24 * time.Hour

	// LoadErrorMessage is the only message shown when any fetch fails.
	LoadErrorMessage = "Failed to load dashboard data"
)

// LoadError hides which fetch failed behind a single user-facing message.
// The cause stays reachable through errors.Unwrap.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return LoadErrorMessage }

func (e *LoadError) Unwrap() error { return e.Err }

// Summary holds the headline numbers shown above the charts.
type Summary struct {
	TotalCommits         int     `json:"total_commits"`
	ActiveContributors   int     `json:"active_contributors"`
	AverageCommitsPerDay float64 `json:"average_commits_per_day"`
	AvgMergeTime         string  `json:"avg_merge_time"`
	ApprovalRate         string  `json:"approval_rate"`
}

// Snapshot is everything a single dashboard load produced.
type Snapshot struct {
	TeamID    string                  `json:"team_id"`
	Start     time.Time               `json:"start"`
	End       time.Time               `json:"end"`
	Commits   []domain.CommitActivity `json:"commits"`
	PRMetrics *domain.PRMetrics       `json:"pr_metrics"`
	Summary   Summary                 `json:"summary"`
}

// Dashboard is the use case behind the dashboard view.
// It orchestrates the fetching and summarizing of team metrics.
type Dashboard struct {
	fetcher gateway.MetricsFetcher
	teamID  string
	logger  *log.Logger
	now     func() time.Time
}

// NewDashboard creates a new Dashboard instance.
func NewDashboard(fetcher gateway.MetricsFetcher, teamID string, logger *log.Logger) *Dashboard {
	return &Dashboard{
		fetcher: fetcher,
		teamID:  teamID,
		logger:  logger,
		now:     time.Now,
	}
}

// Load fetches commit activity for the trailing window and the PR metrics
// concurrently. If either fetch fails the whole load fails with a *LoadError.
func (d *Dashboard) Load(ctx context.Context) (*Snapshot, error) {
	d.logger.Println("Usecase: Loading dashboard data...")

	end := d.now()
	start := end.Add(-TrailingWindow)

	var commits []domain.CommitActivity
	var metrics *domain.PRMetrics

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		commits, err = d.fetcher.GetCommitFrequency(egCtx, d.teamID, start, end)
		return err
	})

	eg.Go(func() error {
		var err error
		metrics, err = d.fetcher.GetPRMetrics(egCtx, d.teamID)
		return err
	})

	if err := eg.Wait(); err != nil {
		d.logger.Printf("Error loading dashboard data: %v", err)
		return nil, &LoadError{Err: err}
	}
	d.logger.Println("Usecase: All data fetched successfully.")

	return &Snapshot{
		TeamID:    d.teamID,
		Start:     start,
		End:       end,
		Commits:   commits,
		PRMetrics: metrics,
		Summary:   Summarize(commits, metrics),
	}, nil
}

// Summarize derives the headline numbers from the fetched data.
func Summarize(commits []domain.CommitActivity, metrics *domain.PRMetrics) Summary {
	s := Summary{
		TotalCommits:         TotalCommits(commits),
		ActiveContributors:   ActiveContributors(commits),
		AverageCommitsPerDay: averageCommitsPerDay(commits),
		AvgMergeTime:         "-",
		ApprovalRate:         "-",
	}
	if metrics != nil {
		s.AvgMergeTime = fmt.Sprintf("%.1fh", metrics.AverageTimeToMerge)
		s.ApprovalRate = fmt.Sprintf("%.0f%%", metrics.ApprovalRate)
	}
	return s
}

// TotalCommits is the sum of the daily counts.
func TotalCommits(commits []domain.CommitActivity) int {
	total := 0
	for _, c := range commits {
		total += c.Count
	}
	return total
}

// ActiveContributors is the number of distinct authors across all days.
func ActiveContributors(commits []domain.CommitActivity) int {
	seen := make(map[string]struct{})
	for _, c := range commits {
		for _, a := range c.Authors {
			seen[a] = struct{}{}
		}
	}
	return len(seen)
}

func averageCommitsPerDay(commits []domain.CommitActivity) float64 {
	if len(commits) == 0 {
		return 0
	}
	counts := make(stats.Float64Data, 0, len(commits))
	for _, c := range commits {
		counts = append(counts, float64(c.Count))
	}
	mean, err := counts.Mean()
	if err != nil {
		return 0
	}
	rounded, err := stats.Round(mean, 1)
	if err != nil {
		return mean
	}
	return rounded
}
