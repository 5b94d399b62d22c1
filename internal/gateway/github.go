// Package gateway provides access to the data behind the dashboard: the
// productivity API client and a direct GitHub source that produces the same
// shapes from the REST and GraphQL APIs.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

const (
	githubDateLayout = "2006-01-02"
	// DefaultPRWindow is how far back GetPRMetrics looks for pull requests.
	DefaultPRWindow = 30 * 24 * time.Hour
)

// PR size buckets by lines changed (additions + deletions).
const (
	smallPRLines  = 100
	mediumPRLines = 500
	largePRLines  = 1000
)

// GitHubGateway computes commit activity and PR metrics straight from GitHub.
// The team ID passed to its methods is the GitHub organization.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
	prWindow      time.Duration
	now           func() time.Time
}

var _ MetricsFetcher = (*GitHubGateway)(nil)

// prMetricsQuery pulls what is needed to derive merge, review and size figures.
type prMetricsQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					State     string
					CreatedAt githubv4.DateTime
					MergedAt  *githubv4.DateTime
					Additions int
					Deletions int
					Reviews   struct {
						Nodes []struct {
							State       string
							SubmittedAt *githubv4.DateTime
						}
					} `graphql:"reviews(first: 50, states: [COMMENTED, APPROVED, CHANGES_REQUESTED])"`
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 50, after: $cursor)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
		prWindow:      DefaultPRWindow,
		now:           time.Now,
	}, nil
}

// GetCommitFrequency returns one entry per UTC calendar day in [start, end],
// including days without commits, ordered by date.
func (g *GitHubGateway) GetCommitFrequency(ctx context.Context, org string, start, end time.Time) ([]domain.CommitActivity, error) {
	g.logger.Println("[1/2] Fetching commit data using REST API...")
	start, end = start.UTC(), end.UTC()
	query := fmt.Sprintf("org:%s author-date:%s..%s", org, start.Format(githubDateLayout), end.Format(githubDateLayout))
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 100}}

	counts := make(map[string]int)
	authors := make(map[string]map[string]struct{})
	for {
		result, resp, err := g.restClient.Search.Commits(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to search commits with REST API: %w", err)
		}
		for _, c := range result.Commits {
			day := c.GetCommit().GetAuthor().GetDate().UTC().Format(githubDateLayout)
			counts[day]++
			author := c.GetAuthor().GetLogin()
			if author == "" {
				author = c.GetCommit().GetAuthor().GetName()
			}
			if author == "" {
				continue
			}
			if authors[day] == nil {
				authors[day] = make(map[string]struct{})
			}
			authors[day][author] = struct{}{}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of commits...")
	}

	activity := make([]domain.CommitActivity, 0)
	for d := truncateDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(githubDateLayout)
		names := make([]string, 0, len(authors[day]))
		for name := range authors[day] {
			names = append(names, name)
		}
		sort.Strings(names)
		activity = append(activity, domain.CommitActivity{Date: day, Count: counts[day], Authors: names})
	}
	g.logger.Println("Completed fetching commit data.")
	return activity, nil
}

// GetPRMetrics summarizes pull requests created in the organization during
// the trailing PR window.
func (g *GitHubGateway) GetPRMetrics(ctx context.Context, org string) (*domain.PRMetrics, error) {
	g.logger.Println("[2/2] Fetching PR data using GraphQL API...")
	end := g.now().UTC()
	start := end.Add(-g.prWindow)
	query := fmt.Sprintf("org:%s is:pr created:%s..%s", org, start.Format(githubDateLayout), end.Format(githubDateLayout))
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	var (
		metrics     domain.PRMetrics
		mergeHours  []float64
		reviewHours []float64
		approved    int
	)
	for {
		var q prMetricsQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for PR metrics: %w", err)
		}

		for _, edge := range q.Search.Edges {
			if edge.Node.Typename != "PullRequest" {
				continue
			}
			pr := edge.Node.PullRequest
			metrics.TotalPRs++
			if pr.State == "OPEN" {
				metrics.OpenPRs++
			}
			if pr.MergedAt != nil {
				metrics.MergedPRs++
				mergeHours = append(mergeHours, pr.MergedAt.Sub(pr.CreatedAt.Time).Hours())
			}

			var firstReview time.Time
			isApproved := false
			for _, review := range pr.Reviews.Nodes {
				if review.State == "APPROVED" {
					isApproved = true
				}
				if review.SubmittedAt != nil && (firstReview.IsZero() || review.SubmittedAt.Before(firstReview)) {
					firstReview = review.SubmittedAt.Time
				}
			}
			if isApproved {
				approved++
			}
			if !firstReview.IsZero() {
				reviewHours = append(reviewHours, firstReview.Sub(pr.CreatedAt.Time).Hours())
			}

			addToBucket(&metrics.SizeDistribution, pr.Additions+pr.Deletions)
		}

		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of pull requests...")
	}

	metrics.AverageTimeToMerge = roundedMean(mergeHours)
	metrics.AverageReviewTime = roundedMean(reviewHours)
	if metrics.TotalPRs > 0 {
		rate, _ := stats.Round(float64(approved)/float64(metrics.TotalPRs)*100, 2)
		metrics.ApprovalRate = rate
	}
	g.logger.Printf("Completed fetching PR data: %d pull requests.\n", metrics.TotalPRs)
	return &metrics, nil
}

func addToBucket(dist *domain.SizeDistribution, lines int) {
	switch {
	case lines < smallPRLines:
		dist.Small++
	case lines < mediumPRLines:
		dist.Medium++
	case lines < largePRLines:
		dist.Large++
	default:
		dist.XLarge++
	}
}

// roundedMean is the mean to two decimals, or zero for no samples.
func roundedMean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	mean, err := stats.Mean(samples)
	if err != nil {
		return 0
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return mean
	}
	return rounded
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
