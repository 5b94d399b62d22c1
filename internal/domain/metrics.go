// Package domain contains the data shapes exchanged with the productivity API.
// Every value is a read-only snapshot once decoded.
package domain

// TimeSeriesMetric is a single sample of a time series.
type TimeSeriesMetric struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit,omitempty"`
}

// MetricData is a named time series for a team.
type MetricData struct {
	MetricType string             `json:"metric_type"`
	TeamID     string             `json:"team_id"`
	Data       []TimeSeriesMetric `json:"data"`
}

// CommitAuthor identifies who wrote a commit.
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// Commit is a single commit as reported by the backend.
type Commit struct {
	SHA        string       `json:"sha"`
	Message    string       `json:"message"`
	Author     CommitAuthor `json:"author"`
	URL        string       `json:"url"`
	Repository string       `json:"repository"`
}

// CommitActivity is the commit count and distinct authors for one calendar day.
type CommitActivity struct {
	Date    string   `json:"date"`
	Count   int      `json:"count"`
	Authors []string `json:"authors"`
}

// SizeDistribution counts pull requests per size bucket.
type SizeDistribution struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
	XLarge int `json:"xlarge"`
}

// PRMetrics is a snapshot of pull request analytics for a team.
// Durations are in hours, ApprovalRate is a percentage.
type PRMetrics struct {
	TotalPRs           int              `json:"total_prs,omitempty"`
	MergedPRs          int              `json:"merged_prs,omitempty"`
	OpenPRs            int              `json:"open_prs,omitempty"`
	AverageTimeToMerge float64          `json:"average_time_to_merge"`
	AverageReviewTime  float64          `json:"average_review_time"`
	ApprovalRate       float64          `json:"approval_rate"`
	SizeDistribution   SizeDistribution `json:"pr_size_distribution"`
}

// HeatmapData is the review activity for one hour of one weekday.
type HeatmapData struct {
	Day   string `json:"day"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

// APIResponse is the generic envelope some endpoints wrap their payload in.
type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PaginatedResponse is the envelope for paged listings.
type PaginatedResponse[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	HasMore bool `json:"has_more"`
}
