package domain

// SprintStatus is the lifecycle stage of a sprint. Transitions are enforced
// by the backend only.
type SprintStatus string

const (
	SprintPlanned   SprintStatus = "planned"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

// Sprint is a planning period for a team. Capacity and CompletedPoints are story points.
type Sprint struct {
	SprintID        string       `json:"sprint_id"`
	Name            string       `json:"name"`
	TeamID          string       `json:"team_id"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	Capacity        int          `json:"capacity"`
	CompletedPoints int          `json:"completed_points"`
	Status          SprintStatus `json:"status"`
}

// SprintInput is a sprint that has not been assigned an ID yet.
type SprintInput struct {
	Name            string       `json:"name"`
	TeamID          string       `json:"team_id"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	Capacity        int          `json:"capacity"`
	CompletedPoints int          `json:"completed_points"`
	Status          SprintStatus `json:"status"`
}

// SprintUpdate carries only the fields being changed.
type SprintUpdate struct {
	Name            *string       `json:"name,omitempty"`
	StartDate       *string       `json:"start_date,omitempty"`
	EndDate         *string       `json:"end_date,omitempty"`
	Capacity        *int          `json:"capacity,omitempty"`
	CompletedPoints *int          `json:"completed_points,omitempty"`
	Status          *SprintStatus `json:"status,omitempty"`
}

type SprintVelocity struct {
	SprintName      string  `json:"sprint_name"`
	PlannedPoints   int     `json:"planned_points"`
	CompletedPoints int     `json:"completed_points"`
	Velocity        float64 `json:"velocity"`
}

type BurndownData struct {
	Date   string  `json:"date"`
	Ideal  float64 `json:"ideal"`
	Actual float64 `json:"actual"`
}

// InsightCategory groups AI insights.
type InsightCategory string

const (
	InsightProductivityPattern InsightCategory = "productivity_pattern"
	InsightBottleneckDetection InsightCategory = "bottleneck_detection"
	InsightTeamHealth          InsightCategory = "team_health"
)

// AIInsight is a generated observation about a team.
type AIInsight struct {
	InsightID       string          `json:"insight_id"`
	Category        InsightCategory `json:"category"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Severity        string          `json:"severity"`
	Recommendations []string        `json:"recommendations"`
	GeneratedAt     string          `json:"generated_at"`
	TeamID          string          `json:"team_id"`
}

// Contributor is a ranked team member.
type Contributor struct {
	Username     string  `json:"username"`
	Name         string  `json:"name,omitempty"`
	AvatarURL    string  `json:"avatar_url,omitempty"`
	Commits      int     `json:"commits"`
	PullRequests int     `json:"pull_requests"`
	Reviews      int     `json:"reviews"`
	Score        float64 `json:"score"`
}

// Review is a single review on a pull request.
type Review struct {
	ID          string `json:"id"`
	User        string `json:"user"`
	State       string `json:"state"`
	SubmittedAt string `json:"submitted_at"`
}

// PullRequest is a pull or merge request.
type PullRequest struct {
	ID             string   `json:"id"`
	Number         int      `json:"number"`
	Title          string   `json:"title"`
	State          string   `json:"state"`
	Author         string   `json:"author"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
	MergedAt       string   `json:"merged_at,omitempty"`
	ClosedAt       string   `json:"closed_at,omitempty"`
	URL            string   `json:"url"`
	Repository     string   `json:"repository"`
	Additions      int      `json:"additions"`
	Deletions      int      `json:"deletions"`
	ChangedFiles   int      `json:"changed_files"`
	ReviewComments int      `json:"review_comments"`
	Reviews        []Review `json:"reviews"`
}
