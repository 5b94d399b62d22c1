package chart

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/naka-gawa/devdash/internal/domain"
)

const labelLayout = "Jan 02"

// Bar colours per PR size bucket.
var (
	ColorSmall  = lipgloss.Color("#10b981")
	ColorMedium = lipgloss.Color("#3b82f6")
	ColorLarge  = lipgloss.Color("#f59e0b")
	ColorXLarge = lipgloss.Color("#ef4444")
)

// CommitPoint is one x position of the commit activity line chart.
type CommitPoint struct {
	Label        string `json:"date"`
	Commits      int    `json:"commits"`
	Contributors int    `json:"contributors"`
}

// Bar is one bar of the PR size distribution chart.
type Bar struct {
	Name  string         `json:"name"`
	Value int            `json:"value"`
	Color lipgloss.Color `json:"color"`
}

// CommitSeries maps daily activity onto the two lines of the commit chart:
// commits and the number of authors that day.
func CommitSeries(data []domain.CommitActivity) []CommitPoint {
	points := make([]CommitPoint, 0, len(data))
	for _, item := range data {
		points = append(points, CommitPoint{
			Label:        formatDate(item.Date),
			Commits:      item.Count,
			Contributors: len(item.Authors),
		})
	}
	return points
}

// SizeBars returns the four PR size buckets in the order small, medium,
// large, xlarge.
func SizeBars(m domain.PRMetrics) []Bar {
	d := m.SizeDistribution
	return []Bar{
		{Name: "Small (<100 lines)", Value: d.Small, Color: ColorSmall},
		{Name: "Medium (100-500)", Value: d.Medium, Color: ColorMedium},
		{Name: "Large (500-1000)", Value: d.Large, Color: ColorLarge},
		{Name: "X-Large (>1000)", Value: d.XLarge, Color: ColorXLarge},
	}
}

// formatDate renders an ISO date as "Jan 02". Unparseable input is shown as-is.
func formatDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(labelLayout)
		}
	}
	return s
}
