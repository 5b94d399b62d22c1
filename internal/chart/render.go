package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/naka-gawa/devdash/internal/domain"
)

const maxBarWidth = 40

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	commitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	contribStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	valueStyle   = lipgloss.NewStyle().Bold(true)

	// CardStyle frames each chart and summary card.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e5e7eb")).
			Padding(0, 1)
)

// RenderCommitActivity draws the commit activity chart for any state.
func RenderCommitActivity(s State[[]domain.CommitActivity]) string {
	if out, done := renderPending(s.Kind(), s.Message()); done {
		return out
	}
	points := CommitSeries(s.Data())
	if len(points) == 0 {
		return mutedStyle.Render("No commit data available")
	}

	peak := 0
	for _, p := range points {
		peak = max(peak, p.Commits, p.Contributors)
	}

	var b strings.Builder
	b.WriteString(commitStyle.Render("█ Commits") + "  " + contribStyle.Render("█ Contributors") + "\n")
	for _, p := range points {
		fmt.Fprintf(&b, "%-6s %s %d\n", p.Label, commitStyle.Render(bar(p.Commits, peak)), p.Commits)
		fmt.Fprintf(&b, "%-6s %s %d\n", "", contribStyle.Render(bar(p.Contributors, peak)), p.Contributors)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPRMetrics draws the PR metric cards and size distribution for any state.
func RenderPRMetrics(s State[*domain.PRMetrics]) string {
	if out, done := renderPending(s.Kind(), s.Message()); done {
		return out
	}
	m := s.Data()
	if m == nil {
		return mutedStyle.Render("No PR metrics available")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Avg Time to Merge", fmt.Sprintf("%.1fh", m.AverageTimeToMerge)),
		card("Avg Review Time", fmt.Sprintf("%.1fh", m.AverageReviewTime)),
		card("Approval Rate", fmt.Sprintf("%.0f%%", m.ApprovalRate)),
	)

	bars := SizeBars(*m)
	peak := 0
	for _, b := range bars {
		peak = max(peak, b.Value)
	}

	var b strings.Builder
	b.WriteString(cards + "\n")
	b.WriteString(titleStyle.Render("PR Size Distribution") + "\n")
	for _, sb := range bars {
		style := lipgloss.NewStyle().Foreground(sb.Color)
		fmt.Fprintf(&b, "%-18s %s %d\n", sb.Name, style.Render(bar(sb.Value, peak)), sb.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderCard draws one headline number with its caption.
func RenderCard(title, value, subtitle string) string {
	return CardStyle.Render(mutedStyle.Render(title) + "\n" + valueStyle.Render(value) + "\n" + mutedStyle.Render(subtitle))
}

func card(title, value string) string {
	return CardStyle.Render(mutedStyle.Render(title) + "\n" + valueStyle.Render(value))
}

func renderPending(kind Kind, message string) (string, bool) {
	switch kind {
	case KindLoading:
		return mutedStyle.Render("Loading..."), true
	case KindFailed:
		return errorStyle.Bold(true).Render("Error loading data") + "\n" + errorStyle.Render(message), true
	}
	return "", false
}

func bar(value, peak int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	width := value * maxBarWidth / peak
	if width == 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}
