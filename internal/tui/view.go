// Package tui renders the dashboard for the terminal, either once or as an
// interactive bubbletea program.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/naka-gawa/devdash/internal/chart"
	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/naka-gawa/devdash/internal/usecase"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).MarginTop(1)
)

// RenderDashboard lays out the header, summary cards and both charts for the
// given load state. A failed load shows a single error block.
func RenderDashboard(state chart.State[*usecase.Snapshot]) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Developer Productivity Dashboard") + "\n")
	b.WriteString(subtleStyle.Render("Real-time insights into your team's development metrics") + "\n\n")

	var commits chart.State[[]domain.CommitActivity]
	var metrics chart.State[*domain.PRMetrics]
	var summary usecase.Summary

	switch state.Kind() {
	case chart.KindLoading:
		commits = chart.Loading[[]domain.CommitActivity]()
		metrics = chart.Loading[*domain.PRMetrics]()
		summary = usecase.Summarize(nil, nil)
	case chart.KindFailed:
		commits = chart.Failed[[]domain.CommitActivity](state.Message())
		summary = usecase.Summarize(nil, nil)
	case chart.KindReady:
		snap := state.Data()
		commits = chart.Ready(snap.Commits)
		metrics = chart.Ready(snap.PRMetrics)
		summary = snap.Summary
	}

	b.WriteString(renderSummary(summary) + "\n")

	b.WriteString(sectionStyle.Render("Commit Activity") + "\n")
	b.WriteString(chart.RenderCommitActivity(commits) + "\n")

	// The PR section only exists once metrics are known or pending.
	if state.Kind() != chart.KindFailed {
		b.WriteString(sectionStyle.Render("Pull Request Analytics") + "\n")
		b.WriteString(chart.RenderPRMetrics(metrics) + "\n")
	}
	return b.String()
}

func renderSummary(s usecase.Summary) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		chart.RenderCard("Total Commits", strconv.Itoa(s.TotalCommits), "Last 30 days"),
		chart.RenderCard("Avg Merge Time", s.AvgMergeTime, "Pull requests"),
		chart.RenderCard("Approval Rate", s.ApprovalRate, "Pull requests"),
		chart.RenderCard("Active Contributors", strconv.Itoa(s.ActiveContributors), fmt.Sprintf("%.1f commits/day", s.AverageCommitsPerDay)),
	)
}
