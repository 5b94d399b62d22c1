package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/naka-gawa/devdash/internal/chart"
	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/naka-gawa/devdash/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	snapshot *usecase.Snapshot
	err      error
	calls    int
}

func (s *stubLoader) Load(context.Context) (*usecase.Snapshot, error) {
	s.calls++
	return s.snapshot, s.err
}

func sampleSnapshot() *usecase.Snapshot {
	commits := []domain.CommitActivity{
		{Date: "2026-10-15", Count: 3, Authors: []string{"a", "b"}},
		{Date: "2026-10-16", Count: 5, Authors: []string{"b", "c"}},
	}
	metrics := &domain.PRMetrics{
		AverageTimeToMerge: 6.5,
		ApprovalRate:       90,
		SizeDistribution:   domain.SizeDistribution{Small: 10, Medium: 5, Large: 2, XLarge: 1},
	}
	return &usecase.Snapshot{
		TeamID:    "core",
		Commits:   commits,
		PRMetrics: metrics,
		Summary:   usecase.Summarize(commits, metrics),
	}
}

func TestModel_LoadsOnInit(t *testing.T) {
	loader := &stubLoader{snapshot: sampleSnapshot()}
	m := NewModel(context.Background(), loader)

	assert.Equal(t, chart.KindLoading, m.State().Kind())
	assert.Contains(t, m.View(), "Loading dashboard...")
	require.NotNil(t, m.Init())

	msg := m.loadCmd()()
	updated, cmd := m.Update(msg)
	assert.Nil(t, cmd)

	got := updated.(Model)
	assert.Equal(t, chart.KindReady, got.State().Kind())
	view := got.View()
	assert.Contains(t, view, "Total Commits")
	assert.Contains(t, view, "6.5h")
	assert.Contains(t, view, "90%")
	assert.Contains(t, view, "Pull Request Analytics")
	assert.Equal(t, 1, loader.calls)
}

func TestModel_FailedLoadShowsSingleMessage(t *testing.T) {
	loader := &stubLoader{err: &usecase.LoadError{}}
	m := NewModel(context.Background(), loader)

	updated, _ := m.Update(m.loadCmd()())
	got := updated.(Model)

	assert.Equal(t, chart.KindFailed, got.State().Kind())
	view := got.View()
	assert.Equal(t, 1, strings.Count(view, usecase.LoadErrorMessage))
	assert.Equal(t, 1, strings.Count(view, "Error loading data"))
	assert.NotContains(t, view, "Pull Request Analytics")
}

func TestModel_Keys(t *testing.T) {
	loader := &stubLoader{snapshot: sampleSnapshot()}
	m := NewModel(context.Background(), loader)

	// Reload is ignored while a load is in flight.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd)

	updated, _ := m.Update(m.loadCmd()())
	updated, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.NotNil(t, cmd)
	assert.Equal(t, chart.KindLoading, updated.(Model).State().Kind())

	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderDashboard_Loading(t *testing.T) {
	out := RenderDashboard(chart.Loading[*usecase.Snapshot]())
	assert.Contains(t, out, "Developer Productivity Dashboard")
	assert.Equal(t, 2, strings.Count(out, "Loading..."))
}
