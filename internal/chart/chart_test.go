package chart

import (
	"strings"
	"testing"

	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCommitSeries(t *testing.T) {
	data := []domain.CommitActivity{
		{Date: "2026-10-01", Count: 3, Authors: []string{"alice", "bob"}},
		{Date: "2026-10-02T00:00:00Z", Count: 0, Authors: nil},
		{Date: "not-a-date", Count: 1, Authors: []string{"carol"}},
	}

	assert.Equal(t, []CommitPoint{
		{Label: "Oct 01", Commits: 3, Contributors: 2},
		{Label: "Oct 02", Commits: 0, Contributors: 0},
		{Label: "not-a-date", Commits: 1, Contributors: 1},
	}, CommitSeries(data))

	assert.Empty(t, CommitSeries(nil))
}

func TestSizeBars_OrderAndValues(t *testing.T) {
	m := domain.PRMetrics{SizeDistribution: domain.SizeDistribution{Small: 10, Medium: 5, Large: 2, XLarge: 1}}

	bars := SizeBars(m)

	if assert.Len(t, bars, 4) {
		assert.Equal(t, []int{10, 5, 2, 1}, []int{bars[0].Value, bars[1].Value, bars[2].Value, bars[3].Value})
		assert.Equal(t, "Small (<100 lines)", bars[0].Name)
		assert.Equal(t, "Medium (100-500)", bars[1].Name)
		assert.Equal(t, "Large (500-1000)", bars[2].Name)
		assert.Equal(t, "X-Large (>1000)", bars[3].Name)
		assert.Equal(t, ColorXLarge, bars[3].Color)
	}
}

func TestState(t *testing.T) {
	testCases := []struct {
		name    string
		state   State[[]int]
		kind    Kind
		message string
		data    []int
	}{
		{name: "loading", state: Loading[[]int](), kind: KindLoading},
		{name: "failed", state: Failed[[]int]("boom"), kind: KindFailed, message: "boom"},
		{name: "ready", state: Ready([]int{1, 2}), kind: KindReady, data: []int{1, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.state.Kind())
			assert.Equal(t, tc.message, tc.state.Message())
			assert.Equal(t, tc.data, tc.state.Data())
			assert.Equal(t, tc.name, tc.kind.String())
		})
	}
}

func TestRenderCommitActivity(t *testing.T) {
	testCases := []struct {
		name        string
		state       State[[]domain.CommitActivity]
		contains    []string
		notContains []string
	}{
		{
			name:     "loading",
			state:    Loading[[]domain.CommitActivity](),
			contains: []string{"Loading..."},
		},
		{
			name:        "error",
			state:       Failed[[]domain.CommitActivity]("Failed to load dashboard data"),
			contains:    []string{"Error loading data", "Failed to load dashboard data"},
			notContains: []string{"Commits"},
		},
		{
			name:     "empty",
			state:    Ready([]domain.CommitActivity{}),
			contains: []string{"No commit data available"},
		},
		{
			name: "populated",
			state: Ready([]domain.CommitActivity{
				{Date: "2026-10-01", Count: 4, Authors: []string{"a", "b"}},
				{Date: "2026-10-02", Count: 2, Authors: []string{"a"}},
			}),
			contains: []string{"Commits", "Contributors", "Oct 01", "Oct 02", "████████████████████████████████████████ 4"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := RenderCommitActivity(tc.state)
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderPRMetrics(t *testing.T) {
	metrics := &domain.PRMetrics{
		AverageTimeToMerge: 12.34,
		AverageReviewTime:  3.24,
		ApprovalRate:       91.6,
		SizeDistribution:   domain.SizeDistribution{Small: 10, Medium: 5, Large: 2, XLarge: 1},
	}

	out := RenderPRMetrics(Ready(metrics))
	for _, s := range []string{"Avg Time to Merge", "12.3h", "3.2h", "92%", "PR Size Distribution"} {
		assert.Contains(t, out, s)
	}

	// The four bars appear in bucket order.
	small := strings.Index(out, "Small (<100 lines)")
	medium := strings.Index(out, "Medium (100-500)")
	large := strings.Index(out, "Large (500-1000)")
	xlarge := strings.Index(out, "X-Large (>1000)")
	assert.True(t, small >= 0 && small < medium && medium < large && large < xlarge)

	assert.Contains(t, RenderPRMetrics(Ready[*domain.PRMetrics](nil)), "No PR metrics available")
	assert.Contains(t, RenderPRMetrics(Loading[*domain.PRMetrics]()), "Loading...")
	assert.Contains(t, RenderPRMetrics(Failed[*domain.PRMetrics]("nope")), "nope")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 10))
	assert.Equal(t, "", bar(5, 0))
	assert.Equal(t, strings.Repeat("█", maxBarWidth), bar(10, 10))
	assert.Equal(t, "█", bar(1, 1000))
}
