package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
		prWindow:      DefaultPRWindow,
		now:           func() time.Time { return fixedNow },
	}

	return gateway, server
}

func TestGitHubGateway_GetCommitFrequency(t *testing.T) {
	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.CommitActivity
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - groups commits per day with distinct authors",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/search/commits")
				assert.Contains(t, r.URL.Query().Get("q"), "org:acme author-date:2026-10-14..2026-10-16")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"total_count": 4, "items": [
					{"author": {"login": "bob"}, "commit": {"author": {"name": "Bob", "date": "2026-10-14T10:00:00Z"}}},
					{"author": {"login": "alice"}, "commit": {"author": {"name": "Alice", "date": "2026-10-14T11:00:00Z"}}},
					{"author": {"login": "alice"}, "commit": {"author": {"name": "Alice", "date": "2026-10-14T15:00:00Z"}}},
					{"commit": {"author": {"name": "Carol Unlinked", "date": "2026-10-16T08:00:00Z"}}}
				]}`)
			},
			expected: []domain.CommitActivity{
				{Date: "2026-10-14", Count: 3, Authors: []string{"alice", "bob"}},
				{Date: "2026-10-15", Count: 0, Authors: []string{}},
				{Date: "2026-10-16", Count: 1, Authors: []string{"Carol Unlinked"}},
			},
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to search commits with REST API",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()
			result, err := gateway.GetCommitFrequency(context.Background(), "acme", start, end)
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestGitHubGateway_GetPRMetrics(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       *domain.PRMetrics
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - derives merge, review, approval and size figures",
			// The mock JSON is "flattened" because the fields live in an inline fragment.
			responseBody: `{"data":{"search":{"pageInfo":{"hasNextPage":false,"endCursor":""},"edges":[
				{"node":{"__typename":"PullRequest","state":"MERGED","createdAt":"2026-10-01T00:00:00Z","mergedAt":"2026-10-01T10:00:00Z","additions":40,"deletions":10,
					"reviews":{"nodes":[{"state":"COMMENTED","submittedAt":"2026-10-01T04:00:00Z"},{"state":"APPROVED","submittedAt":"2026-10-01T02:00:00Z"}]}}},
				{"node":{"__typename":"PullRequest","state":"MERGED","createdAt":"2026-10-02T00:00:00Z","mergedAt":"2026-10-03T06:00:00Z","additions":600,"deletions":100,
					"reviews":{"nodes":[{"state":"APPROVED","submittedAt":"2026-10-02T06:00:00Z"}]}}},
				{"node":{"__typename":"PullRequest","state":"OPEN","createdAt":"2026-10-05T00:00:00Z","mergedAt":null,"additions":200,"deletions":50,
					"reviews":{"nodes":[]}}},
				{"node":{"__typename":"PullRequest","state":"CLOSED","createdAt":"2026-10-06T00:00:00Z","mergedAt":null,"additions":1500,"deletions":0,
					"reviews":{"nodes":[{"state":"CHANGES_REQUESTED","submittedAt":"2026-10-06T03:00:00Z"}]}}}
			]}}}`,
			expected: &domain.PRMetrics{
				TotalPRs:           4,
				MergedPRs:          2,
				OpenPRs:            1,
				AverageTimeToMerge: 20,
				AverageReviewTime:  3.67,
				ApprovalRate:       50,
				SizeDistribution:   domain.SizeDistribution{Small: 1, Medium: 1, Large: 1, XLarge: 1},
			},
		},
		{
			name:         "no pull requests - zero metrics",
			responseBody: `{"data":{"search":{"pageInfo":{"hasNextPage":false,"endCursor":""},"edges":[]}}}`,
			expected:     &domain.PRMetrics{},
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				// We inspect the raw body string to check the search query.
				assert.Contains(t, string(body), "org:acme is:pr created:2026-09-17..2026-10-17")

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			result, err := gateway.GetPRMetrics(context.Background(), "acme")

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestAddToBucket(t *testing.T) {
	var dist domain.SizeDistribution
	for _, lines := range []int{0, 99, 100, 499, 500, 999, 1000, 5000} {
		addToBucket(&dist, lines)
	}
	assert.Equal(t, domain.SizeDistribution{Small: 2, Medium: 2, Large: 2, XLarge: 2}, dist)
}
