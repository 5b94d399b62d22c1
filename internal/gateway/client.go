package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/naka-gawa/devdash/internal/domain"
	"github.com/naka-gawa/devdash/internal/session"
)

// isoLayout matches JavaScript's Date.toISOString, which the API expects.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

const defaultSprintVelocityLimit = 6

// MetricsFetcher is the data the dashboard needs. Both the API client and the
// direct GitHub gateway implement it.
type MetricsFetcher interface {
	GetCommitFrequency(ctx context.Context, teamID string, start, end time.Time) ([]domain.CommitActivity, error)
	GetPRMetrics(ctx context.Context, teamID string) (*domain.PRMetrics, error)
}

// APIClient is the typed client for the productivity API. Every request
// passes through the same middleware chain: request ID, bearer token,
// response logging, and session expiry.
type APIClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	store      session.Store
	logger     *log.Logger
}

var _ MetricsFetcher = (*APIClient)(nil)

type clientOptions struct {
	timeout    time.Duration
	logger     *log.Logger
	redirector Redirector
	transport  http.RoundTripper
}

// Option configures an APIClient.
type Option func(*clientOptions)

// WithTimeout sets the wall-clock limit per request. The default is 30s.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithRedirector sets what happens after the session is torn down on a 401.
func WithRedirector(r Redirector) Option {
	return func(o *clientOptions) { o.redirector = r }
}

// WithTransport replaces the base transport under the middleware chain.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// NewAPIClient builds a client rooted at baseURL that reads its session from store.
func NewAPIClient(baseURL string, store session.Store, opts ...Option) (*APIClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host are required", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	o := clientOptions{
		timeout: 30 * time.Second,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&o)
	}

	chain := &Chain{
		Base: o.transport,
		Request: []RequestHook{
			RequestID(),
			BearerAuth(session.NewTokenSource(store)),
		},
		Response: []ResponseHook{
			LogResponses(o.logger),
			SessionExpiry(store, o.redirector),
		},
	}

	return &APIClient{
		baseURL: u,
		httpClient: &http.Client{
			Timeout:   o.timeout,
			Transport: chain,
		},
		store:  store,
		logger: o.logger,
	}, nil
}

// do issues one request and decodes a JSON body into out when out is non-nil.
// Path elements are already escaped.
// Transport errors are returned untouched; non-2xx responses become *APIError.
func (c *APIClient) do(ctx context.Context, method string, path []string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, u.Path, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, u.Path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{
			Method:     method,
			Path:       u.Path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(bytes.TrimSpace(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, u.Path, err)
	}
	return nil
}

func teamQuery(teamID string) url.Values {
	return url.Values{"team_id": {teamID}}
}

func windowQuery(teamID string, start, end time.Time) url.Values {
	q := teamQuery(teamID)
	q.Set("start_date", start.UTC().Format(isoLayout))
	q.Set("end_date", end.UTC().Format(isoLayout))
	return q
}

func setLimit(q url.Values, limit int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

// Authentication

func (c *APIClient) GetAuthorizationURL(ctx context.Context, provider domain.Provider, redirectURI string) (*domain.AuthorizationURL, error) {
	var out domain.AuthorizationURL
	q := url.Values{"redirect_uri": {redirectURI}}
	if err := c.do(ctx, http.MethodGet, []string{"auth", url.PathEscape(string(provider)), "authorize"}, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HandleOAuthCallback exchanges the provider's code for an API session and
// persists the returned token.
func (c *APIClient) HandleOAuthCallback(ctx context.Context, code, state string, provider domain.Provider) (*domain.AuthResponse, error) {
	body := map[string]string{
		"code":     code,
		"state":    state,
		"provider": string(provider),
	}
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, []string{"auth", "callback"}, nil, body, &out); err != nil {
		return nil, err
	}
	if _, err := session.Save(c.store, &out); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	c.logger.Printf("Signed in as %s via %s", out.User.Username, provider)
	return &out, nil
}

func (c *APIClient) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, []string{"auth", "me"}, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session server-side, then drops the local token.
func (c *APIClient) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, []string{"auth", "logout"}, nil, nil, nil); err != nil {
		return err
	}
	return session.Clear(c.store)
}

// RefreshToken trades the current token for a fresh one and persists it.
func (c *APIClient) RefreshToken(ctx context.Context) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, []string{"auth", "refresh"}, nil, nil, &out); err != nil {
		return nil, err
	}
	if _, err := session.Save(c.store, &out); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &out, nil
}

// Metrics

func (c *APIClient) GetCommitFrequency(ctx context.Context, teamID string, start, end time.Time) ([]domain.CommitActivity, error) {
	var out []domain.CommitActivity
	if err := c.do(ctx, http.MethodGet, []string{"metrics", "commit_frequency"}, windowQuery(teamID, start, end), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) GetPRVelocity(ctx context.Context, teamID string, start, end time.Time) (*domain.MetricData, error) {
	var out domain.MetricData
	if err := c.do(ctx, http.MethodGet, []string{"metrics", "pr_velocity"}, windowQuery(teamID, start, end), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) GetPRMetrics(ctx context.Context, teamID string) (*domain.PRMetrics, error) {
	var out domain.PRMetrics
	if err := c.do(ctx, http.MethodGet, []string{"metrics", "pr_analytics"}, teamQuery(teamID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPullRequests lists pull requests. An empty state and a non-positive
// limit are left off the query.
func (c *APIClient) GetPullRequests(ctx context.Context, teamID, state string, limit int) ([]domain.PullRequest, error) {
	q := teamQuery(teamID)
	if state != "" {
		q.Set("state", state)
	}
	setLimit(q, limit)

	var out []domain.PullRequest
	if err := c.do(ctx, http.MethodGet, []string{"pull_requests"}, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Sprints

func (c *APIClient) GetSprints(ctx context.Context, teamID string) ([]domain.Sprint, error) {
	var out []domain.Sprint
	if err := c.do(ctx, http.MethodGet, []string{"sprints"}, teamQuery(teamID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSprintVelocity returns the most recent sprints' velocity, six by default.
func (c *APIClient) GetSprintVelocity(ctx context.Context, teamID string, limit int) ([]domain.SprintVelocity, error) {
	if limit <= 0 {
		limit = defaultSprintVelocityLimit
	}
	q := teamQuery(teamID)
	setLimit(q, limit)

	var out []domain.SprintVelocity
	if err := c.do(ctx, http.MethodGet, []string{"sprints", "velocity"}, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CreateSprint(ctx context.Context, sprint domain.SprintInput) (*domain.Sprint, error) {
	var out domain.Sprint
	if err := c.do(ctx, http.MethodPost, []string{"sprints"}, nil, sprint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateSprint(ctx context.Context, sprintID string, updates domain.SprintUpdate) (*domain.Sprint, error) {
	var out domain.Sprint
	if err := c.do(ctx, http.MethodPut, []string{"sprints", url.PathEscape(sprintID)}, nil, updates, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AI insights

func (c *APIClient) GetAIInsights(ctx context.Context, teamID string, category domain.InsightCategory) ([]domain.AIInsight, error) {
	q := teamQuery(teamID)
	if category != "" {
		q.Set("category", string(category))
	}

	var out []domain.AIInsight
	if err := c.do(ctx, http.MethodGet, []string{"insights"}, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) GenerateInsights(ctx context.Context, teamID string) ([]domain.AIInsight, error) {
	body := map[string]string{"team_id": teamID}
	var out []domain.AIInsight
	if err := c.do(ctx, http.MethodPost, []string{"insights", "generate"}, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Contributors

func (c *APIClient) GetContributors(ctx context.Context, teamID string, limit int) ([]domain.Contributor, error) {
	q := teamQuery(teamID)
	setLimit(q, limit)

	var out []domain.Contributor
	if err := c.do(ctx, http.MethodGet, []string{"contributors"}, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
