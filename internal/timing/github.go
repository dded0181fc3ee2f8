// Package timing gathers the submission-time signals used for timing marks
// and feedback: the last git commit and GitHub accept/push analytics.
package timing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

//go:generate go tool mockgen -source github.go -destination mock_github_test.go -package timing

// ErrNoRepository is returned when the token or repository name needed for
// GitHub analytics is not available.
var ErrNoRepository = errors.New("missing GITHUB_TOKEN or GITHUB_REPOSITORY")

const (
	githubAccept     = "application/vnd.github+json"
	githubAPIVersion = "2022-11-28"

	// errorBodyLimit caps how much of an error response is echoed back.
	errorBodyLimit = 200
)

// Repository is the subset of the GitHub repository record labgrade reads.
type Repository struct {
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkflowRun is the subset of a GitHub Actions workflow run labgrade reads.
type WorkflowRun struct {
	ID        int64     `json:"id"`
	Event     string    `json:"event"`
	CreatedAt time.Time `json:"created_at"`
}

type workflowRunsPage struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// GitHubClient reads repository metadata from the GitHub REST API.
type GitHubClient interface {
	Repository(ctx context.Context, repo string) (*Repository, error)
	WorkflowRuns(ctx context.Context, repo string) ([]WorkflowRun, error)
}

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

// HTTPClient is the net/http implementation of GitHubClient.
type HTTPClient struct {
	baseURL string
	token   string
	perPage int
	http    *http.Client
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) HTTPClientOption {
	return func(h *HTTPClient) { h.http = c }
}

// WithPerPage sets the page size used for workflow runs.
func WithPerPage(n int) HTTPClientOption {
	return func(h *HTTPClient) {
		if n > 0 {
			h.perPage = n
		}
	}
}

// NewHTTPClient creates a client for the API at baseURL authenticated with
// token.
func NewHTTPClient(baseURL, token string, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		perPage: 100,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Repository fetches GET /repos/{repo}.
func (c *HTTPClient) Repository(ctx context.Context, repo string) (*Repository, error) {
	var r Repository
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s", c.baseURL, repo), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WorkflowRuns fetches the first page of GET /repos/{repo}/actions/runs.
func (c *HTTPClient) WorkflowRuns(ctx context.Context, repo string) ([]WorkflowRun, error) {
	u := fmt.Sprintf("%s/repos/%s/actions/runs?%s", c.baseURL, repo,
		url.Values{"per_page": {fmt.Sprint(c.perPage)}}.Encode())

	var page workflowRunsPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, err
	}
	return page.WorkflowRuns, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", u, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", githubAccept)
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &APIError{StatusCode: resp.StatusCode, URL: u, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", u, err)
	}
	return nil
}
