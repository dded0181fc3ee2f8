package timing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/lab", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		require.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))
		_, _ = w.Write([]byte(`{"full_name":"org/lab","created_at":"2026-02-01T09:00:00Z"}`))
	})
	mux.HandleFunc("/repos/org/lab/actions/runs", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "100", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"total_count":2,"workflow_runs":[
			{"id":11,"event":"push","created_at":"2026-02-02T10:00:00Z"},
			{"id":12,"event":"schedule","created_at":"2026-02-02T11:00:00Z"}
		]}`))
	})
	mux.HandleFunc("/repos/org/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("x", 500), http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_Repository(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL+"/", "secret", WithHTTPClient(srv.Client()))

	repo, err := client.Repository(context.Background(), "org/lab")
	require.NoError(t, err)
	require.Equal(t, "org/lab", repo.FullName)
	require.Equal(t, at("2026-02-01T09:00:00Z"), repo.CreatedAt)
}

func TestHTTPClient_WorkflowRuns(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL, "secret", WithHTTPClient(srv.Client()))

	runs, err := client.WorkflowRuns(context.Background(), "org/lab")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, int64(11), runs[0].ID)
	require.Equal(t, "push", runs[0].Event)
}

func TestHTTPClient_ErrorStatus(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL, "secret", WithHTTPClient(srv.Client()))

	_, err := client.Repository(context.Background(), "org/missing")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Len(t, apiErr.Body, errorBodyLimit)
	require.True(t, strings.HasPrefix(err.Error(), "GitHub API error 404 for "+srv.URL+"/repos/org/missing: "))
}

func TestHTTPClient_CollectAnalytics(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL, "secret", WithHTTPClient(srv.Client()), WithPerPage(100))

	a, err := CollectAnalytics(context.Background(), client, "org/lab")
	require.NoError(t, err)
	require.Equal(t, 1, a.PushCount)
	require.Equal(t, at("2026-02-02T10:00:00Z"), a.FirstPush)

	minutes, ok := a.AcceptToFirstPush()
	require.True(t, ok)
	require.Equal(t, 1500.0, minutes)
}
