package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

// newTestClient returns a client pointed at a test server serving mux.
func newTestClient(t *testing.T, mux *http.ServeMux) *gh.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)
	return client
}

func TestResolveString_FlagTakesPrecedence(t *testing.T) {
	t.Setenv("TEST_VAR", "env_value")
	result := resolveString("flag_value", "TEST_VAR")
	require.Equal(t, "flag_value", result)
}

func TestResolveString_FallsBackToEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "env_value")
	result := resolveString("", "TEST_VAR")
	require.Equal(t, "env_value", result)
}

func TestResolveString_ReturnsEmptyWhenBothEmpty(t *testing.T) {
	os.Unsetenv("TEST_VAR_EMPTY")
	result := resolveString("", "TEST_VAR_EMPTY")
	require.Equal(t, "", result)
}

func TestNewClient_NoAuth(t *testing.T) {
	// Ensure no auth env vars are set.
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_APP_ID", "")
	t.Setenv("GH_APP_PRIVATE_KEY", "")

	_, err := NewClient(context.Background(), ClientConfig{})
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestNewClient_TokenAuth(t *testing.T) {
	client, err := NewClient(context.Background(), ClientConfig{Token: "ghp_test_token"})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_TokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_env_token")
	client, err := NewClient(context.Background(), ClientConfig{})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_TokenWithBaseURL(t *testing.T) {
	client, err := NewClient(context.Background(), ClientConfig{
		Token:   "ghp_test",
		BaseURL: "https://ghe.example.com/api/v3",
	})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_AppAuthMissingKey(t *testing.T) {
	// AppID without a key falls through to the no-credentials error.
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_APP_PRIVATE_KEY", "")

	_, err := NewClient(context.Background(), ClientConfig{AppID: 12345})
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestNewClient_AppAuthBadKeyFile(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	_, err := NewClient(context.Background(), ClientConfig{
		AppID:      12345,
		AppKeyPath: "/nonexistent/key.pem",
		Owner:      "testorg",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating GitHub App transport")
}

func TestNewClient_AppIDFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_APP_ID", "99999")
	t.Setenv("GH_APP_PRIVATE_KEY", "/nonexistent/key.pem")

	_, err := NewClient(context.Background(), ClientConfig{Owner: "testorg"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating GitHub App transport")
}

func TestFindInstallation_Found(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/app/installations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, []map[string]any{
			{
				"id":      int64(111),
				"account": map[string]any{"login": "other-org"},
			},
			{
				"id":      int64(222),
				"account": map[string]any{"login": "target-org"},
			},
		})
	})

	client := newTestClient(t, mux)

	id, err := findInstallation(context.Background(), client, "target-org")
	require.NoError(t, err)
	require.Equal(t, int64(222), id)
}

func TestFindInstallation_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/app/installations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, []map[string]any{
			{
				"id":      int64(111),
				"account": map[string]any{"login": "other-org"},
			},
		})
	})

	client := newTestClient(t, mux)

	_, err := findInstallation(context.Background(), client, "missing-org")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no GitHub App installation found")
}

func TestFindInstallation_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/app/installations", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	})

	client := newTestClient(t, mux)

	_, err := findInstallation(context.Background(), client, "any-org")
	require.Error(t, err)
	require.Contains(t, err.Error(), "listing GitHub App installations")
}

func TestNewClient_BaseURLFromEnv(t *testing.T) {
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3")
	client, err := NewClient(context.Background(), ClientConfig{Token: "ghp_test"})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_InvalidAppIDEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_APP_ID", "not-a-number")
	t.Setenv("GH_APP_PRIVATE_KEY", "")

	_, err := NewClient(context.Background(), ClientConfig{})
	require.ErrorIs(t, err, ErrNoCredentials)
}
