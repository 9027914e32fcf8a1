// Package github talks to the code-hosting side of a release: it derives
// web URLs from the git remote and, when credentials are available,
// creates the GitHub release through the API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// ErrNoCredentials is returned by NewClient when neither a token nor GitHub
// App credentials are configured.
var ErrNoCredentials = errors.New("no GitHub credentials: set GITHUB_TOKEN, use --token, or set GH_APP_ID and GH_APP_PRIVATE_KEY")

// ClientConfig holds the configuration for creating a GitHub API client.
type ClientConfig struct {
	// Token is a personal access token. Falls back to GITHUB_TOKEN.
	Token string

	// AppID is a GitHub App ID. Falls back to GH_APP_ID.
	AppID int64

	// AppKeyPath is the GitHub App private key PEM file.
	// Falls back to GH_APP_PRIVATE_KEY.
	AppKeyPath string

	// BaseURL is the API base URL of a GitHub Enterprise server.
	// Falls back to GITHUB_API_URL.
	BaseURL string

	// Owner is the account the App installation is looked up for.
	Owner string
}

// NewClient creates an authenticated GitHub API client.
// Token auth wins over App auth.
func NewClient(ctx context.Context, cfg ClientConfig) (*gh.Client, error) {
	baseURL := ResolveBaseURL(cfg.BaseURL)

	if token := resolveString(cfg.Token, "GITHUB_TOKEN"); token != "" {
		return newTokenClient(ctx, token, baseURL)
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	appKey := resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY")
	if appID != 0 && appKey != "" {
		return newAppClient(ctx, appID, appKey, cfg.Owner, baseURL)
	}

	return nil, ErrNoCredentials
}

func newTokenClient(ctx context.Context, token, baseURL string) (*gh.Client, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return withBaseURL(gh.NewClient(httpClient), baseURL)
}

func newAppClient(ctx context.Context, appID int64, keyPath, owner, baseURL string) (*gh.Client, error) {
	appTransport, err := ghinstallation.NewAppsTransportKeyFromFile(http.DefaultTransport, appID, keyPath)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		appTransport.BaseURL = baseURL
	}

	appClient, err := withBaseURL(gh.NewClient(&http.Client{Transport: appTransport}), baseURL)
	if err != nil {
		return nil, err
	}
	installationID, err := findInstallation(ctx, appClient, owner)
	if err != nil {
		return nil, err
	}

	installTransport, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, keyPath)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}
	if baseURL != "" {
		installTransport.BaseURL = baseURL
	}
	return withBaseURL(gh.NewClient(&http.Client{Transport: installTransport}), baseURL)
}

func withBaseURL(client *gh.Client, baseURL string) (*gh.Client, error) {
	if baseURL == "" {
		return client, nil
	}
	c, err := client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("setting enterprise URL: %w", err)
	}
	return c, nil
}

// findInstallation returns the ID of the App installation on owner.
func findInstallation(ctx context.Context, client *gh.Client, owner string) (int64, error) {
	opts := &gh.ListOptions{PerPage: 100}
	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("listing GitHub App installations: %w", err)
		}
		for _, inst := range installations {
			if inst.GetAccount().GetLogin() == owner {
				return inst.GetID(), nil
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return 0, fmt.Errorf("no GitHub App installation found for owner %q", owner)
}

// resolveString returns the flag value if non-empty, otherwise the env var value.
func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}

// ResolveBaseURL resolves the API base URL from the flag value or
// GITHUB_API_URL. Empty means github.com.
func ResolveBaseURL(flagValue string) string {
	return resolveString(flagValue, "GITHUB_API_URL")
}
