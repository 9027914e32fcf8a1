package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// ReleaseRequest describes a release to create.
type ReleaseRequest struct {
	Tag        string
	Target     string
	Title      string
	Body       string
	Prerelease bool
}

// Releaser creates code-hosting releases.
type Releaser interface {
	// CreateRelease creates the release and returns its web URL.
	CreateRelease(ctx context.Context, repo Repo, req ReleaseRequest) (string, error)
}

// Compile-time check that APIReleaser implements Releaser.
var _ Releaser = (*APIReleaser)(nil)

// APIReleaser creates releases through the GitHub REST API.
type APIReleaser struct {
	client *gh.Client
}

// NewAPIReleaser returns a Releaser using client.
func NewAPIReleaser(client *gh.Client) *APIReleaser {
	return &APIReleaser{client: client}
}

func (r *APIReleaser) CreateRelease(ctx context.Context, repo Repo, req ReleaseRequest) (string, error) {
	rel := &gh.RepositoryRelease{
		TagName:    gh.Ptr(req.Tag),
		Name:       gh.Ptr(req.Title),
		Body:       gh.Ptr(req.Body),
		Prerelease: gh.Ptr(req.Prerelease),
	}
	if req.Target != "" {
		rel.TargetCommitish = gh.Ptr(req.Target)
	}

	created, _, err := r.client.Repositories.CreateRelease(ctx, repo.Owner, repo.Name, rel)
	if err != nil {
		return "", fmt.Errorf("creating release %s in %s: %w", req.Tag, repo.FullName(), err)
	}
	return created.GetHTMLURL(), nil
}

// MockReleaser is a Releaser backed by a function.
type MockReleaser struct {
	CreateReleaseFunc func(context.Context, Repo, ReleaseRequest) (string, error)
}

func (m *MockReleaser) CreateRelease(ctx context.Context, repo Repo, req ReleaseRequest) (string, error) {
	if m.CreateReleaseFunc != nil {
		return m.CreateReleaseFunc(ctx, repo, req)
	}
	return repo.WebURL() + "/releases/tag/" + req.Tag, nil
}
