package github

import (
	"fmt"
	"net/url"
	"strings"
)

// Repo identifies a repository on a code-hosting server.
type Repo struct {
	Host  string
	Owner string
	Name  string
}

// ParseRemoteURL extracts the repository from a git remote URL. It accepts
// scp-like SSH ("git@github.com:owner/repo.git"), ssh://, git:// and
// http(s):// URLs, with or without the .git suffix and credentials.
func ParseRemoteURL(remote string) (Repo, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return Repo{}, fmt.Errorf("empty remote URL")
	}

	var host, path string
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err != nil {
			return Repo{}, fmt.Errorf("parsing remote URL %q: %w", remote, err)
		}
		host, path = u.Hostname(), u.Path
	} else {
		// scp-like syntax: [user@]host:path
		at := strings.LastIndex(remote, "@")
		hostPath := remote[at+1:]
		var ok bool
		host, path, ok = strings.Cut(hostPath, ":")
		if !ok {
			return Repo{}, fmt.Errorf("unsupported remote URL %q", remote)
		}
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	owner, name, ok := strings.Cut(path, "/")
	if !ok || host == "" || owner == "" || name == "" {
		return Repo{}, fmt.Errorf("unsupported remote URL %q", remote)
	}
	// Nested groups keep everything before the last segment as the owner.
	if i := strings.LastIndex(path, "/"); i > len(owner) {
		owner, name = path[:i], path[i+1:]
	}
	return Repo{Host: host, Owner: owner, Name: name}, nil
}

// WebURL returns the repository's https URL.
func (r Repo) WebURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Name
}

// FullName returns "owner/name".
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// CompareURL returns the page that opens a pull request from head into base.
func (r Repo) CompareURL(base, head string) string {
	return r.WebURL() + "/compare/" + url.PathEscape(base) + "..." + url.PathEscape(head)
}

// NewReleaseURL returns the prefilled "new release" page for tag.
func (r Repo) NewReleaseURL(tag, title, body string, prerelease bool) string {
	q := url.Values{}
	q.Set("tag", tag)
	if title != "" {
		q.Set("title", title)
	}
	if body != "" {
		q.Set("body", body)
	}
	if prerelease {
		q.Set("prerelease", "1")
	}
	return r.WebURL() + "/releases/new?" + q.Encode()
}
