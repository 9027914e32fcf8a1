// Package git provides the version-control abstraction used by the release
// stages: a Repository interface, a go-git backed implementation that falls
// back to the git CLI for network operations, and a function-field mock.
package git

import (
	"strings"
	"time"
)

const (
	localBranchPrefix = "refs/heads/"
	tagRefPrefix      = "refs/tags/"
)

// TagRef returns the fully qualified reference name of a tag.
func TagRef(name string) string {
	return tagRefPrefix + name
}

// BranchRef returns the fully qualified reference name of a local branch.
func BranchRef(name string) string {
	return localBranchPrefix + name
}

// Commit represents a git commit.
type Commit struct {
	Sha     string
	Parents []string // parent SHAs; len > 1 means merge commit
	When    time.Time
	Author  string
	Message string
}

// IsMerge returns true if the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ShortSha returns the first 7 characters of the SHA.
func (c Commit) ShortSha() string {
	if len(c.Sha) >= 7 {
		return c.Sha[:7]
	}
	return c.Sha
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(subject)
}

// IsEmpty returns true if the commit has no SHA (zero value).
func (c Commit) IsEmpty() bool {
	return c.Sha == ""
}

// PushOptions configures a push.
type PushOptions struct {
	// Remote defaults to "origin".
	Remote string
	// Refspecs are passed to git push verbatim, e.g. "HEAD" or "refs/tags/1.0.0".
	Refspecs []string
	// SetUpstream records the pushed branch as the upstream (git push -u).
	SetUpstream bool
}

// Args returns the git push argument list.
func (o PushOptions) Args() []string {
	remote := o.Remote
	if remote == "" {
		remote = "origin"
	}
	args := []string{"push"}
	if o.SetUpstream {
		args = append(args, "-u")
	}
	args = append(args, remote)
	return append(args, o.Refspecs...)
}
