// Package checks verifies repository and tag state before a release mutates
// anything. Checks never change the repository and stop at the first
// violation found.
package checks

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/git"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/rs/zerolog"
)

// Checker runs the precondition checks against one repository.
type Checker struct {
	repo   git.Repository
	remote string
	logger zerolog.Logger
}

// New returns a Checker for repo. remote defaults to "origin".
func New(repo git.Repository, remote string, logger zerolog.Logger) *Checker {
	if remote == "" {
		remote = "origin"
	}
	return &Checker{repo: repo, remote: remote, logger: logger}
}

// UncommittedChanges fails when the working tree has modified, staged or
// untracked entries.
func (c *Checker) UncommittedChanges() error {
	status, err := c.repo.WorkingTreeStatus()
	if err != nil {
		return fmt.Errorf("reading working tree status: %w", err)
	}
	c.logger.Debug().Str("status", status).Msg("working tree status")
	if status != "" {
		return release.NewError(release.KindUncommittedChanges, "", status, nil)
	}
	return nil
}

// RemoteChanges fails unless the commit the remote's HEAD points to is an
// ancestor of the local HEAD. A remote commit that was never fetched counts
// as a violation.
func (c *Checker) RemoteChanges(ctx context.Context) error {
	remoteRef, err := c.repo.RemoteHeadRef(ctx, c.remote)
	if err != nil {
		return fmt.Errorf("reading %s HEAD: %w", c.remote, err)
	}
	c.logger.Debug().Str("remote", c.remote).Str("ref", remoteRef).Msg("remote HEAD")
	if remoteRef == "" {
		// Nothing has been pushed yet.
		return nil
	}

	head, err := c.repo.HeadSha()
	if err != nil {
		return fmt.Errorf("resolving HEAD: %w", err)
	}
	ok, err := c.repo.IsAncestor(remoteRef, head)
	if err != nil {
		return fmt.Errorf("comparing HEAD with %s: %w", c.remote, err)
	}
	if !ok {
		return release.NewError(release.KindRemoteChanges, c.remote, remoteRef, nil)
	}
	return nil
}

// LocalTag fails when a local tag named tag exists.
func (c *Checker) LocalTag(tag string) error {
	exists, err := c.repo.LocalTagExists(tag)
	if err != nil {
		return fmt.Errorf("looking up local tag %s: %w", tag, err)
	}
	if exists {
		return release.NewError(release.KindLocalTagExists, tag, tag, nil)
	}
	return nil
}

// RemoteTag fails when refs/tags/<tag> exists on the remote.
func (c *Checker) RemoteTag(ctx context.Context, tag string) error {
	exists, err := c.repo.RemoteTagExists(ctx, c.remote, tag)
	if err != nil {
		return fmt.Errorf("looking up remote tag %s: %w", tag, err)
	}
	if exists {
		return release.NewError(release.KindRemoteTagExists, tag, git.TagRef(tag), nil)
	}
	return nil
}

// Changes runs the uncommitted and remote changes checks in that order.
func (c *Checker) Changes(ctx context.Context) error {
	if err := c.UncommittedChanges(); err != nil {
		return err
	}
	return c.RemoteChanges(ctx)
}

// Tags runs the local and remote tag checks for tag in that order. The local
// check runs first so an existing local tag is reported regardless of the
// remote.
func (c *Checker) Tags(ctx context.Context, tag string) error {
	if err := c.LocalTag(tag); err != nil {
		return err
	}
	return c.RemoteTag(ctx, tag)
}
