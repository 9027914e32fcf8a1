// Package bump writes the resolved version into the manifest, commits and
// pushes it, and tags the release.
package bump

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/git"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/manifest"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/publish"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/rs/zerolog"
)

// Stage performs the version commit and tag. Tag uniqueness is checked
// before the stage runs and is not checked again here.
type Stage struct {
	repo   git.Repository
	store  manifest.Store
	logger zerolog.Logger
}

// New returns a Stage.
func New(repo git.Repository, store manifest.Store, logger zerolog.Logger) *Stage {
	return &Stage{repo: repo, store: store, logger: logger}
}

// Commit sets the manifest version to cfg.Version, commits only the
// manifest with the version as the message and pushes the branch, setting
// its upstream. Returns the version commit SHA.
func (s *Stage) Commit(ctx context.Context, cfg release.Config) (string, error) {
	if err := s.store.WriteVersion(cfg.Version); err != nil {
		return "", fmt.Errorf("updating manifest version: %w", err)
	}

	sha, err := s.repo.CommitFiles(cfg.Version, s.store.Path())
	if err != nil {
		return "", fmt.Errorf("committing version %s: %w", cfg.Version, err)
	}
	s.logger.Debug().Str("sha", sha).Msgf("committed %s", cfg.Version)

	out, err := s.repo.Push(ctx, git.PushOptions{
		Remote:      cfg.Remote,
		Refspecs:    []string{"HEAD"},
		SetUpstream: true,
	})
	s.logger.Debug().Str("output", out).Msg("push")
	if err != nil {
		return sha, fmt.Errorf("pushing version commit: %w", err)
	}
	return sha, nil
}

// Tag creates the release tag at HEAD and pushes it. Releases published to
// the GitHub registry are tagged by the registry, so nothing is done for
// them. m is the manifest as read before the release. Reports whether a
// tag was created.
func (s *Stage) Tag(ctx context.Context, cfg release.Config, m manifest.Manifest) (bool, error) {
	if publish.UsesGitHubRegistry(cfg.EffectiveRegistries(), m) {
		s.logger.Debug().Msg("GitHub registry creates the tag, skipping")
		return false, nil
	}

	tag := cfg.TagName()
	if err := s.repo.CreateTag(tag); err != nil {
		return false, err
	}
	out, err := s.repo.Push(ctx, git.PushOptions{
		Remote:   cfg.Remote,
		Refspecs: []string{git.TagRef(tag)},
	})
	s.logger.Debug().Str("output", out).Msg("push tag")
	if err != nil {
		return true, fmt.Errorf("pushing tag %s: %w", tag, err)
	}
	return true, nil
}
