// Package resolver decides the version a release publishes.
package resolver

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/prompt"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"github.com/rs/zerolog"
)

// tableKinds is the order choices are offered in.
var tableKinds = []semver.IncrementKind{
	semver.IncrementPatch,
	semver.IncrementMinor,
	semver.IncrementMajor,
	semver.IncrementPrePatch,
	semver.IncrementPreMinor,
	semver.IncrementPreMajor,
}

// Candidates returns the increment table for current. The pre-release
// entry is offered only when it continues an existing train, that is when
// it differs from the pre-patch entry.
func Candidates(current semver.SemanticVersion, preid string) []release.VersionChoice {
	choices := make([]release.VersionChoice, 0, len(tableKinds)+1)
	for _, k := range tableKinds {
		choices = append(choices, release.VersionChoice{
			Kind:    k,
			Version: current.Increment(k, preid).SemVer(),
		})
	}

	prePatch := current.Increment(semver.IncrementPrePatch, preid).SemVer()
	if pre := current.Increment(semver.IncrementPreRelease, preid).SemVer(); pre != prePatch {
		choices = append(choices, release.VersionChoice{Kind: semver.IncrementPreRelease, Version: pre})
	}
	return choices
}

// Resolver resolves the target version and, on a first release, the
// access level.
type Resolver struct {
	Prompter prompt.Provider
	Logger   zerolog.Logger
}

// New returns a Resolver asking p when a choice is needed.
func New(p prompt.Provider, logger zerolog.Logger) *Resolver {
	return &Resolver{Prompter: p, Logger: logger}
}

// Resolve returns cfg with Version, IsPrerelease, IsVersionZero and, when
// prompted for, Access set. current is the manifest's version.
//
// Precedence: an explicit cfg.Version, then cfg.Increment, then the prompt.
// An explicit version that does not increase current is accepted with a
// warning.
func (r *Resolver) Resolve(ctx context.Context, cfg release.Config, current string) (release.Config, error) {
	cur, err := semver.ParseStrict(current)
	if err != nil {
		return cfg, fmt.Errorf("manifest version: %w", err)
	}

	cfg, err = r.resolveVersion(ctx, cfg, cur)
	if err != nil {
		return cfg, err
	}

	cfg = cfg.WithVersionZero(cur.IsZero())
	if cfg.IsVersionZero {
		return r.resolveAccess(ctx, cfg)
	}
	return cfg, nil
}

func (r *Resolver) resolveVersion(ctx context.Context, cfg release.Config, cur semver.SemanticVersion) (release.Config, error) {
	if cfg.Version != "" {
		target, err := semver.ParseStrict(cfg.Version)
		if err != nil {
			return cfg, release.NewError(release.KindInvalidVersionArgument, cfg.Version, "", err)
		}
		switch c := target.CompareTo(cur); {
		case c < 0:
			r.Logger.Warn().Msgf("version %s is lower than the current version %s", target.FullSemVer(), cur.FullSemVer())
		case c == 0:
			r.Logger.Warn().Msgf("version %s is the same as the current version", target.FullSemVer())
		}
		return cfg.WithVersion(target.FullSemVer(), target.IsPreRelease()), nil
	}

	if cfg.Increment != semver.IncrementNone {
		next := cur.Increment(cfg.Increment, cfg.Preid)
		r.Logger.Debug().Msgf("%s increment of %s is %s", cfg.Increment, cur.SemVer(), next.SemVer())
		return cfg.WithVersion(next.SemVer(), next.IsPreRelease()), nil
	}

	if r.Prompter == nil {
		return cfg, fmt.Errorf("no version given and no prompt available")
	}
	choice, err := r.Prompter.SelectVersion(ctx, Candidates(cur, cfg.Preid))
	if err != nil {
		return cfg, release.Cancelled("version", err)
	}
	return cfg.WithVersion(choice.Version, choice.IsPrerelease()), nil
}

// resolveAccess asks for the access level of a first publish unless one is
// configured.
func (r *Resolver) resolveAccess(ctx context.Context, cfg release.Config) (release.Config, error) {
	if cfg.Access != release.AccessUnset || r.Prompter == nil {
		return cfg, nil
	}
	access, err := r.Prompter.SelectAccess(ctx)
	if err != nil {
		return cfg, release.Cancelled("access", err)
	}
	return cfg.WithAccess(access), nil
}
