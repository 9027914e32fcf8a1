// Package gates runs the quality gates that must pass before a version is
// committed: a clean dependency install, then the lint and test scripts.
package gates

import (
	"context"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/manifest"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pkgmgr"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/rs/zerolog"
)

// Gate names as reported in QualityGateFailure errors.
const (
	Install = "install"
	Lint    = "lint"
	Test    = "test"
)

// Runner runs the gates through a package manager.
type Runner struct {
	client pkgmgr.Client
	logger zerolog.Logger
}

// New returns a Runner using client.
func New(client pkgmgr.Client, logger zerolog.Logger) *Runner {
	return &Runner{client: client, logger: logger}
}

// Run installs dependencies from scratch and runs the lint and test
// scripts. cfg.LintScript and cfg.TestScript override the script names;
// without an override a gate runs only when the manifest defines the
// script. Nothing runs in yolo mode.
func (r *Runner) Run(ctx context.Context, m manifest.Manifest, cfg release.Config) error {
	if cfg.Yolo {
		r.logger.Debug().Msg("yolo: skipping quality gates")
		return nil
	}

	r.logger.Info().Str("package-manager", r.client.Name()).Msg("installing dependencies")
	if err := r.client.InstallAll(ctx, true); err != nil {
		return release.NewError(release.KindQualityGateFailure, Install, "", err)
	}

	for _, gate := range []struct{ name, script string }{
		{Lint, scriptFor(m, cfg.LintScript, Lint)},
		{Test, scriptFor(m, cfg.TestScript, Test)},
	} {
		if gate.script == "" {
			r.logger.Debug().Msgf("no %s script, skipping", gate.name)
			continue
		}
		r.logger.Info().Str("script", gate.script).Msgf("running %s", gate.name)
		if err := r.client.RunScript(ctx, gate.script); err != nil {
			return release.NewError(release.KindQualityGateFailure, gate.name, "", err)
		}
	}
	return nil
}

func scriptFor(m manifest.Manifest, override, name string) string {
	if override != "" {
		return override
	}
	if m.HasScript(name) {
		return name
	}
	return ""
}
