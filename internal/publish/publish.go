// Package publish publishes a released version to the configured registries,
// one at a time and in order.
package publish

import (
	"context"
	"fmt"
	"slices"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/manifest"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pkgmgr"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/rs/zerolog"
)

// GitHubRegistry is the symbolic name of the GitHub package registry.
const GitHubRegistry = "github"

// GitHubRegistryURL is the npm endpoint of the GitHub package registry.
const GitHubRegistryURL = "https://npm.pkg.github.com/"

// ResolveRegistry maps a symbolic registry name to the value written to
// publishConfig.registry. Other names are returned unchanged.
func ResolveRegistry(name string) string {
	if name == GitHubRegistry {
		return GitHubRegistryURL
	}
	return name
}

// UsesGitHubRegistry reports whether a release publishes to the GitHub
// registry, either because it is configured or because the manifest
// already points there. The GitHub registry tags releases itself.
func UsesGitHubRegistry(registries []string, m manifest.Manifest) bool {
	return slices.Contains(registries, GitHubRegistry) || m.Registry() == GitHubRegistryURL
}

// Publisher publishes through a package manager, pointing the manifest at
// each non-default registry for the duration of its publish.
type Publisher struct {
	store  manifest.Store
	client pkgmgr.Client
	logger zerolog.Logger
}

// New returns a Publisher.
func New(store manifest.Store, client pkgmgr.Client, logger zerolog.Logger) *Publisher {
	return &Publisher{store: store, client: client, logger: logger}
}

// Publish publishes cfg.Version to every registry in
// cfg.EffectiveRegistries(), in order. The first failure stops the loop;
// the returned slice lists the registries that were published to.
func (p *Publisher) Publish(ctx context.Context, cfg release.Config) ([]string, error) {
	var published []string
	for _, name := range cfg.EffectiveRegistries() {
		if err := ctx.Err(); err != nil {
			return published, err
		}
		live, err := p.publishOne(ctx, name, cfg)
		if live {
			published = append(published, name)
			p.logger.Info().Str("registry", name).Msgf("published %s", cfg.Version)
		}
		if err != nil {
			return published, err
		}
	}
	return published, nil
}

// publishOne reports whether the package reached the registry, which holds
// even when reverting the manifest afterwards fails.
func (p *Publisher) publishOne(ctx context.Context, name string, cfg release.Config) (live bool, err error) {
	registry := ResolveRegistry(name)
	p.logger.Debug().Str("registry", registry).Msg("publishing to registry")

	if registry != release.DefaultRegistry {
		if err := p.store.WritePublishConfig(registry); err != nil {
			return false, release.NewError(release.KindPublishFailure, name, "",
				fmt.Errorf("setting publishConfig.registry: %w", err))
		}
		defer func() {
			rerr := p.store.Revert()
			if rerr == nil {
				return
			}
			if err != nil {
				p.logger.Warn().Err(rerr).Msgf("could not revert %s", p.store.Path())
				return
			}
			err = fmt.Errorf("reverting publishConfig in %s: %w", p.store.Path(), rerr)
		}()
	}

	opts := pkgmgr.PublishOptions{Version: cfg.Version, Access: cfg.Access}
	if err := p.client.Publish(ctx, opts); err != nil {
		return false, release.NewError(release.KindPublishFailure, name, "", err)
	}
	return true, nil
}
