package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pkgmgr"
	"github.com/rs/zerolog"
)

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build merges the overrides over the defaults and validates the result.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()
	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}
	normalize(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.Registries != nil {
		dst.Registries = slices.Clone(src.Registries)
	}
	mergePtr(&dst.Access, src.Access)
	mergePtr(&dst.Branch, src.Branch)
	mergePtr(&dst.Yolo, src.Yolo)
	mergePtr(&dst.LogLevel, src.LogLevel)
	mergePtr(&dst.Increment, src.Increment)
	mergePtr(&dst.Preid, src.Preid)
	mergePtr(&dst.PackageManager, src.PackageManager)
	mergePtr(&dst.Remote, src.Remote)
	mergePtr(&dst.MainBranch, src.MainBranch)
	mergePtr(&dst.TagPrefix, src.TagPrefix)
	mergePtr(&dst.LintScript, src.LintScript)
	mergePtr(&dst.TestScript, src.TestScript)
	mergePtr(&dst.Manifest, src.Manifest)
	mergePtr(&dst.GitHubRelease, src.GitHubRelease)
	mergePtr(&dst.GitHubURL, src.GitHubURL)
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// normalize trims list entries and lower-cases enum-like strings.
func normalize(cfg *Config) {
	registries := cfg.Registries[:0:0]
	for _, r := range cfg.Registries {
		if r = strings.TrimSpace(r); r != "" {
			registries = append(registries, r)
		}
	}
	cfg.Registries = registries

	*cfg.LogLevel = strings.ToLower(strings.TrimSpace(*cfg.LogLevel))
	*cfg.PackageManager = strings.ToLower(strings.TrimSpace(*cfg.PackageManager))
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if len(cfg.Registries) == 0 {
		return fmt.Errorf("registries must name at least one registry")
	}
	if _, err := zerolog.ParseLevel(*cfg.LogLevel); err != nil || *cfg.LogLevel == "" {
		return fmt.Errorf("invalid log-level %q", *cfg.LogLevel)
	}
	switch *cfg.PackageManager {
	case pkgmgr.Yarn, pkgmgr.NPM, pkgmgr.PNPM:
	default:
		return fmt.Errorf("invalid package-manager %q (expected yarn, npm or pnpm)", *cfg.PackageManager)
	}
	if strings.ContainsAny(*cfg.TagPrefix, " \t~^:?*[\\") {
		return fmt.Errorf("invalid tag-prefix %q", *cfg.TagPrefix)
	}
	if *cfg.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	return nil
}
