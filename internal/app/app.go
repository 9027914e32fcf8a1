// Package app assembles a release pipeline from a repository path and the
// layered configuration. The CLI and the public SDK both release through it.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/config"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/git"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/github"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/manifest"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pkgmgr"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/prompt"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/resolver"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"github.com/rs/zerolog"
)

// ErrNoVersion is returned by an unattended Release that has neither an
// explicit version nor a configured increment.
var ErrNoVersion = errors.New("a version or an increment is required")

// Options configures one release.
type Options struct {
	// Path is any directory inside the repository. Defaults to ".".
	Path string

	// ConfigPath is an explicit configuration file. Empty means the first
	// of config.DefaultFiles found in the repository root.
	ConfigPath string

	// Overrides is applied over the configuration file, typically the
	// command-line flags.
	Overrides *config.Config

	// Version is the explicit version argument, if any.
	Version string

	// Prompter answers the operator prompts. Without one the release is
	// unattended and needs a version or an increment.
	Prompter prompt.Provider

	// Reporter receives links and the success message.
	Reporter pipeline.Reporter

	// Logger is the base logger; its level is set from the configuration.
	Logger zerolog.Logger

	// Token, AppID and AppKeyPath authenticate API release creation.
	// Empty values fall back to the environment.
	Token      string
	AppID      int64
	AppKeyPath string

	// GitRunner and PackageRunner replace the external command runners.
	GitRunner     git.CommandRunner
	PackageRunner pkgmgr.Runner

	// Releaser replaces the GitHub API releaser.
	Releaser github.Releaser
}

// LoadConfig layers the defaults, the configuration file and overrides.
func LoadConfig(workDir, configPath string, overrides *config.Config) (*config.Config, error) {
	builder := config.NewBuilder()

	if configPath == "" {
		configPath = config.FindConfigFile(workDir)
	}
	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		builder.Add(fileCfg)
	}

	return builder.Add(overrides).Build()
}

// Release runs the release pipeline for the repository at opts.Path. The
// result is returned even when the run aborts.
func Release(ctx context.Context, opts Options) (*pipeline.Result, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	var gitOpts []git.Option
	if opts.GitRunner != nil {
		gitOpts = append(gitOpts, git.WithRunner(opts.GitRunner))
	}
	repo, err := git.Open(path, gitOpts...)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := LoadConfig(repo.WorkingDirectory(), opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(*cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	logger := opts.Logger.Level(level)

	manifestPath := *cfg.Manifest
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(repo.WorkingDirectory(), manifestPath)
	}

	client, err := pkgmgr.New(pkgmgr.Options{
		Name:   *cfg.PackageManager,
		Dir:    filepath.Dir(manifestPath),
		Runner: opts.PackageRunner,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	rc := cfg.Release(opts.Version)
	prompter := opts.Prompter
	if prompter == nil {
		if rc.Version == "" && rc.Increment == semver.IncrementNone {
			return nil, ErrNoVersion
		}
		prompter = prompt.Unattended{}
	}

	releaser := opts.Releaser
	if releaser == nil && rc.GitHubRelease {
		releaser, err = newReleaser(ctx, repo, cfg, opts)
		if err != nil {
			logger.Warn().Err(err).Msg("GitHub releases will be linked instead of created")
		}
	}

	p, err := pipeline.New(pipeline.Deps{
		Repo:           repo,
		Manifest:       manifest.NewFileStore(manifestPath, repo),
		PackageManager: client,
		Prompter:       prompter,
		Releaser:       releaser,
		Reporter:       opts.Reporter,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, rc)
}

// newReleaser authenticates against the API of the repository's host.
func newReleaser(ctx context.Context, repo git.Repository, cfg *config.Config, opts Options) (github.Releaser, error) {
	raw, err := repo.RemoteURL(*cfg.Remote)
	if err != nil {
		return nil, err
	}
	hosted, err := github.ParseRemoteURL(raw)
	if err != nil {
		return nil, err
	}

	client, err := github.NewClient(ctx, github.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    *cfg.GitHubURL,
		Owner:      hosted.Owner,
	})
	if err != nil {
		return nil, err
	}
	return github.NewAPIReleaser(client), nil
}

// Candidates lists the versions a release of the repository at path could
// publish, without changing anything.
func Candidates(path, configPath string, overrides *config.Config) (string, []release.VersionChoice, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("opening repository: %w", err)
	}
	cfg, err := LoadConfig(repo.WorkingDirectory(), configPath, overrides)
	if err != nil {
		return "", nil, fmt.Errorf("loading configuration: %w", err)
	}

	manifestPath := *cfg.Manifest
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(repo.WorkingDirectory(), manifestPath)
	}
	m, err := manifest.NewFileStore(manifestPath, repo).Read()
	if err != nil {
		return "", nil, err
	}

	current, err := semver.ParseStrict(m.Version)
	if err != nil {
		return "", nil, fmt.Errorf("manifest version: %w", err)
	}
	return m.Version, resolver.Candidates(current, *cfg.Preid), nil
}
