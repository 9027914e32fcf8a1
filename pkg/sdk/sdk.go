// Package sdk provides a public Go API for releasing a package from its
// git repository without the interactive command line.
//
// Basic usage:
//
//	candidates, err := sdk.Candidates(sdk.CandidatesOptions{Path: "."})
//	fmt.Println(candidates[0].Version) // "1.2.4"
//
//	result, err := sdk.Release(ctx, sdk.Options{
//	    Path:      ".",
//	    Increment: "minor",
//	})
//	fmt.Println(result.Variables["Version"]) // "1.3.0"
//
// Release never prompts: the version comes from Version or Increment, and
// branch releases must set Yolo because they need a confirmation.
package sdk

import (
	"context"
	"io"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/app"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/config"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/output"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"github.com/rs/zerolog"
)

// ErrNoVersion is returned by Release when neither Version nor Increment is
// set and the configuration file names no increment either.
var ErrNoVersion = app.ErrNoVersion

// Options configures a release. Zero values leave the configuration file
// and the built-in defaults in place.
type Options struct {
	// Path is any directory inside the repository. Defaults to ".".
	Path string

	// ConfigPath is a release YAML config file. If empty, auto-detects
	// .github/release.yml, .release.yml or release.yml in the repo root.
	ConfigPath string

	// Version is the explicit version to publish, e.g. "2.0.0".
	Version string

	// Increment is applied to the manifest version when Version is empty:
	// patch, minor, major, prepatch, preminor, premajor or prerelease.
	Increment string

	// Preid is the prerelease identifier, e.g. "beta".
	Preid string

	// Registries lists the registries to publish to, in order.
	Registries []string

	// Access is "public" or "private"; needed on a first publish.
	Access string

	// Branch releases from a dedicated branch. "true" names it after the
	// version.
	Branch string

	// Yolo skips the repository checks and the quality gates.
	Yolo bool

	// PackageManager is yarn, npm or pnpm.
	PackageManager string

	// GitHubRelease creates the GitHub release through the API. Token
	// falls back to GITHUB_TOKEN.
	GitHubRelease bool
	Token         string

	// Output receives the release links and the success message.
	Output io.Writer

	// Logger receives the progress log. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Result describes a release run.
type Result struct {
	// State is the last state reached, "Done" on success.
	State string

	// Version is the published version.
	Version string

	// ReleaseURL links to the code-hosting release or its prefilled form.
	ReleaseURL string

	// Variables contains every output variable keyed by name: State, Name,
	// PreviousVersion, Version, Tag, Prerelease, FirstRelease, Branch,
	// Commit, Tagged, Registries, PullRequestUrl and ReleaseUrl.
	Variables map[string]string
}

// CandidatesOptions configures Candidates.
type CandidatesOptions struct {
	// Path is any directory inside the repository. Defaults to ".".
	Path string

	// ConfigPath is a release YAML config file, auto-detected if empty.
	ConfigPath string

	// Preid is the prerelease identifier, e.g. "beta".
	Preid string
}

// Candidate is one version the next release could publish.
type Candidate struct {
	// Kind is the increment name, e.g. "Patch" or "PreMinor".
	Kind string

	// Title is the label shown when choosing interactively, e.g. "Pre-minor".
	Title string

	// Version is the resulting version.
	Version string
}

// Candidates lists the versions the next release of the package could
// publish without changing anything.
func Candidates(opts CandidatesOptions) ([]Candidate, error) {
	overrides := &config.Config{}
	if opts.Preid != "" {
		overrides.Preid = &opts.Preid
	}

	_, choices, err := app.Candidates(opts.Path, opts.ConfigPath, overrides)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(choices))
	for i, c := range choices {
		candidates[i] = Candidate{Kind: c.Kind.String(), Title: c.Kind.Title(), Version: c.Version}
	}
	return candidates, nil
}

// Release runs the full release of the package. On failure the returned
// Result, when non-nil, reports how far the run got.
func Release(ctx context.Context, opts Options) (*Result, error) {
	overrides, err := overridesFrom(opts)
	if err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	appOpts := app.Options{
		Path:       opts.Path,
		ConfigPath: opts.ConfigPath,
		Overrides:  overrides,
		Version:    opts.Version,
		Logger:     logger,
		Token:      opts.Token,
	}
	if opts.Output != nil {
		appOpts.Reporter = output.NewConsole(opts.Output)
	}

	result, err := app.Release(ctx, appOpts)
	if result == nil {
		return nil, err
	}
	return newResult(result), err
}

func overridesFrom(opts Options) (*config.Config, error) {
	cfg := &config.Config{Registries: opts.Registries}

	if opts.Increment != "" {
		k, err := semver.ParseIncrementKind(opts.Increment)
		if err != nil {
			return nil, err
		}
		cfg.Increment = &k
	}
	if opts.Access != "" {
		a, err := release.ParseAccess(opts.Access)
		if err != nil {
			return nil, err
		}
		cfg.Access = &a
	}
	if opts.Branch != "" {
		b := release.ParseBranch(opts.Branch)
		cfg.Branch = &b
	}
	if opts.Preid != "" {
		cfg.Preid = &opts.Preid
	}
	if opts.PackageManager != "" {
		cfg.PackageManager = &opts.PackageManager
	}
	if opts.Yolo {
		cfg.Yolo = &opts.Yolo
	}
	if opts.GitHubRelease {
		cfg.GitHubRelease = &opts.GitHubRelease
	}
	return cfg, nil
}

func newResult(r *pipeline.Result) *Result {
	return &Result{
		State:      r.State.String(),
		Version:    r.Version,
		ReleaseURL: r.ReleaseURL,
		Variables:  output.GetVariables(r),
	}
}
