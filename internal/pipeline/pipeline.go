// Package pipeline sequences a release: precondition checks, version
// resolution, quality gates, the version commit, tagging, publishing and
// the release notes. Stages run one at a time; the first failure aborts
// the run without undoing earlier stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/bump"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/checks"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/gates"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/git"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/github"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/manifest"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/notes"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pkgmgr"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/prompt"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/publish"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/resolver"
	"github.com/rs/zerolog"
)

// ConfirmMessage is asked before a branch release is tagged and published.
const ConfirmMessage = "Proceed with publishing?"

// Reporter receives the messages meant for the operator rather than the log.
type Reporter interface {
	Link(label, url string)
	Success(message string)
}

// Deps are the collaborators of a run.
type Deps struct {
	Repo           git.Repository
	Manifest       manifest.Store
	PackageManager pkgmgr.Client
	Prompter       prompt.Provider

	// Summarizer defaults to a git log summarizer over Repo.
	Summarizer notes.Summarizer
	// Releaser creates the code-hosting release when the config asks for
	// it. Without one a prefilled "new release" link is reported instead.
	Releaser github.Releaser
	// Reporter defaults to discarding messages.
	Reporter Reporter
	Logger   zerolog.Logger
}

// Result describes what a run did. It is filled in as stages complete, so
// an aborted run reports how far it got.
type Result struct {
	State           release.State `json:"state"`
	Name            string        `json:"name"`
	PreviousVersion string        `json:"previousVersion"`
	Version         string        `json:"version,omitempty"`
	Tag             string        `json:"tag,omitempty"`
	Prerelease      bool          `json:"prerelease"`
	FirstRelease    bool          `json:"firstRelease"`
	Branch          string        `json:"branch,omitempty"`
	Commit          string        `json:"commit,omitempty"`
	Tagged          bool          `json:"tagged"`
	Registries      []string      `json:"registries,omitempty"`
	PullRequestURL  string        `json:"pullRequestUrl,omitempty"`
	ReleaseURL      string        `json:"releaseUrl,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// Pipeline runs releases against one set of collaborators.
type Pipeline struct {
	deps Deps
	log  zerolog.Logger
}

// New returns a Pipeline. Repo, Manifest, PackageManager and Prompter are
// required.
func New(deps Deps) (*Pipeline, error) {
	switch {
	case deps.Repo == nil:
		return nil, errors.New("pipeline: repository is required")
	case deps.Manifest == nil:
		return nil, errors.New("pipeline: manifest store is required")
	case deps.PackageManager == nil:
		return nil, errors.New("pipeline: package manager is required")
	case deps.Prompter == nil:
		return nil, errors.New("pipeline: prompt provider is required")
	}
	if deps.Summarizer == nil {
		deps.Summarizer = notes.NewGitSummarizer(deps.Repo)
	}
	if deps.Reporter == nil {
		deps.Reporter = discard{}
	}
	return &Pipeline{deps: deps, log: deps.Logger}, nil
}

// run holds the state of one release.
type run struct {
	*Pipeline
	cfg    release.Config
	result *Result
	m      manifest.Manifest
	repo   *github.Repo
}

// Run performs one release. The returned Result is never nil; its State is
// StateDone on success and StateAborted otherwise.
func (p *Pipeline) Run(ctx context.Context, cfg release.Config) (*Result, error) {
	r := &run{Pipeline: p, cfg: cfg, result: &Result{State: release.StateInit}}
	if err := r.execute(ctx); err != nil {
		r.result.State = release.StateAborted
		p.log.Debug().Err(err).Msg("release aborted")
		return r.result, err
	}
	return r.result, nil
}

func (r *run) advance(s release.State) {
	r.log.Debug().Stringer("from", r.result.State).Stringer("to", s).Msg("state")
	r.result.State = s
}

func (r *run) warn(err error) {
	r.log.Warn().Err(err).Send()
	r.result.Warnings = append(r.result.Warnings, err.Error())
}

func (r *run) execute(ctx context.Context) error {
	d := r.deps
	checker := checks.New(d.Repo, r.cfg.Remote, r.log)

	if err := r.checkoutMain(); err != nil {
		return err
	}

	m, err := d.Manifest.Read()
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	r.m = m
	r.result.Name = m.Name
	r.result.PreviousVersion = m.Version

	if !r.cfg.Yolo {
		if err := checker.Changes(ctx); err != nil {
			return err
		}
	}
	r.advance(release.StatePrecheckPassed)

	cfg, err := resolver.New(d.Prompter, r.log).Resolve(ctx, r.cfg, m.Version)
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.result.Version = cfg.Version
	r.result.Tag = cfg.TagName()
	r.result.Prerelease = cfg.IsPrerelease
	r.result.FirstRelease = cfg.IsVersionZero
	r.log.Info().Str("version", cfg.Version).Msgf("releasing %s", m.Name)

	if !cfg.Yolo {
		// The version prompt may have stayed open while the remote moved.
		if err := checker.Changes(ctx); err != nil {
			return err
		}
		if err := checker.Tags(ctx, cfg.TagName()); err != nil {
			return err
		}
	}
	r.advance(release.StateVersionResolved)

	if err := gates.New(d.PackageManager, r.log).Run(ctx, m, cfg); err != nil {
		return err
	}
	if !cfg.Yolo {
		// Gates can leave changes behind, e.g. updated snapshots.
		if err := checker.Changes(ctx); err != nil {
			return err
		}
	}
	r.advance(release.StateGatesPassed)

	if cfg.Branch.Enabled {
		name := cfg.BranchName()
		if err := d.Repo.CreateBranch(name); err != nil {
			return fmt.Errorf("creating release branch: %w", err)
		}
		r.cfg = cfg.WithBranchName(name)
		r.result.Branch = name
	}

	stage := bump.New(d.Repo, d.Manifest, r.log)
	sha, err := stage.Commit(ctx, r.cfg)
	r.result.Commit = sha
	if err != nil {
		return err
	}
	r.advance(release.StateCommitted)

	composed, err := notes.NewComposer(d.Summarizer).Compose(r.cfg, m.Version)
	if err != nil {
		r.warn(err)
	}
	r.result.Notes = composed.Body

	r.resolveRepo()

	if r.cfg.Branch.Enabled {
		if err := r.confirmBranch(ctx); err != nil {
			return err
		}
	}

	tagged, err := stage.Tag(ctx, r.cfg, m)
	r.result.Tagged = tagged
	if err != nil {
		return err
	}
	r.advance(release.StateTagged)

	published, err := publish.New(d.Manifest, d.PackageManager, r.log).Publish(ctx, r.cfg)
	r.result.Registries = published
	if err != nil {
		return err
	}
	r.advance(release.StatePublished)

	d.Reporter.Success(fmt.Sprintf("Published %s %s!", m.Name, r.cfg.Version))
	r.reportRelease(ctx, composed, sha)
	r.advance(release.StateDone)
	return nil
}

// checkoutMain switches to the main branch unless it is already checked out.
func (r *run) checkoutMain() error {
	mainBranch := r.cfg.MainBranch
	if mainBranch == "" {
		return nil
	}
	current, err := r.deps.Repo.CurrentBranch()
	if err != nil {
		return fmt.Errorf("reading current branch: %w", err)
	}
	if current == mainBranch {
		return nil
	}
	r.log.Debug().Str("branch", mainBranch).Msg("checking out main branch")
	if err := r.deps.Repo.CheckoutBranch(mainBranch); err != nil {
		return fmt.Errorf("checking out %s: %w", mainBranch, err)
	}
	return nil
}

// resolveRepo derives the code-hosting repository from the remote URL.
// Without one no links are reported.
func (r *run) resolveRepo() {
	remote := r.cfg.Remote
	if remote == "" {
		remote = "origin"
	}
	raw, err := r.deps.Repo.RemoteURL(remote)
	if err != nil {
		r.warn(err)
		return
	}
	repo, err := github.ParseRemoteURL(raw)
	if err != nil {
		r.log.Debug().Err(err).Msg("remote is not a hosted repository")
		return
	}
	r.log.Debug().Str("url", repo.WebURL()).Msg("repository")
	r.repo = &repo
}

// confirmBranch reports the pull request link for a branch release and,
// unless in yolo mode, asks before anything irreversible happens.
func (r *run) confirmBranch(ctx context.Context) error {
	if r.repo != nil {
		base := r.cfg.MainBranch
		if base == "" {
			base = "master"
		}
		r.result.PullRequestURL = r.repo.CompareURL(base, r.cfg.Branch.Name)
		r.deps.Reporter.Link("Create a pull request for this release!", r.result.PullRequestURL)
	}
	if r.cfg.Yolo {
		return nil
	}

	ok, err := r.deps.Prompter.Confirm(ctx, ConfirmMessage)
	if err != nil {
		return release.Cancelled("confirmation", err)
	}
	if !ok {
		return release.NewError(release.KindPromptCancelled, "confirmation", "", nil)
	}
	return nil
}

// reportRelease creates the code-hosting release through the API when
// configured, and otherwise reports a prefilled link to create it.
func (r *run) reportRelease(ctx context.Context, n notes.Notes, target string) {
	if r.repo == nil {
		return
	}

	if r.cfg.GitHubRelease && r.deps.Releaser != nil {
		link, err := r.deps.Releaser.CreateRelease(ctx, *r.repo, github.ReleaseRequest{
			Tag:        n.Tag,
			Target:     target,
			Title:      n.Title,
			Body:       n.Body,
			Prerelease: n.Prerelease,
		})
		if err == nil {
			r.result.ReleaseURL = link
			r.deps.Reporter.Link("GitHub release created!", link)
			return
		}
		r.warn(err)
	}

	r.result.ReleaseURL = r.repo.NewReleaseURL(n.Tag, n.Title, n.Body, n.Prerelease)
	r.log.Debug().Str("url", r.result.ReleaseURL).Msg("release URL")
	r.deps.Reporter.Link("Create a GitHub release for this tag!", r.result.ReleaseURL)
}

type discard struct{}

func (discard) Link(string, string) {}
func (discard) Success(string)      {}
