// Package pkgmgr wraps the JavaScript package manager that installs
// dependencies, runs manifest scripts and publishes the package.
package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/rs/zerolog"
)

// Supported package manager names.
const (
	Yarn = "yarn"
	NPM  = "npm"
	PNPM = "pnpm"
)

// Client is the package-manager collaborator of the release stages.
type Client interface {
	// Name returns the package manager binary name.
	Name() string
	// InstallAll installs every dependency. forceClean reinstalls from
	// scratch instead of reusing the existing dependency tree.
	InstallAll(ctx context.Context, forceClean bool) error
	// RunScript runs a script defined in the manifest.
	RunScript(ctx context.Context, name string) error
	// Publish publishes the package at its manifest version.
	Publish(ctx context.Context, opts PublishOptions) error
}

// PublishOptions configures one publish.
type PublishOptions struct {
	Version string
	Access  release.Access
}

// Options configures New.
type Options struct {
	// Name selects the package manager; empty means yarn.
	Name   string
	Dir    string
	Runner Runner
	Logger zerolog.Logger
}

// Compile-time check that CLI implements Client.
var _ Client = (*CLI)(nil)

// CLI drives a package manager through its command line.
type CLI struct {
	name   string
	dir    string
	runner Runner
	logger zerolog.Logger
}

// New returns a Client for the named package manager.
func New(opts Options) (*CLI, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Name))
	if name == "" {
		name = Yarn
	}
	switch name {
	case Yarn, NPM, PNPM:
	default:
		return nil, fmt.Errorf("unsupported package manager %q (expected yarn, npm or pnpm)", opts.Name)
	}

	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return &CLI{name: name, dir: opts.Dir, runner: runner, logger: opts.Logger}, nil
}

func (c *CLI) Name() string {
	return c.name
}

func (c *CLI) InstallAll(ctx context.Context, forceClean bool) error {
	return c.run(ctx, c.installArgs(forceClean)...)
}

func (c *CLI) RunScript(ctx context.Context, name string) error {
	return c.run(ctx, "run", name)
}

func (c *CLI) Publish(ctx context.Context, opts PublishOptions) error {
	return c.run(ctx, c.publishArgs(opts)...)
}

func (c *CLI) installArgs(forceClean bool) []string {
	switch c.name {
	case NPM:
		if forceClean {
			return []string{"ci"}
		}
		return []string{"install"}
	case PNPM:
		if forceClean {
			return []string{"install", "--force"}
		}
		return []string{"install"}
	default:
		if forceClean {
			return []string{"--force"}
		}
		return []string{"install"}
	}
}

func (c *CLI) publishArgs(opts PublishOptions) []string {
	args := []string{"publish"}
	switch c.name {
	case Yarn:
		// Without --new-version yarn prompts for the version to publish.
		if opts.Version != "" {
			args = append(args, "--new-version", opts.Version)
		}
	case PNPM:
		// The version commit has already been pushed from a possibly
		// non-default release branch.
		args = append(args, "--no-git-checks")
	}
	if opts.Access != release.AccessUnset {
		args = append(args, "--access", opts.Access.Flag())
	}
	return args
}

func (c *CLI) run(ctx context.Context, args ...string) error {
	c.logger.Debug().Str("dir", c.dir).Msgf("running %s %s", c.name, strings.Join(args, " "))
	return c.runner.Run(ctx, c.dir, c.name, args...)
}
