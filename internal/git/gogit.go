package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git for local operations
// and the git CLI for remote ones, so the user's credential helpers and
// SSH agent apply to ls-remote and push.
type GoGitRepository struct {
	repo    *gogit.Repository
	workDir string
	runner  CommandRunner
}

// Option configures a GoGitRepository.
type Option func(*GoGitRepository)

// WithRunner replaces the git CLI runner used for remote operations.
func WithRunner(r CommandRunner) Option {
	return func(g *GoGitRepository) {
		g.runner = r
	}
}

// Open opens a git repository at the given path.
func Open(path string, opts ...Option) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	g := &GoGitRepository{
		repo:    r,
		workDir: wt.Filesystem.Root(),
		runner:  ExecRunner{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) CurrentBranch() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", nil
	}
	return ref.Name().Short(), nil
}

func (r *GoGitRepository) CheckoutBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("checking out %s: %w", name, err)
	}
	return nil
}

func (r *GoGitRepository) CreateBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("creating branch %s: %w", name, err)
	}
	return nil
}

func (r *GoGitRepository) WorkingTreeStatus() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	wt.Excludes = append(wt.Excludes, globalExcludes()...)

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("getting worktree status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}
	return status.String(), nil
}

func (r *GoGitRepository) HeadSha() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

func (r *GoGitRepository) IsAncestor(ancestor, descendant string) (bool, error) {
	a, err := r.repo.CommitObject(plumbing.NewHash(ancestor))
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading commit %s: %w", ancestor, err)
	}

	d, err := r.repo.CommitObject(plumbing.NewHash(descendant))
	if err != nil {
		return false, fmt.Errorf("loading commit %s: %w", descendant, err)
	}

	ok, err := a.IsAncestor(d)
	if err != nil {
		return false, fmt.Errorf("walking history of %s: %w", descendant, err)
	}
	return ok, nil
}

func (r *GoGitRepository) LocalTagExists(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.ReferenceName(TagRef(name)), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up tag %s: %w", name, err)
	}
	return true, nil
}

func (r *GoGitRepository) CommitFiles(message string, paths ...string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	for _, p := range paths {
		rel, err := r.relPath(p)
		if err != nil {
			return "", err
		}
		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			return "", fmt.Errorf("staging %s: %w", p, err)
		}
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return hash.String(), nil
}

func (r *GoGitRepository) CreateTag(name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}
	if _, err := r.repo.CreateTag(name, head.Hash(), nil); err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}
	return nil
}

func (r *GoGitRepository) RemoteURL(remote string) (string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("looking up remote %s: %w", remote, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remote)
	}
	return urls[0], nil
}

func (r *GoGitRepository) RestoreFile(path string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("loading HEAD commit: %w", err)
	}

	rel, err := r.relPath(path)
	if err != nil {
		return err
	}

	file, err := commit.File(filepath.ToSlash(rel))
	if err != nil {
		return fmt.Errorf("reading %s from HEAD: %w", path, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return fmt.Errorf("reading %s from HEAD: %w", path, err)
	}

	mode, err := file.Mode.ToOSFileMode()
	if err != nil {
		mode = 0o644
	}
	full := filepath.Join(r.workDir, rel)
	if err := os.WriteFile(full, []byte(contents), mode.Perm()); err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}
	return nil
}

// relPath returns path relative to the working directory. Absolute paths
// must lie inside it.
func (r *GoGitRepository) relPath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return path, nil
	}
	rel, err := filepath.Rel(r.workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the working directory", path)
	}
	return rel, nil
}

func (r *GoGitRepository) ResolveRevision(rev string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rev, err)
	}
	return hash.String(), nil
}

func (r *GoGitRepository) CommitLog(from, to string) ([]Commit, error) {
	toHash := plumbing.NewHash(to)

	exclude := map[plumbing.Hash]bool{}
	if from != "" {
		fromIter, err := r.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(from)})
		if err != nil {
			return nil, fmt.Errorf("getting commit log of %s: %w", from, err)
		}
		err = fromIter.ForEach(func(c *object.Commit) error {
			exclude[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("iterating commits of %s: %w", from, err)
		}
	}

	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  toHash,
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("getting commit log: %w", err)
	}

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if exclude[c.Hash] {
			return nil
		}
		commits = append(commits, convertCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}

	return commits, nil
}

func (r *GoGitRepository) RemoteHeadRef(ctx context.Context, remote string) (string, error) {
	out, err := r.runner.Run(ctx, r.workDir, "ls-remote", remote, "HEAD")
	if err != nil {
		return "", fmt.Errorf("reading HEAD of %s: %w", remote, err)
	}
	return parseLsRemote(out), nil
}

func (r *GoGitRepository) RemoteTagExists(ctx context.Context, remote, name string) (bool, error) {
	out, err := r.runner.Run(ctx, r.workDir, "ls-remote", remote, TagRef(name))
	if err != nil {
		return false, fmt.Errorf("listing remote tag %s: %w", name, err)
	}
	return out != "", nil
}

func (r *GoGitRepository) Push(ctx context.Context, opts PushOptions) (string, error) {
	out, err := r.runner.Run(ctx, r.workDir, opts.Args()...)
	if err != nil {
		return out, fmt.Errorf("pushing: %w", err)
	}
	return out, nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Sha:     c.Hash.String(),
		Parents: parents,
		When:    c.Committer.When,
		Author:  c.Author.Name,
		Message: c.Message,
	}
}
