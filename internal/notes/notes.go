// Package notes composes the release description from the commit history
// between the previous release and the new one.
package notes

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/git"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
)

// Summary is a structured description of a commit range.
type Summary struct {
	// Description is a one-line description of the range.
	Description string
	// Markdown lists the commits in the range.
	Markdown string
}

// Summarizer summarizes the commits reachable from to but not from from.
// An empty from means the beginning of history.
type Summarizer interface {
	Summarize(from, to string) (Summary, error)
}

// Compile-time check that GitSummarizer implements Summarizer.
var _ Summarizer = (*GitSummarizer)(nil)

// GitSummarizer summarizes a range from the repository's commit log.
type GitSummarizer struct {
	repo git.Repository
}

// NewGitSummarizer returns a Summarizer reading repo.
func NewGitSummarizer(repo git.Repository) *GitSummarizer {
	return &GitSummarizer{repo: repo}
}

// Summarize lists the non-merge commits of the range, newest first.
func (s *GitSummarizer) Summarize(from, to string) (Summary, error) {
	toSha, err := s.repo.ResolveRevision(to)
	if err != nil {
		return Summary{}, err
	}
	var fromSha string
	if from != "" {
		if fromSha, err = s.repo.ResolveRevision(from); err != nil {
			return Summary{}, err
		}
	}

	commits, err := s.repo.CommitLog(fromSha, toSha)
	if err != nil {
		return Summary{}, err
	}

	var b strings.Builder
	n := 0
	for _, c := range commits {
		if c.IsMerge() {
			continue
		}
		n++
		fmt.Fprintf(&b, "- %s %s", c.ShortSha(), c.Subject())
		if c.Author != "" {
			fmt.Fprintf(&b, " (%s)", c.Author)
		}
		b.WriteByte('\n')
	}

	return Summary{
		Description: describe(n, from),
		Markdown:    strings.TrimSuffix(b.String(), "\n"),
	}, nil
}

func describe(n int, from string) string {
	noun := "commits"
	if n == 1 {
		noun = "commit"
	}
	if from == "" {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %s since %s", n, noun, from)
}

// Notes is a composed release description.
type Notes struct {
	Tag        string
	Title      string
	Body       string
	Prerelease bool
}

// Composer builds Notes for a release.
type Composer struct {
	summarizer Summarizer
}

// NewComposer returns a Composer using summarizer.
func NewComposer(summarizer Summarizer) *Composer {
	return &Composer{summarizer: summarizer}
}

// Compose builds the notes for cfg, summarizing from the tag of the
// previous version (the manifest version before the release) to HEAD. A
// first release summarizes the whole history and is described as
// "v<version>".
//
// A failure to read the history is returned as a CommitHistoryUnavailable
// error together with notes that have an empty body; callers log it and
// carry on.
func (c *Composer) Compose(cfg release.Config, previous string) (Notes, error) {
	n := Notes{
		Tag:        cfg.TagName(),
		Title:      cfg.TagName(),
		Prerelease: cfg.IsPrerelease,
	}

	from := ""
	if !cfg.IsVersionZero {
		from = cfg.TagPrefix + previous
	}

	summary, err := c.summarizer.Summarize(from, "HEAD")
	if err != nil {
		return n, release.NewError(release.KindCommitHistoryUnavailable, from, "", err)
	}

	description := summary.Description
	if cfg.IsVersionZero {
		description = "v" + cfg.Version
	}
	n.Body = description + ":\n\n" + summary.Markdown
	return n, nil
}

// MockSummarizer is a Summarizer backed by a function.
type MockSummarizer struct {
	SummarizeFunc func(from, to string) (Summary, error)
}

func (m *MockSummarizer) Summarize(from, to string) (Summary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(from, to)
	}
	return Summary{}, nil
}
