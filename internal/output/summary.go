package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
)

const arrowPrefix = "→"

// WriteSummary writes a plain-text account of a release run to w.
func WriteSummary(w io.Writer, r *pipeline.Result) error {
	fmt.Fprintf(w, "Package:  %s\n", r.Name)
	version := r.Version
	if version == "" {
		version = "(unresolved)"
	}
	fmt.Fprintf(w, "Version:  %s %s %s\n", r.PreviousVersion, arrowPrefix, version)
	fmt.Fprintf(w, "State:    %s\n", r.State)

	if r.Branch != "" {
		fmt.Fprintf(w, "Branch:   %s\n", r.Branch)
	}
	if r.Commit != "" {
		fmt.Fprintf(w, "Commit:   %s\n", shortSha(r.Commit))
	}
	if r.Tagged {
		fmt.Fprintf(w, "Tag:      %s\n", r.Tag)
	}
	if len(r.Registries) > 0 {
		fmt.Fprintf(w, "Registry: %s\n", strings.Join(r.Registries, ", "))
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", arrowPrefix, warning)
		}
	}

	if r.State == release.StateAborted && r.Commit != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "The version commit was pushed before the release aborted.")
		fmt.Fprintln(w, "Finish or revert it by hand; nothing is rolled back.")
	}
	return nil
}

// WriteCandidates writes the versions a release of current could publish.
func WriteCandidates(w io.Writer, current string, choices []release.VersionChoice) error {
	fmt.Fprintf(w, "Current: %s\n\n", current)
	for _, c := range choices {
		if _, err := fmt.Fprintf(w, "  %-12s %s %s\n", c.Kind.Title(), arrowPrefix, c.Version); err != nil {
			return err
		}
	}
	return nil
}

// CandidateVariables returns the candidate table keyed by increment kind.
func CandidateVariables(current string, choices []release.VersionChoice) map[string]string {
	vars := map[string]string{"Current": current}
	for _, c := range choices {
		vars[c.Kind.String()] = c.Version
	}
	return vars
}

func shortSha(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
