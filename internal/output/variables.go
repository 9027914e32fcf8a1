package output

import (
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pipeline"
)

// GetVariables flattens a release result into the variables printed by
// --output env and --show-variable.
func GetVariables(r *pipeline.Result) map[string]string {
	return map[string]string{
		"State":           r.State.String(),
		"Name":            r.Name,
		"PreviousVersion": r.PreviousVersion,
		"Version":         r.Version,
		"Tag":             r.Tag,
		"Prerelease":      strconv.FormatBool(r.Prerelease),
		"FirstRelease":    strconv.FormatBool(r.FirstRelease),
		"Branch":          r.Branch,
		"Commit":          r.Commit,
		"Tagged":          strconv.FormatBool(r.Tagged),
		"Registries":      strings.Join(r.Registries, ","),
		"PullRequestUrl":  r.PullRequestURL,
		"ReleaseUrl":      r.ReleaseURL,
	}
}
