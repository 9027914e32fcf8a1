package release

import "github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"

// VersionChoice is one entry of the increment table offered to the operator.
type VersionChoice struct {
	Kind    semver.IncrementKind `json:"kind"`
	Version string               `json:"version"`
}

// IsPrerelease reports whether choosing this entry produces a pre-release.
func (c VersionChoice) IsPrerelease() bool {
	return c.Kind.IsPreRelease()
}

// Label returns the kind title, e.g. "Pre-patch".
func (c VersionChoice) Label() string {
	return c.Kind.Title()
}
