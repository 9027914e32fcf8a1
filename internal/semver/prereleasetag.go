package semver

import (
	"strconv"
	"strings"
)

// PreReleaseTag represents the pre-release portion of a semantic version.
// The trailing numeric identifier, when present, is held in Number and
// everything before it in Name ("alpha.1" is Name "alpha", Number 1).
// Values are immutable; methods return copies.
type PreReleaseTag struct {
	Name   string
	Number *int64
}

// HasTag returns true when the pre-release tag has a name or number.
func (t PreReleaseTag) HasTag() bool {
	return t.Name != "" || t.Number != nil
}

// WithName returns a new PreReleaseTag with the given name.
func (t PreReleaseTag) WithName(name string) PreReleaseTag {
	return PreReleaseTag{Name: name, Number: t.Number}
}

// WithNumber returns a new PreReleaseTag with the given number.
func (t PreReleaseTag) WithNumber(n int64) PreReleaseTag {
	return PreReleaseTag{Name: t.Name, Number: &n}
}

// CompareTo compares two PreReleaseTags.
// Returns a negative value, zero, or a positive value.
// A stable version (no tag) is greater than a pre-release version.
// Tags are compared identifier by identifier over their dotted form.
func (t PreReleaseTag) CompareTo(other PreReleaseTag) int {
	if !t.HasTag() && !other.HasTag() {
		return 0
	}
	if !t.HasTag() {
		return 1 // stable > pre-release
	}
	if !other.HasTag() {
		return -1 // pre-release < stable
	}
	return compareIdentifiers(t.String(), other.String())
}

// compareIdentifiers compares dot-separated identifier lists. Numeric
// identifiers sort numerically and below alphanumeric ones; a shorter list
// sorts first when all shared identifiers are equal.
func compareIdentifiers(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aErr := strconv.ParseInt(as[i], 10, 64)
		bn, bErr := strconv.ParseInt(bs[i], 10, 64)
		switch {
		case aErr == nil && bErr == nil:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

// String returns the dotted pre-release string (e.g., "beta.4").
func (t PreReleaseTag) String() string {
	if !t.HasTag() {
		return ""
	}
	if t.Number == nil {
		return t.Name
	}
	if t.Name == "" {
		return strconv.FormatInt(*t.Number, 10)
	}
	return t.Name + "." + strconv.FormatInt(*t.Number, 10)
}
