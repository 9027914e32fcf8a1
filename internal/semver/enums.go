// Package semver provides immutable semantic versioning types and the
// increment rules used to propose the next release version.
package semver

import (
	"fmt"
	"strings"
)

// IncrementKind names one of the standard version increments.
type IncrementKind int

const (
	IncrementNone IncrementKind = iota
	IncrementPatch
	IncrementMinor
	IncrementMajor
	IncrementPrePatch
	IncrementPreMinor
	IncrementPreMajor
	IncrementPreRelease
)

func (k IncrementKind) String() string {
	switch k {
	case IncrementNone:
		return "None"
	case IncrementPatch:
		return "Patch"
	case IncrementMinor:
		return "Minor"
	case IncrementMajor:
		return "Major"
	case IncrementPrePatch:
		return "PrePatch"
	case IncrementPreMinor:
		return "PreMinor"
	case IncrementPreMajor:
		return "PreMajor"
	case IncrementPreRelease:
		return "PreRelease"
	default:
		return "Unknown"
	}
}

// Title returns the label shown to an operator choosing a version.
func (k IncrementKind) Title() string {
	switch k {
	case IncrementPrePatch:
		return "Pre-patch"
	case IncrementPreMinor:
		return "Pre-minor"
	case IncrementPreMajor:
		return "Pre-major"
	case IncrementPreRelease:
		return "Pre-release"
	default:
		return k.String()
	}
}

// IsPreRelease returns true for the kinds that produce a pre-release version.
func (k IncrementKind) IsPreRelease() bool {
	switch k {
	case IncrementPrePatch, IncrementPreMinor, IncrementPreMajor, IncrementPreRelease:
		return true
	default:
		return false
	}
}

// ParseIncrementKind parses a kind name case-insensitively. Dashes are
// ignored, so "pre-patch", "prepatch" and "PrePatch" are equivalent.
func ParseIncrementKind(s string) (IncrementKind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "", "none":
		return IncrementNone, nil
	case "patch":
		return IncrementPatch, nil
	case "minor":
		return IncrementMinor, nil
	case "major":
		return IncrementMajor, nil
	case "prepatch":
		return IncrementPrePatch, nil
	case "preminor":
		return IncrementPreMinor, nil
	case "premajor":
		return IncrementPreMajor, nil
	case "prerelease":
		return IncrementPreRelease, nil
	default:
		return IncrementNone, fmt.Errorf("unknown increment kind %q", s)
	}
}

// MarshalText renders the kind name, e.g. in JSON output.
func (k IncrementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
