package semver

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var versionRegex = regexp.MustCompile(
	`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([^+]*))?(?:\+(.*))?$`,
)

// strictRegex is the SemVer 2.0.0 grammar: three numeric fields without
// leading zeros, dot-separated pre-release identifiers, optional build.
var strictRegex = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`,
)

// SemanticVersion represents a semantic version.
// Values are immutable; methods return copies.
type SemanticVersion struct {
	Major         int64
	Minor         int64
	Patch         int64
	PreReleaseTag PreReleaseTag
	BuildMetaData string
}

// TryParse attempts to parse a version string with an optional tag prefix.
// Returns the parsed version and true if successful.
func TryParse(s, tagPrefix string) (SemanticVersion, bool) {
	v, err := Parse(s, tagPrefix)
	if err != nil {
		return SemanticVersion{}, false
	}
	return v, true
}

// Parse leniently parses a version string with an optional literal tag prefix.
// Missing minor and patch fields default to zero.
func Parse(s, tagPrefix string) (SemanticVersion, error) {
	remaining := s

	if tagPrefix != "" {
		if !strings.HasPrefix(remaining, tagPrefix) {
			return SemanticVersion{}, errors.New("version string does not match tag prefix: " + s)
		}
		remaining = remaining[len(tagPrefix):]
	}

	matches := versionRegex.FindStringSubmatch(remaining)
	if matches == nil {
		return SemanticVersion{}, errors.New("invalid version format: " + s)
	}

	var v SemanticVersion

	major, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return SemanticVersion{}, errors.New("invalid major version: " + matches[1])
	}
	v.Major = major

	if matches[2] != "" {
		minor, err := strconv.ParseInt(matches[2], 10, 64)
		if err != nil {
			return SemanticVersion{}, errors.New("invalid minor version: " + matches[2])
		}
		v.Minor = minor
	}

	if matches[3] != "" {
		patch, err := strconv.ParseInt(matches[3], 10, 64)
		if err != nil {
			return SemanticVersion{}, errors.New("invalid patch version: " + matches[3])
		}
		v.Patch = patch
	}

	if matches[4] != "" {
		v.PreReleaseTag = parsePreReleaseTag(matches[4])
	}
	v.BuildMetaData = matches[5]

	return v, nil
}

// ParseStrict parses a full MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD] version.
// A single leading "v" or "=" is tolerated and dropped.
func ParseStrict(s string) (SemanticVersion, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "=")
	trimmed = strings.TrimPrefix(trimmed, "v")

	if !strictRegex.MatchString(trimmed) {
		return SemanticVersion{}, errors.New("invalid semantic version: " + s)
	}
	return Parse(trimmed, "")
}

// IsValid reports whether s is a strict semantic version.
func IsValid(s string) bool {
	_, err := ParseStrict(s)
	return err == nil
}

// parsePreReleaseTag parses a pre-release tag string into a PreReleaseTag.
// Handles formats like "beta.4", "beta", "4", "alpha.1".
func parsePreReleaseTag(s string) PreReleaseTag {
	if s == "" {
		return PreReleaseTag{}
	}

	// Try splitting on the last dot
	lastDot := strings.LastIndex(s, ".")
	if lastDot >= 0 {
		name := s[:lastDot]
		numStr := s[lastDot+1:]
		if num, err := strconv.ParseInt(numStr, 10, 64); err == nil {
			return PreReleaseTag{Name: name, Number: &num}
		}
	}

	// Try parsing the whole string as a number
	if num, err := strconv.ParseInt(s, 10, 64); err == nil {
		return PreReleaseTag{Number: &num}
	}

	// It's just a name
	return PreReleaseTag{Name: s}
}

// CompareTo compares two SemanticVersions.
// Returns a negative value, zero, or a positive value.
// Build metadata is not considered in comparisons.
func (v SemanticVersion) CompareTo(other SemanticVersion) int {
	if v.Major != other.Major {
		if v.Major > other.Major {
			return 1
		}
		return -1
	}

	if v.Minor != other.Minor {
		if v.Minor > other.Minor {
			return 1
		}
		return -1
	}

	if v.Patch != other.Patch {
		if v.Patch > other.Patch {
			return 1
		}
		return -1
	}

	return v.PreReleaseTag.CompareTo(other.PreReleaseTag)
}

// IsPreRelease returns true when the version carries a pre-release tag.
func (v SemanticVersion) IsPreRelease() bool {
	return v.PreReleaseTag.HasTag()
}

// IsZero returns true for 0.0.0 without a pre-release tag.
func (v SemanticVersion) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && !v.IsPreRelease()
}

// Increment returns the next version for the given kind using npm's
// increment rules. A stable bump of a pre-release drops the tag when the
// pre-release already targets that field (1.3.0-0 minor is 1.3.0).
// preid names the pre-release train for the Pre* kinds; empty means a
// purely numeric tag.
func (v SemanticVersion) Increment(kind IncrementKind, preid string) SemanticVersion {
	switch kind {
	case IncrementMajor:
		if v.Minor != 0 || v.Patch != 0 || !v.IsPreRelease() {
			return SemanticVersion{Major: v.Major + 1}
		}
		return SemanticVersion{Major: v.Major}
	case IncrementMinor:
		if v.Patch != 0 || !v.IsPreRelease() {
			return SemanticVersion{Major: v.Major, Minor: v.Minor + 1}
		}
		return SemanticVersion{Major: v.Major, Minor: v.Minor}
	case IncrementPatch:
		if !v.IsPreRelease() {
			return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
		}
		return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	case IncrementPreMajor:
		return SemanticVersion{Major: v.Major + 1}.incrementPreRelease(preid)
	case IncrementPreMinor:
		return SemanticVersion{Major: v.Major, Minor: v.Minor + 1}.incrementPreRelease(preid)
	case IncrementPrePatch:
		return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}.incrementPreRelease(preid)
	case IncrementPreRelease:
		if !v.IsPreRelease() {
			return v.Increment(IncrementPrePatch, preid)
		}
		return v.WithBuildMetaData("").incrementPreRelease(preid)
	default:
		return v
	}
}

// incrementPreRelease starts or continues the pre-release train. The
// rightmost numeric identifier is bumped, or 0 is appended when there is
// none. A preid that does not lead the tag restarts the train at <preid>.0.
func (v SemanticVersion) incrementPreRelease(preid string) SemanticVersion {
	var ids []string
	if tag := v.PreReleaseTag.String(); tag != "" {
		ids = strings.Split(tag, ".")
	}

	bumped := false
	for i := len(ids) - 1; i >= 0; i-- {
		if n, err := strconv.ParseInt(ids[i], 10, 64); err == nil {
			ids[i] = strconv.FormatInt(n+1, 10)
			bumped = true
			break
		}
	}
	if !bumped {
		ids = append(ids, "0")
	}

	if preid != "" && (ids[0] != preid || len(ids) < 2 || !isNumeric(ids[1])) {
		ids = []string{preid, "0"}
	}

	return v.WithPreReleaseTag(parsePreReleaseTag(strings.Join(ids, ".")))
}

func isNumeric(id string) bool {
	_, err := strconv.ParseInt(id, 10, 64)
	return err == nil
}

// WithPreReleaseTag returns a new SemanticVersion with the given pre-release tag.
func (v SemanticVersion) WithPreReleaseTag(tag PreReleaseTag) SemanticVersion {
	return SemanticVersion{
		Major:         v.Major,
		Minor:         v.Minor,
		Patch:         v.Patch,
		PreReleaseTag: tag,
		BuildMetaData: v.BuildMetaData,
	}
}

// WithBuildMetaData returns a new SemanticVersion with the given build metadata.
func (v SemanticVersion) WithBuildMetaData(meta string) SemanticVersion {
	return SemanticVersion{
		Major:         v.Major,
		Minor:         v.Minor,
		Patch:         v.Patch,
		PreReleaseTag: v.PreReleaseTag,
		BuildMetaData: meta,
	}
}

// SemVer returns the SemVer 2.0 format (e.g., "1.2.3" or "1.2.3-beta.4").
func (v SemanticVersion) SemVer() string {
	base := v.MajorMinorPatch()
	if tag := v.PreReleaseTag.String(); tag != "" {
		return base + "-" + tag
	}
	return base
}

// FullSemVer returns the SemVer with build metadata (e.g., "1.2.3-beta.4+5").
func (v SemanticVersion) FullSemVer() string {
	s := v.SemVer()
	if v.BuildMetaData != "" {
		return s + "+" + v.BuildMetaData
	}
	return s
}

// MajorMinorPatch returns "MAJOR.MINOR.PATCH" without any tag.
func (v SemanticVersion) MajorMinorPatch() string {
	return strconv.FormatInt(v.Major, 10) + "." +
		strconv.FormatInt(v.Minor, 10) + "." +
		strconv.FormatInt(v.Patch, 10)
}

// String implements fmt.Stringer.
func (v SemanticVersion) String() string {
	return v.SemVer()
}
