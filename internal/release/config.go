// Package release holds the data model shared by every release stage: the
// per-run Config value, the orchestrator states and the error taxonomy.
package release

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"gopkg.in/yaml.v3"
)

// DefaultRegistry is the symbolic name of the package manager's default registry.
const DefaultRegistry = "npm"

// Access is the publish visibility passed to the package manager.
type Access string

const (
	AccessUnset   Access = ""
	AccessPublic  Access = "public"
	AccessPrivate Access = "private"
)

// ParseAccess parses an access level. An empty string is AccessUnset.
func ParseAccess(s string) (Access, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AccessUnset, nil
	case "public":
		return AccessPublic, nil
	case "private", "restricted":
		return AccessPrivate, nil
	default:
		return AccessUnset, fmt.Errorf("unknown access level %q (expected public or private)", s)
	}
}

func (a Access) String() string {
	return string(a)
}

// Flag returns the value npm-compatible clients accept for --access.
// Private packages are "restricted" on the command line.
func (a Access) Flag() string {
	if a == AccessPrivate {
		return "restricted"
	}
	return string(a)
}

// UnmarshalYAML implements yaml.Unmarshaler for Access.
func (a *Access) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAccess(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Branch selects a dedicated release branch. Enabled with an empty Name
// means the name is generated from the version.
type Branch struct {
	Enabled bool
	Name    string
}

// ParseBranch interprets a --branch value: "", "false" disable it, "true"
// enables it with a generated name, anything else is the branch name.
func ParseBranch(s string) Branch {
	switch strings.TrimSpace(s) {
	case "", "false":
		return Branch{}
	case "true":
		return Branch{Enabled: true}
	default:
		return Branch{Enabled: true, Name: strings.TrimSpace(s)}
	}
}

// UnmarshalYAML accepts either a boolean or a branch name.
func (b *Branch) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*b = ParseBranch(s)
	return nil
}

// Config is the parameter set of one release run. Stages never mutate a
// Config in place; each returns an updated copy through the With* methods.
type Config struct {
	// Version is the resolved target version; empty until resolution.
	Version       string
	IsPrerelease  bool
	IsVersionZero bool

	Branch     Branch
	Registries []string
	Access     Access
	Yolo       bool
	LogLevel   string

	// Increment is used when no explicit version is given, instead of
	// prompting. IncrementNone means prompt.
	Increment semver.IncrementKind
	Preid     string

	PackageManager string
	Remote         string
	MainBranch     string
	TagPrefix      string
	LintScript     string
	TestScript     string
	ManifestPath   string

	GitHubRelease bool
}

// TagName returns the name of the tag created for the resolved version.
func (c Config) TagName() string {
	return c.TagPrefix + c.Version
}

// BranchName returns the release branch name, generating one from the
// version when the branch was enabled without a name.
func (c Config) BranchName() string {
	if !c.Branch.Enabled {
		return ""
	}
	if c.Branch.Name != "" {
		return c.Branch.Name
	}
	return "release-" + c.Version
}

// EffectiveRegistries returns the configured registries or the default.
func (c Config) EffectiveRegistries() []string {
	if len(c.Registries) == 0 {
		return []string{DefaultRegistry}
	}
	return slices.Clone(c.Registries)
}

// WithVersion returns a copy with the resolved version set.
func (c Config) WithVersion(version string, prerelease bool) Config {
	out := c.clone()
	out.Version = version
	out.IsPrerelease = prerelease
	return out
}

// WithVersionZero returns a copy with the first-release flag set.
func (c Config) WithVersionZero(zero bool) Config {
	out := c.clone()
	out.IsVersionZero = zero
	return out
}

// WithAccess returns a copy with the access level set.
func (c Config) WithAccess(a Access) Config {
	out := c.clone()
	out.Access = a
	return out
}

// WithBranchName returns a copy whose branch name is fixed to name.
func (c Config) WithBranchName(name string) Config {
	out := c.clone()
	out.Branch = Branch{Enabled: true, Name: name}
	return out
}

func (c Config) clone() Config {
	out := c
	out.Registries = slices.Clone(c.Registries)
	return out
}
