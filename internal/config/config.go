// Package config loads the release configuration file and layers it over
// the built-in defaults and the command line.
package config

import (
	"slices"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
)

// Config is one layer of release configuration. All optional fields are
// pointers (or nil slices) so layers can be merged; a nil field leaves the
// value of the layer below in place.
type Config struct {
	Registries     []string              `yaml:"registries"`
	Access         *release.Access       `yaml:"access"`
	Branch         *release.Branch       `yaml:"branch"`
	Yolo           *bool                 `yaml:"yolo"`
	LogLevel       *string               `yaml:"log-level"`
	Increment      *semver.IncrementKind `yaml:"increment"`
	Preid          *string               `yaml:"preid"`
	PackageManager *string               `yaml:"package-manager"`
	Remote         *string               `yaml:"remote"`
	MainBranch     *string               `yaml:"main-branch"`
	TagPrefix      *string               `yaml:"tag-prefix"`
	LintScript     *string               `yaml:"lint"`
	TestScript     *string               `yaml:"test"`
	Manifest       *string               `yaml:"manifest"`
	GitHubRelease  *bool                 `yaml:"github-release"`
	GitHubURL      *string               `yaml:"github-url"`
}

// Release returns the run configuration described by a built Config.
// version is the explicit version argument, if any.
func (c *Config) Release(version string) release.Config {
	return release.Config{
		Version:        version,
		Branch:         deref(c.Branch),
		Registries:     slices.Clone(c.Registries),
		Access:         deref(c.Access),
		Yolo:           deref(c.Yolo),
		LogLevel:       deref(c.LogLevel),
		Increment:      deref(c.Increment),
		Preid:          deref(c.Preid),
		PackageManager: deref(c.PackageManager),
		Remote:         deref(c.Remote),
		MainBranch:     deref(c.MainBranch),
		TagPrefix:      deref(c.TagPrefix),
		LintScript:     deref(c.LintScript),
		TestScript:     deref(c.TestScript),
		ManifestPath:   deref(c.Manifest),
		GitHubRelease:  deref(c.GitHubRelease),
	}
}
