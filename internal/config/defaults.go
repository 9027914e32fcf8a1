package config

import (
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
)

// CreateDefaultConfiguration returns a Config with every default set.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Registries:     []string{release.DefaultRegistry},
		Access:         ptr(release.AccessUnset),
		Branch:         ptr(release.Branch{}),
		Yolo:           ptr(false),
		LogLevel:       ptr("info"),
		Increment:      ptr(semver.IncrementNone),
		Preid:          ptr(""),
		PackageManager: ptr("yarn"),
		Remote:         ptr("origin"),
		MainBranch:     ptr("master"),
		TagPrefix:      ptr(""),
		LintScript:     ptr(""),
		TestScript:     ptr(""),
		Manifest:       ptr("package.json"),
		GitHubRelease:  ptr(false),
		GitHubURL:      ptr(""),
	}
}
