package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes_Full(t *testing.T) {
	data := []byte(`
registries:
  - npm
  - github
access: restricted
branch: release-next
yolo: false
log-level: debug
increment: prepatch
preid: rc
package-manager: pnpm
remote: upstream
main-branch: main
tag-prefix: v
lint: lint:ci
test: test:ci
manifest: packages/core/package.json
github-release: true
github-url: https://ghe.example.com/api/v3
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	require.Equal(t, []string{"npm", "github"}, cfg.Registries)
	require.Equal(t, release.AccessPrivate, *cfg.Access)
	require.Equal(t, release.Branch{Enabled: true, Name: "release-next"}, *cfg.Branch)
	require.False(t, *cfg.Yolo)
	require.Equal(t, "debug", *cfg.LogLevel)
	require.Equal(t, semver.IncrementPrePatch, *cfg.Increment)
	require.Equal(t, "rc", *cfg.Preid)
	require.Equal(t, "pnpm", *cfg.PackageManager)
	require.Equal(t, "upstream", *cfg.Remote)
	require.Equal(t, "main", *cfg.MainBranch)
	require.Equal(t, "v", *cfg.TagPrefix)
	require.Equal(t, "lint:ci", *cfg.LintScript)
	require.Equal(t, "test:ci", *cfg.TestScript)
	require.Equal(t, "packages/core/package.json", *cfg.Manifest)
	require.True(t, *cfg.GitHubRelease)
	require.Equal(t, "https://ghe.example.com/api/v3", *cfg.GitHubURL)
}

func TestLoadFromBytes_Minimal(t *testing.T) {
	for _, data := range []string{"", "# only a comment\n"} {
		cfg, err := LoadFromBytes([]byte(data))
		require.NoError(t, err)
		require.NotNil(t, cfg)
		require.Nil(t, cfg.Registries)
		require.Nil(t, cfg.Access)
		require.Nil(t, cfg.Yolo)
	}
}

func TestLoadFromBytes_Branch(t *testing.T) {
	tests := []struct {
		yaml string
		want release.Branch
	}{
		{"branch: true", release.Branch{Enabled: true}},
		{"branch: false", release.Branch{}},
		{"branch: hotfix-1", release.Branch{Enabled: true, Name: "hotfix-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.yaml, func(t *testing.T) {
			cfg, err := LoadFromBytes([]byte(tt.yaml))
			require.NoError(t, err)
			require.Equal(t, tt.want, *cfg.Branch)
		})
	}
}

func TestLoadFromBytes_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "registry: npm"},
		{"invalid access", "access: secret"},
		{"invalid increment", "increment: huge"},
		{"malformed", "registries: [npm"},
		{"wrong type", "yolo: [true]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), "parsing config")
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".release.yml")
	require.NoError(t, os.WriteFile(path, []byte("yolo: true\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.True(t, *cfg.Yolo)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config file")

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("nope: 1\n"), 0o644))
	_, err = LoadFromFile(bad)
	require.ErrorContains(t, err, bad)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.Empty(t, FindConfigFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "release.yml"), nil, 0o644))
	require.Equal(t, filepath.Join(dir, "release.yml"), FindConfigFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".release.yml"), nil, 0o644))
	require.Equal(t, filepath.Join(dir, ".release.yml"), FindConfigFile(dir))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".github"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".github", "release.yml"), nil, 0o644))
	require.Equal(t, filepath.Join(dir, ".github", "release.yml"), FindConfigFile(dir))
}
