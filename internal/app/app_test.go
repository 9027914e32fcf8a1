package app

import (
	"context"
	"strings"
	"testing"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/config"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/git"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/github"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pkgmgr"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/prompt"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var scripts = map[string]string{"lint": "eslint .", "test": "jest"}

// offlineGit answers ls-remote with nothing and accepts every push.
func offlineGit(pushes *[]string) git.RunnerFunc {
	return func(_ context.Context, _ string, args ...string) (string, error) {
		if args[0] == "push" {
			*pushes = append(*pushes, strings.Join(args, " "))
		}
		return "", nil
	}
}

func recordingPackageManager(commands *[]string) pkgmgr.RunnerFunc {
	return func(_ context.Context, _, name string, args ...string) error {
		*commands = append(*commands, name+" "+strings.Join(args, " "))
		return nil
	}
}

func TestLoadConfig_Layers(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteConfig("registries: [npm, github]\npreid: beta\n")

	cfg, err := LoadConfig(repo.Path(), "", &config.Config{Preid: ptr("rc")})
	require.NoError(t, err)
	require.Equal(t, []string{"npm", "github"}, cfg.Registries)
	require.Equal(t, "rc", *cfg.Preid)
	require.Equal(t, "yarn", *cfg.PackageManager)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.WriteConfig("unknown-key: true\n")

	_, err := LoadConfig(repo.Path(), "", nil)
	require.Error(t, err)
}

func TestRelease_EndToEnd(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CommitPackageJSON("widget", "1.2.3", scripts)
	repo.CommitFile(".release.yml", "registries: [npm, github]\ngithub-release: true\n", "chore: release config")
	repo.AddRemote("origin", "git@github.com:acme/widget.git")

	var pushes, commands []string
	var requested github.ReleaseRequest
	result, err := Release(context.Background(), Options{
		Path:          repo.Path(),
		Overrides:     &config.Config{Increment: ptr(semver.IncrementMinor)},
		Prompter:      &prompt.MockProvider{},
		Logger:        zerolog.Nop(),
		GitRunner:     offlineGit(&pushes),
		PackageRunner: recordingPackageManager(&commands),
		Releaser: &github.MockReleaser{
			CreateReleaseFunc: func(_ context.Context, r github.Repo, req github.ReleaseRequest) (string, error) {
				requested = req
				return r.WebURL() + "/releases/tag/" + req.Tag, nil
			},
		},
	})
	require.NoError(t, err)

	require.Equal(t, release.StateDone, result.State)
	require.Equal(t, "1.3.0", result.Version)
	require.False(t, result.Tagged)
	require.Equal(t, []string{"npm", "github"}, result.Registries)
	require.Equal(t, "https://github.com/acme/widget/releases/tag/1.3.0", result.ReleaseURL)
	require.Equal(t, "1.3.0", requested.Tag)

	require.Equal(t, []string{
		"yarn --force",
		"yarn run lint",
		"yarn run test",
		"yarn publish --new-version 1.3.0",
		"yarn publish --new-version 1.3.0",
	}, commands)
	require.Equal(t, []string{"push -u origin HEAD"}, pushes)

	require.Contains(t, repo.ReadFile("package.json"), `"version": "1.3.0"`)
	require.NotContains(t, repo.ReadFile("package.json"), "publishConfig")
}

func TestRelease_UnattendedNeedsVersion(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CommitPackageJSON("widget", "1.2.3", scripts)

	var pushes, commands []string
	result, err := Release(context.Background(), Options{
		Path:          repo.Path(),
		Logger:        zerolog.Nop(),
		GitRunner:     offlineGit(&pushes),
		PackageRunner: recordingPackageManager(&commands),
	})
	require.ErrorIs(t, err, ErrNoVersion)
	require.Nil(t, result)
	require.Empty(t, commands)
	require.Empty(t, pushes)
}

func TestRelease_UnattendedBranchNeedsConfirmation(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CommitPackageJSON("widget", "1.2.3", scripts)
	repo.AddRemote("origin", "https://github.com/acme/widget.git")

	var pushes, commands []string
	result, err := Release(context.Background(), Options{
		Path:          repo.Path(),
		Version:       "1.2.4",
		Overrides:     &config.Config{Branch: &release.Branch{Enabled: true}},
		Logger:        zerolog.Nop(),
		GitRunner:     offlineGit(&pushes),
		PackageRunner: recordingPackageManager(&commands),
	})
	require.ErrorIs(t, err, prompt.ErrNotInteractive)
	require.Equal(t, release.StateAborted, result.State)
	require.Equal(t, "release-1.2.4", result.Branch)
	require.Equal(t, "https://github.com/acme/widget/compare/master...release-1.2.4", result.PullRequestURL)
	require.Equal(t, []string{"push -u origin HEAD"}, pushes)
	require.NotContains(t, commands, "yarn publish --new-version 1.2.4")
}

func TestRelease_UnsupportedPackageManager(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CommitPackageJSON("widget", "1.2.3", scripts)

	_, err := Release(context.Background(), Options{
		Path:      repo.Path(),
		Overrides: &config.Config{PackageManager: ptr("bower")},
		Logger:    zerolog.Nop(),
	})
	require.ErrorContains(t, err, "package-manager")
}

func TestCandidates(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CommitPackageJSON("widget", "1.2.3", nil)

	current, choices, err := Candidates(repo.Path(), "", &config.Config{Preid: ptr("beta")})
	require.NoError(t, err)
	require.Equal(t, "1.2.3", current)
	require.Equal(t, "1.2.4", choices[0].Version)
	require.Equal(t, "1.2.4-beta.0", choices[3].Version)
}

func ptr[T any](v T) *T { return &v }
