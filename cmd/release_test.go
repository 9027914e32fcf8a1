package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/testutil"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	f := pflag.NewFlagSet("release", pflag.ContinueOnError)
	addConfigFlags(f)
	addReleaseFlags(f)
	require.NoError(t, f.Parse(args))
	return f
}

func TestOverridesFromViper_Unset(t *testing.T) {
	v, err := newViper(parseFlags(t))
	require.NoError(t, err)

	cfg, err := overridesFromViper(v)
	require.NoError(t, err)
	require.Nil(t, cfg.Registries)
	require.Nil(t, cfg.Branch)
	require.Nil(t, cfg.Yolo)
	require.Nil(t, cfg.Increment)
	require.Nil(t, cfg.PackageManager)
}

func TestOverridesFromViper_Flags(t *testing.T) {
	v, err := newViper(parseFlags(t,
		"--registries", "npm, github",
		"--access", "private",
		"--branch",
		"--yolo",
		"--increment", "pre-minor",
		"--preid", "beta",
		"--tag-prefix", "v",
		"--lint", "check",
	))
	require.NoError(t, err)

	cfg, err := overridesFromViper(v)
	require.NoError(t, err)
	require.Equal(t, []string{"npm", "github"}, cfg.Registries)
	require.Equal(t, release.AccessPrivate, *cfg.Access)
	require.Equal(t, release.Branch{Enabled: true}, *cfg.Branch)
	require.True(t, *cfg.Yolo)
	require.Equal(t, semver.IncrementPreMinor, *cfg.Increment)
	require.Equal(t, "beta", *cfg.Preid)
	require.Equal(t, "v", *cfg.TagPrefix)
	require.Equal(t, "check", *cfg.LintScript)
	require.Nil(t, cfg.TestScript)
}

func TestOverridesFromViper_NamedBranch(t *testing.T) {
	v, err := newViper(parseFlags(t, "--branch=release/next"))
	require.NoError(t, err)

	cfg, err := overridesFromViper(v)
	require.NoError(t, err)
	require.Equal(t, release.Branch{Enabled: true, Name: "release/next"}, *cfg.Branch)
}

func TestOverridesFromViper_Environment(t *testing.T) {
	t.Setenv("RELEASE_PACKAGE_MANAGER", "npm")
	t.Setenv("RELEASE_GITHUB_RELEASE", "true")

	v, err := newViper(parseFlags(t, "--package-manager", "pnpm"))
	require.NoError(t, err)

	cfg, err := overridesFromViper(v)
	require.NoError(t, err)
	require.Equal(t, "pnpm", *cfg.PackageManager)
	require.True(t, *cfg.GitHubRelease)
}

func TestOverridesFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "access", args: []string{"--access", "secret"}, want: "unknown access level"},
		{name: "increment", args: []string{"--increment", "huge"}, want: "unknown increment kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := newViper(parseFlags(t, tt.args...))
			require.NoError(t, err)

			_, err = overridesFromViper(v)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateOutput(t *testing.T) {
	defer func() { flagOutput = "text" }()

	for _, format := range []string{"text", "json", "env"} {
		flagOutput = format
		require.NoError(t, validateOutput())
	}
	flagOutput = "yaml"
	require.ErrorContains(t, validateOutput(), `unknown output format "yaml"`)
}

func TestWriteResult(t *testing.T) {
	result := &pipeline.Result{
		State:           release.StateAborted,
		Name:            "widget",
		PreviousVersion: "1.2.3",
		Version:         "1.2.4",
		Commit:          "abc",
	}
	runErr := errors.New("publishing to npm failed")

	t.Run("json", func(t *testing.T) {
		flagOutput = "json"
		defer func() { flagOutput = "text" }()

		var stdout, stderr bytes.Buffer
		require.NoError(t, writeResult(&stdout, &stderr, result, runErr))

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &parsed))
		require.Equal(t, "Aborted", parsed["state"])
		require.Empty(t, stderr.String())
	})

	t.Run("show variable", func(t *testing.T) {
		flagShowVariable = "Version"
		defer func() { flagShowVariable = "" }()

		var stdout, stderr bytes.Buffer
		require.NoError(t, writeResult(&stdout, &stderr, result, runErr))
		require.Equal(t, "1.2.4\n", stdout.String())
	})

	t.Run("text summary on abort", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, writeResult(&stdout, &stderr, result, runErr))
		require.Empty(t, stdout.String())
		require.Contains(t, stderr.String(), "Version:  1.2.3 → 1.2.4")
	})

	t.Run("text quiet on success", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.NoError(t, writeResult(&stdout, &stderr, result, nil))
		require.Empty(t, stdout.String())
		require.Empty(t, stderr.String())
	})
}

func TestCandidatesCmd(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.CommitPackageJSON("widget", "1.2.3", nil)

	flagPath = repo.Path()
	flagShowVariable = "Minor"
	defer func() {
		flagPath = "."
		flagShowVariable = ""
	}()

	var buf bytes.Buffer
	candidatesCmd.SetOut(&buf)
	defer candidatesCmd.SetOut(nil)

	require.NoError(t, candidatesCmd.RunE(candidatesCmd, nil))
	require.Equal(t, "1.3.0\n", buf.String())
}
