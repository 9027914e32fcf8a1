package pkgmgr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	calls []string
	err   error
}

func (r *recordingRunner) Run(_ context.Context, dir, name string, args ...string) error {
	r.calls = append(r.calls, dir+"$ "+name+" "+strings.Join(args, " "))
	return r.err
}

func newTestCLI(t *testing.T, name string) (*CLI, *recordingRunner) {
	t.Helper()
	runner := &recordingRunner{}
	c, err := New(Options{Name: name, Dir: "/work", Runner: runner, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return c, runner
}

func TestNew_DefaultsToYarn(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	require.Equal(t, Yarn, c.Name())
}

func TestNew_Unsupported(t *testing.T) {
	_, err := New(Options{Name: "bower"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported package manager")
}

func TestCLI_Commands(t *testing.T) {
	tests := []struct {
		manager string
		call    func(context.Context, *CLI) error
		want    string
	}{
		{Yarn, func(ctx context.Context, c *CLI) error { return c.InstallAll(ctx, true) }, "/work$ yarn --force"},
		{Yarn, func(ctx context.Context, c *CLI) error { return c.InstallAll(ctx, false) }, "/work$ yarn install"},
		{NPM, func(ctx context.Context, c *CLI) error { return c.InstallAll(ctx, true) }, "/work$ npm ci"},
		{NPM, func(ctx context.Context, c *CLI) error { return c.InstallAll(ctx, false) }, "/work$ npm install"},
		{PNPM, func(ctx context.Context, c *CLI) error { return c.InstallAll(ctx, true) }, "/work$ pnpm install --force"},
		{Yarn, func(ctx context.Context, c *CLI) error { return c.RunScript(ctx, "lint") }, "/work$ yarn run lint"},
		{NPM, func(ctx context.Context, c *CLI) error { return c.RunScript(ctx, "test:ci") }, "/work$ npm run test:ci"},
		{
			Yarn,
			func(ctx context.Context, c *CLI) error {
				return c.Publish(ctx, PublishOptions{Version: "1.2.4", Access: release.AccessPublic})
			},
			"/work$ yarn publish --new-version 1.2.4 --access public",
		},
		{
			Yarn,
			func(ctx context.Context, c *CLI) error { return c.Publish(ctx, PublishOptions{Version: "1.2.4"}) },
			"/work$ yarn publish --new-version 1.2.4",
		},
		{
			NPM,
			func(ctx context.Context, c *CLI) error {
				return c.Publish(ctx, PublishOptions{Version: "1.2.4", Access: release.AccessPrivate})
			},
			"/work$ npm publish --access restricted",
		},
		{
			PNPM,
			func(ctx context.Context, c *CLI) error { return c.Publish(ctx, PublishOptions{Version: "1.2.4"}) },
			"/work$ pnpm publish --no-git-checks",
		},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c, runner := newTestCLI(t, tt.manager)
			require.NoError(t, tt.call(context.Background(), c))
			require.Equal(t, []string{tt.want}, runner.calls)
		})
	}
}

func TestCLI_PropagatesRunnerErrors(t *testing.T) {
	c, runner := newTestCLI(t, Yarn)
	runner.err = errors.New("exit status 1")

	err := c.RunScript(context.Background(), "test")
	require.ErrorIs(t, err, runner.err)
}

func TestExecRunner_StreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var stdout, stderr bytes.Buffer
	r := ExecRunner{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}

	require.NoError(t, r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo out; echo err >&2"))
	require.Equal(t, "out\n", stdout.String())
	require.Equal(t, "err\n", stderr.String())

	err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "exit 3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sh -c exit 3")
}

func TestMockClient_Defaults(t *testing.T) {
	m := &MockClient{}
	ctx := context.Background()
	require.Equal(t, Yarn, m.Name())
	require.NoError(t, m.InstallAll(ctx, true))
	require.NoError(t, m.RunScript(ctx, "lint"))
	require.NoError(t, m.Publish(ctx, PublishOptions{}))
}
