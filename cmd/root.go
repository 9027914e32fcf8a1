package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across commands.
var (
	flagPath         string
	flagConfig       string
	flagOutput       string
	flagShowVariable string
)

// rootCmd is the top-level command for release.
var rootCmd = &cobra.Command{
	Use:   "release [version]",
	Short: "Release a package to its registries",
	Long: `release checks that the repository is clean and in sync with its remote,
selects the next semantic version, runs the install, lint and test gates,
commits and tags the version bump, publishes to every configured registry
and links the code-hosting release.

Without a version argument the version is taken from --increment or asked
for interactively.

Examples:
  release
  release 2.0.0 --yolo
  release --increment prerelease --preid beta --branch
  release --registries npm,github --output json`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          releaseRunE,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagPath, "path", "p", ".", "path to the repository")
	pf.StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	pf.StringVarP(&flagOutput, "output", "o", "text", "output format: text, json or env")
	pf.StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. Version, Tag)")
	addConfigFlags(pf)
	addReleaseFlags(rootCmd.Flags())
}

// addConfigFlags registers the configuration flags every command reads.
func addConfigFlags(f *pflag.FlagSet) {
	f.String("log-level", "", "log level: trace, debug, info, warn or error (default info)")
	f.String("preid", "", "prerelease identifier, e.g. beta")
	f.String("manifest", "", "manifest path relative to the repository root (default package.json)")
}

// addReleaseFlags registers the flags of the release command itself.
func addReleaseFlags(f *pflag.FlagSet) {
	f.String("branch", "", "release from a dedicated branch, named after the version unless given")
	f.Lookup("branch").NoOptDefVal = "true"
	f.String("access", "", "publish access level: public or private")
	f.Bool("yolo", false, "skip the repository checks, the quality gates and the branch confirmation")
	f.String("registries", "", "comma-separated registries to publish to, e.g. npm,github")
	f.String("increment", "", "increment to apply instead of prompting: patch, minor, major, prepatch, preminor, premajor or prerelease")
	f.String("package-manager", "", "package manager: yarn, npm or pnpm (default yarn)")
	f.String("remote", "", "git remote to check and push to (default origin)")
	f.String("main-branch", "", "branch releases start from (default master)")
	f.String("tag-prefix", "", "prefix of the version tag, e.g. v")
	f.String("lint", "", "lint script name (default lint)")
	f.String("test", "", "test script name (default test)")
	f.Bool("github-release", false, "create the GitHub release through the API instead of linking to it")
	f.String("github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	f.String("token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	f.Int64("github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	f.String("github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY env var)")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// printError writes err and the raw output of the failing collaborator.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
	if out := strings.TrimRight(release.OutputOf(err), "\n"); out != "" {
		fmt.Fprintf(w, "\n%s\n", out)
	}
}
