package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/app"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/config"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/output"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pkgmgr"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/prompt"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/semver"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables that stand in for flags,
// e.g. RELEASE_REGISTRIES or RELEASE_PACKAGE_MANAGER.
const envPrefix = "RELEASE"

func releaseRunE(cmd *cobra.Command, args []string) error {
	if err := validateOutput(); err != nil {
		return err
	}

	v, err := newViper(cmd.Flags())
	if err != nil {
		return err
	}
	overrides, err := overridesFromViper(v)
	if err != nil {
		return err
	}

	version := ""
	if len(args) == 1 {
		version = args[0]
	}

	stdout := cmd.OutOrStdout()
	opts := app.Options{
		Path:       flagPath,
		ConfigPath: flagConfig,
		Overrides:  overrides,
		Version:    version,
		Prompter:   prompt.NewTUI(),
		Logger:     newLogger(cmd.ErrOrStderr()),
		Token:      v.GetString("token"),
		AppID:      v.GetInt64("github-app-id"),
		AppKeyPath: v.GetString("github-app-key-path"),
	}
	// Keep stdout parseable when it carries a machine-readable result.
	if machineReadable() {
		opts.Reporter = output.NewConsole(cmd.ErrOrStderr())
		opts.PackageRunner = pkgmgr.ExecRunner{Stdout: cmd.ErrOrStderr()}
	} else {
		opts.Reporter = output.NewConsole(stdout)
	}

	result, err := app.Release(cmd.Context(), opts)
	if result != nil {
		if werr := writeResult(stdout, cmd.ErrOrStderr(), result, err); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func machineReadable() bool {
	return flagShowVariable != "" || flagOutput == "json" || flagOutput == "env"
}

func validateOutput() error {
	switch flagOutput {
	case "", "text", "json", "env":
		return nil
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}

// writeResult writes the release result in the requested format. Text
// output only adds a summary when the run aborted.
func writeResult(stdout, stderr io.Writer, r *pipeline.Result, runErr error) error {
	if flagShowVariable != "" {
		return output.WriteVariable(stdout, output.GetVariables(r), flagShowVariable)
	}

	switch flagOutput {
	case "json":
		return output.WriteJSON(stdout, r)
	case "env":
		return output.WriteAll(stdout, output.GetVariables(r))
	default:
		if runErr != nil && r.Version != "" {
			return output.WriteSummary(stderr, r)
		}
		return nil
	}
}

// newLogger returns a console logger; app.Release sets its level from the
// configuration.
func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// newViper binds flags and RELEASE_* environment variables.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	return v, nil
}

// overridesFromViper returns the configuration layer set on the command line
// or in the environment. Keys left unset stay nil so the file and defaults
// below show through.
func overridesFromViper(v *viper.Viper) (*config.Config, error) {
	cfg := &config.Config{}

	if v.IsSet("registries") {
		cfg.Registries = splitList(v.GetString("registries"))
	}
	if v.IsSet("access") {
		a, err := release.ParseAccess(v.GetString("access"))
		if err != nil {
			return nil, err
		}
		cfg.Access = &a
	}
	if v.IsSet("branch") {
		b := release.ParseBranch(v.GetString("branch"))
		cfg.Branch = &b
	}
	if v.IsSet("increment") {
		k, err := semver.ParseIncrementKind(v.GetString("increment"))
		if err != nil {
			return nil, err
		}
		cfg.Increment = &k
	}

	cfg.Yolo = boolOverride(v, "yolo")
	cfg.GitHubRelease = boolOverride(v, "github-release")
	cfg.LogLevel = stringOverride(v, "log-level")
	cfg.Preid = stringOverride(v, "preid")
	cfg.PackageManager = stringOverride(v, "package-manager")
	cfg.Remote = stringOverride(v, "remote")
	cfg.MainBranch = stringOverride(v, "main-branch")
	cfg.TagPrefix = stringOverride(v, "tag-prefix")
	cfg.LintScript = stringOverride(v, "lint")
	cfg.TestScript = stringOverride(v, "test")
	cfg.Manifest = stringOverride(v, "manifest")
	cfg.GitHubURL = stringOverride(v, "github-url")
	return cfg, nil
}

func stringOverride(v *viper.Viper, key string) *string {
	if !v.IsSet(key) {
		return nil
	}
	s := v.GetString(key)
	return &s
}

func boolOverride(v *viper.Viper, key string) *bool {
	if !v.IsSet(key) {
		return nil
	}
	b := v.GetBool(key)
	return &b
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
