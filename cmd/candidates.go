package cmd

import (
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/app"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/config"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/output"
	"github.com/spf13/cobra"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List the versions the next release could publish",
	Long: `List the next patch, minor, major and prerelease versions of the
package without changing anything.

Examples:
  release candidates
  release candidates --preid beta
  release candidates --show-variable Minor`,
	Args: cobra.NoArgs,
	RunE: candidatesRunE,
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
}

func candidatesRunE(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(); err != nil {
		return err
	}

	v, err := newViper(cmd.Flags())
	if err != nil {
		return err
	}
	overrides := &config.Config{
		Preid:    stringOverride(v, "preid"),
		Manifest: stringOverride(v, "manifest"),
		LogLevel: stringOverride(v, "log-level"),
	}

	current, choices, err := app.Candidates(flagPath, flagConfig, overrides)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	vars := output.CandidateVariables(current, choices)
	if flagShowVariable != "" {
		return output.WriteVariable(w, vars, flagShowVariable)
	}
	switch flagOutput {
	case "json":
		return output.WriteJSON(w, vars)
	case "env":
		return output.WriteAll(w, vars)
	default:
		return output.WriteCandidates(w, current, choices)
	}
}
