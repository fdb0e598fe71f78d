// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"renovate-runner/internal/action"
	"renovate-runner/internal/resolver"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the environment passthrough export",
	Long: `Resolve the configuration and print the environment variables that
would be forwarded to the Renovate container.

Only variables matching the allow-list pattern appear, minus the keys
claimed by named settings. Secret-bearing values are redacted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	res, err := resolver.New(resolver.Options{
		Inputs:  action.Input,
		Environ: action.Environ(),
	})
	if err != nil {
		renderError(cmd.ErrOrStderr(), err, verbose)
		return &ExitError{Code: 1, Err: err}
	}

	out := cmd.OutOrStdout()
	passthrough := res.PassthroughEnv()
	if len(passthrough) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("No environment variables pass the allow-list filter."))
		return nil
	}

	fmt.Fprintln(out, TitleStyle.Render("Passthrough environment")+SubtitleStyle.Render(fmt.Sprintf(" (%d variables)", len(passthrough))))
	for _, s := range redactSettings(passthrough) {
		fmt.Fprintf(out, "  %s=%s\n", VerboseHighlightStyle.Render(s.Key), s.Value)
	}
	return nil
}
