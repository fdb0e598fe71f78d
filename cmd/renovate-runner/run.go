// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"renovate-runner/internal/action"
	"renovate-runner/internal/docker"
	"renovate-runner/internal/resolver"
)

var (
	// dryRun prints the container invocation instead of executing it
	dryRun bool

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Resolve the configuration and run Renovate",
		Long: `Resolve the Renovate execution configuration from the action inputs
and the job environment, then pull the image and run the container.

With --dry-run the resolved docker invocation is printed instead of
executed; secret values are redacted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRun,
	}
)

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the docker invocation instead of running it")
}

func runRun(cmd *cobra.Command, args []string) error {
	res, err := resolver.New(resolver.Options{
		Inputs:  action.Input,
		Environ: action.Environ(),
	})
	if err != nil {
		renderError(cmd.ErrOrStderr(), err, verbose)
		return &ExitError{Code: 1, Err: err}
	}

	engine := docker.NewEngine()
	runner := docker.NewRunner(engine, newLogger())
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	if dryRun {
		return renderDryRun(cmd, engine, runner, res)
	}

	if err := runner.Run(cmd.Context(), res); err != nil {
		renderError(cmd.ErrOrStderr(), err, verbose)
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

// renderDryRun prints the docker command line that a real run would
// execute, with secret-bearing values redacted.
func renderDryRun(cmd *cobra.Command, engine docker.Engine, runner *docker.Runner, res *resolver.Resolver) error {
	opts, err := runner.Options(res)
	if err != nil {
		renderError(cmd.ErrOrStderr(), err, verbose)
		return &ExitError{Code: 1, Err: err}
	}
	opts.Env = redactSettings(opts.Env)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Dry run")+SubtitleStyle.Render(" - command that would be executed:"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s %s\n", engine.Name(), strings.Join(engine.RunArgs(opts), " "))
	return nil
}

// redactSettings masks values of settings whose key looks secret-bearing.
func redactSettings(settings []resolver.Setting) []resolver.Setting {
	redacted := make([]resolver.Setting, len(settings))
	for i, s := range settings {
		if strings.Contains(s.Key, "TOKEN") || strings.Contains(s.Key, "PASSWORD") || strings.Contains(s.Key, "SECRET") {
			s.Value = "***"
		}
		redacted[i] = s
	}
	return redacted
}
