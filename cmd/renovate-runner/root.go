// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"renovate-runner/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "renovate-runner",
		Short: "Run self-hosted Renovate from a CI job",
		Long: TitleStyle.Render("renovate-runner") + SubtitleStyle.Render(" - Run self-hosted Renovate from a CI job") + `

renovate-runner resolves the execution configuration for a Renovate run
from structured action inputs and the job environment, then launches the
Renovate container with the resolved settings.

Explicit inputs always win over the ambient environment, and only
environment variables matching the allow-list pattern reach the
container.

` + SubtitleStyle.Render("Examples:") + `
  renovate-runner run             Resolve configuration and run Renovate
  renovate-runner run --dry-run   Print the docker invocation instead
  renovate-runner env             Show the environment passthrough export`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(envCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// newLogger builds the CLI logger, honoring the verbose flag.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderError prints an error to stderr, followed by the matching
// known-issue catalogue entry when the error carries one.
func renderError(stderr io.Writer, err error, verboseMode bool) {
	fmt.Fprintln(stderr, ErrorStyle.Render(formatErrorForDisplay(err, verboseMode)))

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueId == 0 {
		return
	}

	entry := issue.Get(ae.IssueId)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render("dark")
	if renderErr != nil {
		log.Warn("failed to render issue catalogue entry", "id", ae.IssueId, "error", renderErr)
		return
	}
	fmt.Fprint(stderr, rendered)
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
