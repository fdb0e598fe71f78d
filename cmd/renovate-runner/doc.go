// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for renovate-runner.
//
// This package implements the Cobra command hierarchy: the root command,
// the run command that resolves configuration and launches the Renovate
// container, and debugging helpers around the resolved environment.
package cmd
