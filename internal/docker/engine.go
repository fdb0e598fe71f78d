// SPDX-License-Identifier: EPL-2.0

package docker

import (
	"context"
	"io"
	"os/exec"

	"renovate-runner/internal/resolver"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Engine is the container operations surface the runner depends on.
	Engine interface {
		// Name returns the engine name for log and error messages.
		Name() string
		// Available checks if the engine is usable on this host.
		Available() bool
		// Version returns the engine server version.
		Version(ctx context.Context) (string, error)
		// Pull pulls an image.
		Pull(ctx context.Context, image string) error
		// Run runs a container to completion.
		Run(ctx context.Context, opts RunOptions) error
		// RunArgs builds the argument slice for Run without executing.
		RunArgs(opts RunOptions) []string
	}

	// RunOptions contains options for running the container.
	RunOptions struct {
		// Image is the fully-tagged image to run.
		Image string
		// Command overrides the image entrypoint arguments.
		Command []string
		// Env is the ordered list of environment settings to export.
		Env []resolver.Setting
		// Volumes are bind mounts in "host:container" format.
		Volumes []string
		// User is the user to run as inside the container.
		User string
		// WorkDir is the working directory inside the container.
		WorkDir string
		// Remove automatically removes the container after exit.
		Remove bool
		// Stdout is where to stream container output.
		Stdout io.Writer
		// Stderr is where to stream container errors.
		Stderr io.Writer
	}
)
