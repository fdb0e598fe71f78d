// SPDX-License-Identifier: EPL-2.0

package docker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"renovate-runner/internal/issue"
)

// CLIEngine implements Engine by shelling out to the docker CLI.
type CLIEngine struct {
	binaryPath  string
	execCommand ExecCommandFunc
}

// Option configures a CLIEngine.
type Option func(*CLIEngine)

// WithBinaryPath overrides the docker binary location.
func WithBinaryPath(path string) Option {
	return func(e *CLIEngine) { e.binaryPath = path }
}

// WithExecCommand overrides how exec.Cmd instances are created.
// Tests use this to record invocations instead of spawning processes.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(e *CLIEngine) { e.execCommand = fn }
}

// NewEngine creates a docker CLI engine. The binary is located via PATH;
// an empty binary path is reported by Available rather than here.
func NewEngine(opts ...Option) *CLIEngine {
	path, _ := exec.LookPath("docker")
	e := &CLIEngine{
		binaryPath:  path,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine name.
func (e *CLIEngine) Name() string {
	return "docker"
}

// BinaryPath returns the path to the docker binary, empty when not found.
func (e *CLIEngine) BinaryPath() string {
	return e.binaryPath
}

// Available checks if docker is present and the daemon responds.
func (e *CLIEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	cmd := e.createCommand(context.Background(), "version", "--format", "{{.Server.Version}}")
	return cmd.Run() == nil
}

// Version returns the docker server version.
func (e *CLIEngine) Version(ctx context.Context) (string, error) {
	out, err := e.runCommandWithOutput(ctx, "version", "--format", "{{.Server.Version}}")
	if err != nil {
		return "", fmt.Errorf("failed to get docker version: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Pull pulls an image.
func (e *CLIEngine) Pull(ctx context.Context, image string) error {
	cmd := e.createCommand(ctx, "pull", image)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return issue.NewErrorContext().
			WithOperation("pull image").
			WithResource(image).
			WithSuggestion("Verify the renovate-image and renovate-version inputs").
			WithSuggestion("Check registry reachability from this runner").
			WithIssue(issue.ImagePullFailedId).
			Wrap(fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))).
			BuildError()
	}
	return nil
}

// RunArgs builds the argument slice for a 'run' command without executing.
// Environment settings are emitted in slice order, so callers control the
// exact argument layout.
func (e *CLIEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}

	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}

	if opts.User != "" {
		args = append(args, "--user", opts.User)
	}

	for _, s := range opts.Env {
		args = append(args, "-e", fmt.Sprintf("%s=%s", s.Key, s.Value))
	}

	for _, v := range opts.Volumes {
		args = append(args, "-v", v)
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)

	return args
}

// Run runs a container to completion, streaming output to the configured
// writers. The returned error wraps the CLI failure, including the exit
// status for the caller to surface.
func (e *CLIEngine) Run(ctx context.Context, opts RunOptions) error {
	cmd := e.createCommand(ctx, e.RunArgs(opts)...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker run %s failed: %w", opts.Image, err)
	}
	return nil
}

// createCommand creates an exec.Cmd for the given docker arguments.
func (e *CLIEngine) createCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

// runCommandWithOutput executes a command with stdout captured to a buffer.
func (e *CLIEngine) runCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.createCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}
