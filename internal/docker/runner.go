// SPDX-License-Identifier: EPL-2.0

package docker

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"renovate-runner/internal/issue"
	"renovate-runner/internal/resolver"
)

const (
	// DefaultImage is the image used when the renovate-image input is empty.
	DefaultImage = "ghcr.io/renovatebot/renovate"
	// DefaultVersion is the tag used when the renovate-version input is empty.
	DefaultVersion = "latest"

	// dockerSocketPath is the host docker socket mounted into the container
	// when the mount-docker-socket input is enabled.
	dockerSocketPath = "/var/run/docker.sock"

	// containerCmdFile is where an optional command file is mounted inside
	// the container; it replaces the image entrypoint arguments via bash.
	containerCmdFile = "/renovate-command.sh"
)

// Runner assembles and executes the Renovate container invocation from a
// ready Resolver. It is the downstream consumer of the resolved settings
// and the passthrough environment export.
type Runner struct {
	engine Engine
	logger *log.Logger

	// Stdout and Stderr receive the container output; they default to the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a Runner. A nil logger falls back to the default.
func NewRunner(engine Engine, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		engine: engine,
		logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Options builds the container run options from the resolver without
// executing anything. The dry-run path prints exactly this invocation.
func (r *Runner) Options(res *resolver.Resolver) (RunOptions, error) {
	image := res.Image()
	if image == "" {
		image = DefaultImage
	}
	version := res.Version()
	if version == "" {
		version = DefaultVersion
	}

	opts := RunOptions{
		Image:  image + ":" + version,
		User:   res.DockerUser(),
		Remove: true,
	}

	// Named settings first, passthrough after: the ordering is stable so
	// successive dry runs diff cleanly.
	opts.Env = append(opts.Env, res.Token())

	cfg, err := res.ConfigurationFile()
	if err != nil {
		return RunOptions{}, err
	}
	if cfg != nil {
		// Mounted at its host path so the env value stays valid inside
		// the container.
		opts.Env = append(opts.Env, *cfg)
		opts.Volumes = append(opts.Volumes, cfg.Value+":"+cfg.Value+":ro")
	}

	baseDir, err := res.BaseDir()
	if err != nil {
		return RunOptions{}, err
	}
	if baseDir != "" {
		opts.Env = append(opts.Env, resolver.Setting{Key: resolver.KeyBaseDir, Value: baseDir})
	}

	opts.Env = append(opts.Env, res.PassthroughEnv()...)

	if res.MountDockerSocket() {
		opts.Volumes = append(opts.Volumes, dockerSocketPath+":"+dockerSocketPath)
	}

	cmdFile, err := res.DockerCmdFile()
	if err != nil {
		return RunOptions{}, err
	}
	if cmdFile != "" {
		opts.Volumes = append(opts.Volumes, cmdFile+":"+containerCmdFile)
		opts.Command = []string{"bash", containerCmdFile}
	}

	return opts, nil
}

// Run pulls the image and runs the Renovate container to completion.
func (r *Runner) Run(ctx context.Context, res *resolver.Resolver) error {
	if !r.engine.Available() {
		return issue.NewErrorContext().
			WithOperation("locate container engine").
			WithResource(r.engine.Name()).
			WithSuggestion("Install docker or use a runner image that ships it").
			WithSuggestion("Check that the docker daemon is running").
			WithIssue(issue.DockerNotFoundId).
			BuildError()
	}

	opts, err := r.Options(res)
	if err != nil {
		return err
	}
	opts.Stdout = r.Stdout
	opts.Stderr = r.Stderr

	r.logger.Info("pulling image", "image", opts.Image)
	if err := r.engine.Pull(ctx, opts.Image); err != nil {
		return err
	}

	r.logger.Info("running renovate", "image", opts.Image, "env", len(opts.Env), "volumes", len(opts.Volumes))
	if err := r.engine.Run(ctx, opts); err != nil {
		return issue.NewErrorContext().
			WithOperation("run renovate container").
			WithResource(opts.Image).
			WithSuggestion("Re-run with LOG_LEVEL=debug in the job environment").
			WithSuggestion("Check the container output above for the first error").
			WithIssue(issue.RenovateRunFailedId).
			Wrap(err).
			BuildError()
	}

	r.logger.Info("renovate finished")
	return nil
}
