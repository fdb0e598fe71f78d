// SPDX-License-Identifier: EPL-2.0

package docker

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"renovate-runner/internal/issue"
	"renovate-runner/internal/resolver"
	"renovate-runner/internal/testutil"
)

// fakeEngine records runner interactions without touching docker.
type fakeEngine struct {
	available bool
	pulled    []string
	ran       []RunOptions
	pullErr   error
	runErr    error
}

func (f *fakeEngine) Name() string    { return "docker" }
func (f *fakeEngine) Available() bool { return f.available }

func (f *fakeEngine) Version(context.Context) (string, error) { return "test", nil }

func (f *fakeEngine) Pull(_ context.Context, image string) error {
	f.pulled = append(f.pulled, image)
	return f.pullErr
}

func (f *fakeEngine) Run(_ context.Context, opts RunOptions) error {
	f.ran = append(f.ran, opts)
	return f.runErr
}

func (f *fakeEngine) RunArgs(opts RunOptions) []string {
	return (&CLIEngine{}).RunArgs(opts)
}

// newTestRunner builds a Runner with a quiet logger and discarded output.
func newTestRunner(engine Engine) *Runner {
	r := NewRunner(engine, log.New(io.Discard))
	r.Stdout = io.Discard
	r.Stderr = io.Discard
	return r
}

// mustResolve builds a Resolver from fixed sources or fails the test.
func mustResolve(t *testing.T, inputs, environ map[string]string) *resolver.Resolver {
	t.Helper()
	res, err := resolver.New(resolver.Options{
		Inputs:  func(name string) string { return inputs[name] },
		Environ: environ,
	})
	if err != nil {
		t.Fatalf("resolver.New() error: %v", err)
	}
	return res
}

func TestRunnerOptions_Defaults(t *testing.T) {
	res := mustResolve(t, map[string]string{"token": "secret"}, nil)

	opts, err := newTestRunner(&fakeEngine{}).Options(res)
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}

	if opts.Image != DefaultImage+":"+DefaultVersion {
		t.Errorf("Image = %q, want default image and tag", opts.Image)
	}
	if !opts.Remove {
		t.Error("Remove = false, want true")
	}
	if len(opts.Volumes) != 0 {
		t.Errorf("Volumes = %v, want none", opts.Volumes)
	}
	if len(opts.Command) != 0 {
		t.Errorf("Command = %v, want entrypoint default", opts.Command)
	}

	want := []resolver.Setting{{Key: resolver.KeyToken, Value: "secret"}}
	if !reflect.DeepEqual(opts.Env, want) {
		t.Errorf("Env = %+v, want %+v", opts.Env, want)
	}
}

func TestRunnerOptions_ImageAndVersionInputs(t *testing.T) {
	res := mustResolve(t, map[string]string{
		"token":            "secret",
		"renovate-image":   "renovate/renovate",
		"renovate-version": "41.1.4",
	}, nil)

	opts, err := newTestRunner(&fakeEngine{}).Options(res)
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}
	if opts.Image != "renovate/renovate:41.1.4" {
		t.Errorf("Image = %q, want %q", opts.Image, "renovate/renovate:41.1.4")
	}
}

func TestRunnerOptions_ConfigFileMountAndEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := testutil.MustWriteFile(t, tmpDir, "renovate.json", `{"baseDir": "/tmp/renovate"}`)

	res := mustResolve(t, map[string]string{
		"token":             "secret",
		"configurationFile": path,
	}, nil)

	opts, err := newTestRunner(&fakeEngine{}).Options(res)
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}

	wantVolume := path + ":" + path + ":ro"
	if len(opts.Volumes) != 1 || opts.Volumes[0] != wantVolume {
		t.Errorf("Volumes = %v, want [%s]", opts.Volumes, wantVolume)
	}

	wantEnv := []resolver.Setting{
		{Key: resolver.KeyToken, Value: "secret"},
		{Key: resolver.KeyConfigFile, Value: path},
		{Key: resolver.KeyBaseDir, Value: "/tmp/renovate"},
	}
	if !reflect.DeepEqual(opts.Env, wantEnv) {
		t.Errorf("Env = %+v, want %+v", opts.Env, wantEnv)
	}
}

func TestRunnerOptions_PassthroughAfterNamedSettings(t *testing.T) {
	res := mustResolve(t, map[string]string{"token": "secret"}, map[string]string{
		"RENOVATE_DRY_RUN": "true",
		"LOG_LEVEL":        "debug",
	})

	opts, err := newTestRunner(&fakeEngine{}).Options(res)
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}

	want := []resolver.Setting{
		{Key: resolver.KeyToken, Value: "secret"},
		{Key: "LOG_LEVEL", Value: "debug"},
		{Key: "RENOVATE_DRY_RUN", Value: "true"},
	}
	if !reflect.DeepEqual(opts.Env, want) {
		t.Errorf("Env = %+v, want %+v", opts.Env, want)
	}
}

func TestRunnerOptions_DockerSocketAndCmdFile(t *testing.T) {
	tmpDir := t.TempDir()
	cmdFile := testutil.MustWriteFile(t, tmpDir, "post.sh", "echo done\n")

	res := mustResolve(t, map[string]string{
		"token":               "secret",
		"mount-docker-socket": "true",
		"docker-cmd-file":     cmdFile,
		"docker-user":         "ubuntu",
	}, nil)

	opts, err := newTestRunner(&fakeEngine{}).Options(res)
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}

	if opts.User != "ubuntu" {
		t.Errorf("User = %q, want %q", opts.User, "ubuntu")
	}

	wantVolumes := []string{
		"/var/run/docker.sock:/var/run/docker.sock",
		cmdFile + ":" + containerCmdFile,
	}
	if !reflect.DeepEqual(opts.Volumes, wantVolumes) {
		t.Errorf("Volumes = %v, want %v", opts.Volumes, wantVolumes)
	}

	wantCommand := []string{"bash", containerCmdFile}
	if !reflect.DeepEqual(opts.Command, wantCommand) {
		t.Errorf("Command = %v, want %v", opts.Command, wantCommand)
	}
}

func TestRunnerOptions_BaseDirError(t *testing.T) {
	res := mustResolve(t, map[string]string{
		"token":             "secret",
		"configurationFile": "/does/not/exist/renovate.json",
	}, nil)

	if _, err := newTestRunner(&fakeEngine{}).Options(res); err == nil {
		t.Error("Options() should propagate configuration file read errors")
	}
}

func TestRunnerRun_PullsThenRuns(t *testing.T) {
	engine := &fakeEngine{available: true}
	res := mustResolve(t, map[string]string{"token": "secret"}, nil)

	if err := newTestRunner(engine).Run(context.Background(), res); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(engine.pulled) != 1 || engine.pulled[0] != DefaultImage+":"+DefaultVersion {
		t.Errorf("pulled = %v, want the default image", engine.pulled)
	}
	if len(engine.ran) != 1 {
		t.Fatalf("ran %d containers, want 1", len(engine.ran))
	}
	if engine.ran[0].Stdout == nil || engine.ran[0].Stderr == nil {
		t.Error("Run() should wire output streams into the engine")
	}
}

func TestRunnerRun_EngineUnavailable(t *testing.T) {
	engine := &fakeEngine{available: false}
	res := mustResolve(t, map[string]string{"token": "secret"}, nil)

	err := newTestRunner(engine).Run(context.Background(), res)
	if err == nil {
		t.Fatal("Run() should fail when no engine is available")
	}
	if len(engine.pulled) != 0 {
		t.Error("Run() should not pull when the engine is unavailable")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error type = %T, want *issue.ActionableError", err)
	}
	if ae.IssueId != issue.DockerNotFoundId {
		t.Errorf("IssueId = %v, want %v", ae.IssueId, issue.DockerNotFoundId)
	}
}

func TestRunnerRun_PullFailureStopsRun(t *testing.T) {
	engine := &fakeEngine{available: true, pullErr: errors.New("manifest unknown")}
	res := mustResolve(t, map[string]string{"token": "secret"}, nil)

	if err := newTestRunner(engine).Run(context.Background(), res); err == nil {
		t.Error("Run() should fail when the pull fails")
	}
	if len(engine.ran) != 0 {
		t.Error("Run() should not start the container after a failed pull")
	}
}

func TestRunnerRun_ContainerFailure(t *testing.T) {
	engine := &fakeEngine{available: true, runErr: errors.New("exit status 1")}
	res := mustResolve(t, map[string]string{"token": "secret"}, nil)

	err := newTestRunner(engine).Run(context.Background(), res)
	if err == nil {
		t.Fatal("Run() should surface a failed container run")
	}
	if !errors.Is(err, engine.runErr) {
		t.Errorf("error should wrap the engine failure, got: %v", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error type = %T, want *issue.ActionableError", err)
	}
	if ae.IssueId != issue.RenovateRunFailedId {
		t.Errorf("IssueId = %v, want %v", ae.IssueId, issue.RenovateRunFailedId)
	}
}
