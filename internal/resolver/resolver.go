// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"path/filepath"

	"golang.org/x/exp/slices"

	"renovate-runner/internal/issue"
)

// Canonical keys under which named settings are exposed to the container.
// The enumeration is closed: keys are never invented at runtime.
const (
	KeyToken      = "RENOVATE_TOKEN"
	KeyConfigFile = "RENOVATE_CONFIG_FILE"
	KeyBaseDir    = "RENOVATE_BASE_DIR"
)

// Structured input names as declared by the action metadata.
const (
	inputToken             = "token"
	inputConfigurationFile = "configurationFile"
	inputBaseDir           = "baseDir"
	inputEnvPattern        = "env-regex"
	inputImage             = "renovate-image"
	inputVersion           = "renovate-version"
	inputMountDockerSocket = "mount-docker-socket"
	inputDockerCmdFile     = "docker-cmd-file"
	inputDockerUser        = "docker-user"
)

type (
	// Setting is a resolved (key, value) pair in the form the container
	// consumes it: an environment-variable-style canonical key and a
	// string value, possibly empty.
	Setting struct {
		Key   string
		Value string
	}

	// InputFunc looks up a named structured input, returning the empty
	// string when the input is absent. The lookup never fails.
	InputFunc func(name string) string

	// Options carries the two injected sources a Resolver reads from.
	// Passing them explicitly (rather than reading ambient process state)
	// keeps construction deterministic and side-effect free in tests.
	Options struct {
		// Inputs looks up structured inputs. Nil behaves as all-absent.
		Inputs InputFunc
		// Environ is a snapshot of the process environment.
		Environ map[string]string
	}

	// descriptor is the static metadata for one recognized setting that
	// participates in two-source precedence resolution.
	descriptor struct {
		input    string // structured input name to check first
		key      string // canonical key, also the environment fallback name
		optional bool
	}

	// Resolver holds the settings resolved at construction plus the
	// passthrough remainder of the filtered environment. After New returns
	// the Resolver is immutable; accessors may be called in any order.
	Resolver struct {
		inputs      InputFunc
		resolved    map[string]Setting
		passthrough map[string]string
	}
)

// descriptors is the closed set of settings resolved by precedence across
// structured input and filtered environment. Order matters only for error
// reporting: the required token is validated first.
var descriptors = []descriptor{
	{input: inputToken, key: KeyToken},
	{input: inputConfigurationFile, key: KeyConfigFile, optional: true},
	{input: inputBaseDir, key: KeyBaseDir, optional: true},
}

// New builds a Resolver from the given sources. It compiles the allow-list
// pattern (the env-regex input may override the default), filters the
// environment snapshot, and resolves every descriptor. A missing required
// setting or an invalid pattern fails here, before anything else happens.
func New(opts Options) (*Resolver, error) {
	inputs := opts.Inputs
	if inputs == nil {
		inputs = func(string) string { return "" }
	}

	pattern, err := compilePattern(inputs(inputEnvPattern))
	if err != nil {
		return nil, err
	}
	filtered := filterEnviron(opts.Environ, pattern)

	resolved := make(map[string]Setting, len(descriptors))
	claimed := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		value := inputs(d.input)
		if value == "" {
			value = filtered[d.key]
		}
		if value == "" && !d.optional {
			return nil, issue.NewErrorContext().
				WithOperation("resolve required setting").
				WithResource(d.input).
				WithSuggestion(fmt.Sprintf("Provide the %q input", d.input)).
				WithSuggestion(fmt.Sprintf("Or set the %s environment variable", d.key)).
				WithIssue(issue.MissingTokenId).
				BuildError()
		}
		resolved[d.key] = Setting{Key: d.key, Value: value}
		claimed[d.key] = struct{}{}
	}

	passthrough := make(map[string]string, len(filtered))
	for name, value := range filtered {
		if _, ok := claimed[name]; ok {
			continue
		}
		passthrough[name] = value
	}

	return &Resolver{
		inputs:      inputs,
		resolved:    resolved,
		passthrough: passthrough,
	}, nil
}

// Token returns the required platform token setting.
func (r *Resolver) Token() Setting {
	return r.resolved[KeyToken]
}

// ConfigurationFile returns the configuration file setting with its value
// converted to an absolute path, or nil when no configuration file was
// resolved. Normalization is required because the container references the
// path in a different working-directory context.
func (r *Resolver) ConfigurationFile() (*Setting, error) {
	raw := r.resolved[KeyConfigFile].Value
	if raw == "" {
		return nil, nil
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, issue.WrapWithContext(err, "resolve configuration file path", raw)
	}
	return &Setting{Key: KeyConfigFile, Value: abs}, nil
}

// BaseDir returns the working directory for the Renovate run. An explicit
// override wins verbatim (callers supply it in container form, so it is
// deliberately not path-normalized); otherwise the resolved configuration
// file is read and its baseDir field returned. A missing or malformed
// configuration file is an error, never a silent empty result.
func (r *Resolver) BaseDir() (string, error) {
	if override := r.resolved[KeyBaseDir].Value; override != "" {
		return override, nil
	}

	cfg, err := r.ConfigurationFile()
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return "", nil
	}
	return readBaseDir(cfg.Value)
}

// Image returns the renovate-image input, empty when unset.
func (r *Resolver) Image() string {
	return r.inputs(inputImage)
}

// Version returns the renovate-version input, empty when unset.
func (r *Resolver) Version() string {
	return r.inputs(inputVersion)
}

// MountDockerSocket reports whether the docker socket should be mounted
// into the container. Only the literal "true" enables it.
func (r *Resolver) MountDockerSocket() bool {
	return r.inputs(inputMountDockerSocket) == "true"
}

// DockerCmdFile returns the docker-cmd-file input as an absolute path,
// empty when unset. Same normalization rationale as ConfigurationFile.
func (r *Resolver) DockerCmdFile() (string, error) {
	raw := r.inputs(inputDockerCmdFile)
	if raw == "" {
		return "", nil
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", issue.WrapWithContext(err, "resolve command file path", raw)
	}
	return abs, nil
}

// DockerUser returns the docker-user input, empty when unset.
func (r *Resolver) DockerUser() string {
	return r.inputs(inputDockerUser)
}

// PassthroughEnv returns every allow-listed environment variable that was
// not claimed by a named setting, sorted by key for deterministic output.
func (r *Resolver) PassthroughEnv() []Setting {
	settings := make([]Setting, 0, len(r.passthrough))
	for name, value := range r.passthrough {
		settings = append(settings, Setting{Key: name, Value: value})
	}
	slices.SortFunc(settings, func(a, b Setting) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		default:
			return 0
		}
	})
	return settings
}
