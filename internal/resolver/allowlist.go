// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"regexp"

	"renovate-runner/internal/issue"
)

// DefaultEnvPattern is the default allow-list for environment variables
// forwarded to the Renovate container: anything with the RENOVATE_ prefix,
// plus a small fixed set of passthrough names for logging, the github.com
// token, Node runtime tuning, and proxy configuration in both upper- and
// lower-case conventions.
const DefaultEnvPattern = `^(?:RENOVATE_\w+|LOG_LEVEL|GITHUB_COM_TOKEN|NODE_OPTIONS|(?:HTTPS?|NO)_PROXY|(?:https?|no)_proxy)$`

// compilePattern compiles the allow-list pattern, honoring a caller override
// before the default. An invalid override is a hard error rather than a
// silent fallback to the default pattern.
func compilePattern(override string) (*regexp.Regexp, error) {
	pattern := DefaultEnvPattern
	if override != "" {
		pattern = override
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("compile environment allow-list pattern").
			WithResource(pattern).
			WithSuggestion("Remove the env-regex input to use the default pattern").
			WithSuggestion("Check the pattern against Go's RE2 syntax (https://pkg.go.dev/regexp/syntax)").
			WithIssue(issue.InvalidEnvPatternId).
			Wrap(err).
			BuildError()
	}
	return re, nil
}

// filterEnviron intersects an environment snapshot against the allow-list,
// keeping exactly the entries whose name matches.
func filterEnviron(environ map[string]string, pattern *regexp.Regexp) map[string]string {
	filtered := make(map[string]string)
	for name, value := range environ {
		if pattern.MatchString(name) {
			filtered[name] = value
		}
	}
	return filtered
}
