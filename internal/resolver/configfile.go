// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"github.com/spf13/viper"

	"renovate-runner/internal/issue"
)

// baseDirField is the only configuration file field the resolver consults.
const baseDirField = "baseDir"

// readBaseDir reads the configuration file at path as JSON and returns its
// baseDir field, empty when the field is absent. The file is parsed once
// per call and not cached. Read and parse failures are reported as errors:
// a malformed configuration file must not be mistaken for "no base
// directory requested".
func readBaseDir(path string) (string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("read configuration file").
			WithResource(path).
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Check that the file contains valid JSON").
			WithIssue(issue.ConfigFileReadErrorId).
			Wrap(err).
			BuildError()
	}

	return v.GetString(baseDirField), nil
}
