// SPDX-License-Identifier: MPL-2.0

package action

import (
	"os"
	"strings"
)

// inputPrefix is the host convention for exposing structured inputs as
// environment variables: the input name is uppercased, spaces become
// underscores, and the result is prefixed with INPUT_.
const inputPrefix = "INPUT_"

// Input looks up a named structured input and returns its value with
// surrounding whitespace trimmed. Unknown names yield the empty string;
// the lookup itself never fails.
func Input(name string) string {
	return strings.TrimSpace(os.Getenv(inputEnvName(name)))
}

// inputEnvName maps a structured input name to the environment variable
// the host stores it under.
func inputEnvName(name string) string {
	return inputPrefix + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Environ returns a point-in-time snapshot of the process environment as
// a name-to-value map. Entries without a '=' separator are dropped;
// entries with an empty name (Windows drive-letter oddities) are kept
// only if the name is non-empty.
func Environ() map[string]string {
	return environToMap(os.Environ())
}

// environToMap converts "KEY=VALUE" entries into a map. Later entries
// win over earlier duplicates, matching the behavior of os.Getenv.
func environToMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		idx := strings.IndexByte(entry, '=')
		if idx <= 0 {
			continue
		}
		env[entry[:idx]] = entry[idx+1:]
	}
	return env
}
