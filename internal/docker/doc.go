// SPDX-License-Identifier: EPL-2.0

// Package docker launches the Renovate container from a resolved
// configuration. It shells out to the docker CLI rather than linking a
// client library: the action runs on CI hosts where the CLI is the one
// stable interface, and the exec layer is injectable for tests.
package docker
