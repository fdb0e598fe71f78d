// SPDX-License-Identifier: EPL-2.0

// Package testutil provides helper functions for tests that handle
// setup errors appropriately, reducing boilerplate around environment
// variables, working directories, and fixture files.
package testutil
