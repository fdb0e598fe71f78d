// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "renovate-runner/cmd/renovate-runner"
)

func main() {
	cmd.Execute()
}
