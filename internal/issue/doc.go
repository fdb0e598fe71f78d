// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that carry remediation steps, plus a catalogue
// of known failure modes (missing token, unreadable configuration file, absent
// container engine) with Markdown-formatted guidance rendered at the CLI layer.
package issue
