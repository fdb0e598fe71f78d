// SPDX-License-Identifier: MPL-2.0

// Package action reads the two raw input channels an action invocation
// receives from its host: named structured inputs and the process
// environment. It performs no validation and owns no decision logic;
// the resolver package consumes both through injected values so that
// unit tests never depend on ambient process state.
package action
