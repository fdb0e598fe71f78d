// SPDX-License-Identifier: MPL-2.0

// Package resolver decides, for every recognized Renovate setting, which of
// the possibly-conflicting sources wins: an explicit structured input always
// beats the ambient environment, and environment variables only reach the
// container if they match the allow-list pattern.
//
// Resolution is two-phase: all named settings are computed functionally
// against the filtered environment at construction, the claimed canonical
// keys are collected, and the passthrough export is the filtered map minus
// the claimed set. A variable therefore never appears both as a named
// setting and in the generic passthrough list, regardless of accessor
// call order.
package resolver
