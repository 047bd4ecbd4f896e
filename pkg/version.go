// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package pkg contains metadata about hopcheck.
package pkg

// Version is the current version of hopcheck.
// It is set from the version of the main package on startup.
var Version string
