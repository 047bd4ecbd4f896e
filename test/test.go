// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package test holds helpers shared by the package tests.
package test

import (
	"os"
	"testing"
)

// MarkAsShort marks the test as a short test.
// Short tests run in every mode and must not touch the network.
func MarkAsShort(t testing.TB) {
	t.Helper()
}

// MarkAsPrivileged skips the test unless it runs with root privileges.
// Privileged tests open raw ICMP sockets.
func MarkAsPrivileged(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping privileged test in short mode")
	}
	if os.Geteuid() != 0 {
		t.Skip("skipping test that requires root privileges")
	}
}
