// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package probe

import (
	"fmt"
	"runtime"
)

// OpenICMP reports [ErrICMPUnavailable], raw ICMP sockets are only supported on linux.
func OpenICMP() (Conn, error) {
	return nil, fmt.Errorf("%w: unsupported platform %s", ErrICMPUnavailable, runtime.GOOS)
}
