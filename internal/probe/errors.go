// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"errors"
	"fmt"
)

var (
	// ErrICMPUnavailable is returned when no raw ICMP socket can be opened.
	// This typically occurs when the process lacks the NET_RAW capability
	// or runs in an environment where ICMP is restricted (e.g. some containers).
	ErrICMPUnavailable = errors.New("no NET_RAW capabilities, ICMP not available")
	// ErrTTLExceeded marks a TTL scoped probe whose packet expired in transit.
	ErrTTLExceeded = errors.New("time to live exceeded in transit")
	// ErrResolution is returned when a host cannot be resolved to an IPv4 address.
	ErrResolution = errors.New("failed to resolve host")
)

// ResolutionError is returned when the probed host cannot be resolved.
// It matches [ErrResolution] with [errors.Is].
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrResolution, e.Host, e.Err)
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// IsTTLExceeded reports whether the outcome signals that a TTL scoped
// probe expired at an intermediate hop.
func IsTTLExceeded(o Outcome) bool {
	return o.Kind() == Failed && errors.Is(o.Err(), ErrTTLExceeded)
}
