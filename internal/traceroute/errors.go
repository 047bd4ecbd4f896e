// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
)

var (
	// ErrInvalidTarget is returned when a target can't be traced.
	ErrInvalidTarget = errors.New("invalid traceroute target")
	// ErrInvalidOptions is returned when the traceroute options are invalid.
	ErrInvalidOptions = errors.New("invalid traceroute options")
)

// isCanceled checks if the error is caused by
// the caller stopping the traceroute.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
