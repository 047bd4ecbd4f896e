// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"fmt"
)

// ErrConfigMismatch is returned when a check receives the configuration of another check
type ErrConfigMismatch struct {
	Expected string
	Current  string
}

func (e ErrConfigMismatch) Error() string {
	return fmt.Sprintf("config mismatch: expected config of check %q, got %q", e.Expected, e.Current)
}

// ErrInvalidConfig is returned when a field of a check configuration is invalid.
// Either Reason or the wrapped Err describes the problem.
type ErrInvalidConfig struct {
	CheckName string
	Field     string
	Reason    string
	Err       error
}

func (e ErrInvalidConfig) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	return fmt.Sprintf("invalid configuration field %q in check %q: %s", e.Field, e.CheckName, reason)
}

func (e ErrInvalidConfig) Unwrap() error {
	return e.Err
}

// ErrMetricNotFound is returned when no metrics are labelled with the given target
type ErrMetricNotFound struct {
	Label string
}

func (e ErrMetricNotFound) Error() string {
	return fmt.Sprintf("no metrics found for target %q", e.Label)
}
