// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"errors"
	"fmt"

	"github.com/telekom/hopcheck/pkg/checks"
)

// ErrFinalShutdown is returned by Run once the agent has shut down
var ErrFinalShutdown = errors.New("agent shut down")

// ErrShutdown holds any errors that may
// have occurred during shutdown of the agent
type ErrShutdown struct {
	errAPI     error
	errMetrics error
}

// HasError returns true if any of the errors are set
func (e ErrShutdown) HasError() bool {
	return e.errAPI != nil || e.errMetrics != nil
}

// Error joins the shutdown errors
func (e ErrShutdown) Error() string {
	if err := errors.Join(e.errAPI, e.errMetrics); err != nil {
		return err.Error()
	}
	return ""
}

// ErrRunningCheck is reported when a check stops with an error
type ErrRunningCheck struct {
	Check checks.Check
	Err   error
}

func (e *ErrRunningCheck) Error() string {
	return fmt.Sprintf("check %s failed: %v", e.Check.Name(), e.Err)
}

func (e *ErrRunningCheck) Unwrap() error {
	return e.Err
}
