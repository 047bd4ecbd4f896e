// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"errors"

	"github.com/telekom/hopcheck/pkg/checks"
	"github.com/telekom/hopcheck/pkg/checks/ping"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
	"github.com/telekom/hopcheck/pkg/checks/traceroute"
)

var (
	// ErrNilConfig is returned when a check is created without a config
	ErrNilConfig = errors.New("config is nil")
	// ErrUnknownCheck is returned when a config belongs to no known check
	ErrUnknownCheck = errors.New("unknown check type")
)

// NewCheck creates a new check instance from the given config
func NewCheck(cfg checks.Runtime) (checks.Check, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if f, ok := registry[cfg.For()]; ok {
		c := f()
		err := c.UpdateConfig(cfg)
		return c, err
	}
	return nil, ErrUnknownCheck
}

// NewChecksFromConfig creates all checks defined provided config
func NewChecksFromConfig(cfg runtime.Config) (map[string]checks.Check, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := make(map[string]checks.Check)
	for c := range cfg.Iter() {
		check, err := NewCheck(c)
		if err != nil {
			return nil, err
		}
		result[check.Name()] = check
	}
	return result, nil
}

// registry is a convenience map to create new checks
var registry = map[string]func() checks.Check{
	ping.CheckName:       ping.NewCheck,
	traceroute.CheckName: traceroute.NewCheck,
}
