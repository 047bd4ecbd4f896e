// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"errors"
	"time"

	"github.com/telekom/hopcheck/internal/helper"
)

const (
	DefaultCount    = 4
	DefaultInterval = time.Second
	DefaultPort     = 80
	DefaultTimeout  = time.Second
)

// Options configure a ping run.
type Options struct {
	// Count is the number of probes to send.
	Count uint32 `json:"count" yaml:"count" mapstructure:"count"`
	// Interval is the pause between two probes.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	// Port is the TCP port used when falling back to TCP probes.
	Port uint16 `json:"port" yaml:"port" mapstructure:"port"`
	// ForceTCP skips ICMP and uses TCP probes only.
	ForceTCP bool `json:"forceTCP" yaml:"forceTCP" mapstructure:"forceTCP"`
	// Timeout is the timeout of a single probe.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Retry configures retries of the host resolution.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		Count:    DefaultCount,
		Interval: DefaultInterval,
		Port:     DefaultPort,
		Timeout:  DefaultTimeout,
	}
}

// Validate checks that the options describe a runnable ping.
func (o *Options) Validate() error {
	var err error
	if o.Count == 0 {
		err = errors.Join(err, errors.New("count must be greater than 0"))
	}
	if o.Interval < 0 {
		err = errors.Join(err, errors.New("interval must not be negative"))
	}
	if o.Timeout <= 0 {
		err = errors.Join(err, errors.New("timeout must be greater than 0"))
	}
	if o.Port == 0 {
		err = errors.Join(err, errors.New("port must be greater than 0"))
	}
	return err
}
