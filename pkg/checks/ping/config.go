// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/ping"
	"github.com/telekom/hopcheck/pkg/checks"
)

const (
	minInterval = 100 * time.Millisecond
	minTimeout  = 100 * time.Millisecond
)

// Config defines the configuration parameters for a ping check
type Config struct {
	// Targets are the host names or IPv4 addresses to ping.
	Targets []string `json:"targets" yaml:"targets" mapstructure:"targets"`
	// Interval is the pause between two check runs.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	// Count is the number of probes sent to every target per run.
	Count uint32 `json:"count" yaml:"count" mapstructure:"count"`
	// ProbeInterval is the pause between two probes to the same target.
	ProbeInterval time.Duration `json:"probeInterval" yaml:"probeInterval" mapstructure:"probeInterval"`
	// Timeout is the timeout of a single probe.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Port is the TCP port used when ICMP isn't available.
	Port uint16 `json:"port" yaml:"port" mapstructure:"port"`
	// ForceTCP disables ICMP probes.
	ForceTCP bool `json:"forceTCP" yaml:"forceTCP" mapstructure:"forceTCP"`
	// Retry configures how often a target's resolution is retried.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// For returns the name of the check
func (c *Config) For() string {
	return CheckName
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	for i, t := range c.Targets {
		if t == "" || strings.Contains(t, "://") || strings.ContainsAny(t, "/ ") {
			return checks.ErrInvalidConfig{CheckName: c.For(), Field: fmt.Sprintf("ping.targets[%d]", i), Reason: "must be a host name or an IPv4 address"}
		}
		if ip := net.ParseIP(t); ip != nil && ip.To4() == nil {
			return checks.ErrInvalidConfig{CheckName: c.For(), Field: fmt.Sprintf("ping.targets[%d]", i), Reason: "IPv6 addresses are not supported"}
		}
	}

	if c.Interval < minInterval {
		return checks.ErrInvalidConfig{CheckName: c.For(), Field: "ping.interval", Reason: fmt.Sprintf("interval must be at least %v", minInterval)}
	}

	if c.Timeout < minTimeout {
		return checks.ErrInvalidConfig{CheckName: c.For(), Field: "ping.timeout", Reason: fmt.Sprintf("timeout must be at least %v", minTimeout)}
	}

	opts := c.options()
	if err := opts.Validate(); err != nil {
		return checks.ErrInvalidConfig{CheckName: c.For(), Field: "ping", Err: err}
	}
	return nil
}

// options returns the options of a single ping run.
// Unset values fall back to the ping defaults.
func (c *Config) options() ping.Options {
	opts := ping.DefaultOptions()
	if c.Count > 0 {
		opts.Count = c.Count
	}
	if c.ProbeInterval > 0 {
		opts.Interval = c.ProbeInterval
	}
	if c.Timeout > 0 {
		opts.Timeout = c.Timeout
	}
	if c.Port > 0 {
		opts.Port = c.Port
	}
	opts.ForceTCP = c.ForceTCP
	opts.Retry = c.Retry
	return opts
}
