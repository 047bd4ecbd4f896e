// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/probe"
)

const (
	// AttemptsPerHop is the number of probes sent for every TTL.
	AttemptsPerHop = 3

	DefaultMaxHops      = 30
	DefaultPort         = 80
	DefaultTimeout      = time.Second
	DefaultAttemptDelay = 200 * time.Millisecond
	DefaultHopDelay     = 100 * time.Millisecond
)

// Options contains the optional configuration for the traceroute.
type Options struct {
	// Retry is the retry configuration for resolving the target.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
	// MaxHops is the maximum TTL to use for the traceroute.
	MaxHops int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// Timeout is the timeout for each attempt in the traceroute.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// AttemptDelay is the pause between two attempts of the same hop.
	AttemptDelay time.Duration `json:"attemptDelay" yaml:"attemptDelay" mapstructure:"attemptDelay"`
	// HopDelay is the pause between two hops.
	HopDelay time.Duration `json:"hopDelay" yaml:"hopDelay" mapstructure:"hopDelay"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		MaxHops:      DefaultMaxHops,
		Timeout:      DefaultTimeout,
		AttemptDelay: DefaultAttemptDelay,
		HopDelay:     DefaultHopDelay,
	}
}

func (o *Options) Validate() error {
	switch {
	case o.MaxHops < 1 || o.MaxHops > 255:
		return fmt.Errorf("%w: max hops must be between 1 and 255, got %d", ErrInvalidOptions, o.MaxHops)
	case o.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be greater than 0", ErrInvalidOptions)
	case o.AttemptDelay < 0 || o.HopDelay < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidOptions)
	}
	return nil
}

// Target represents a target for the traceroute.
type Target struct {
	// Address is the host name or IPv4 address to trace to.
	Address string `json:"address" yaml:"address" mapstructure:"address"`
	// Port is the TCP port the probes connect to.
	Port uint16 `json:"port" yaml:"port" mapstructure:"port"`
}

func (t Target) String() string {
	if t.Port != 0 {
		return net.JoinHostPort(t.Address, strconv.Itoa(int(t.Port)))
	}
	return t.Address
}

func (t Target) Validate() error {
	if t.Address == "" {
		return fmt.Errorf("%w: address cannot be empty", ErrInvalidTarget)
	}
	if strings.ContainsAny(t.Address, "/ ") {
		return fmt.Errorf("%w: %q is neither a host name nor an IP address", ErrInvalidTarget, t.Address)
	}
	return nil
}

// withDefaults returns the target with the default port set if none was given.
func (t Target) withDefaults() Target {
	if t.Port == 0 {
		t.Port = DefaultPort
	}
	return t
}

// Classification is the verdict on a single hop.
type Classification int

const (
	// Timeout means none of the attempts got an answer.
	Timeout Classification = iota
	// HostUnreachable means the network reported no path at this distance.
	HostUnreachable
	// IntermediateHop means a router at this distance expired the probe.
	IntermediateHop
	// DestinationReachedPortClosed means the destination refused the connection.
	DestinationReachedPortClosed
	// DestinationReached means the destination accepted the connection.
	DestinationReached
)

func (c Classification) String() string {
	switch c {
	case Timeout:
		return "timeout"
	case HostUnreachable:
		return "host unreachable"
	case IntermediateHop:
		return "intermediate hop"
	case DestinationReachedPortClosed:
		return "destination reached (port closed)"
	case DestinationReached:
		return "destination reached"
	default:
		return "unknown"
	}
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Reached reports whether the destination answered at this hop.
func (c Classification) Reached() bool {
	return c == DestinationReached || c == DestinationReachedPortClosed
}

// Hop is the classified result of all attempts at one TTL.
type Hop struct {
	TTL            int                           `json:"ttl" yaml:"ttl"`
	Attempts       [AttemptsPerHop]probe.Outcome `json:"attempts" yaml:"-"`
	Classification Classification                `json:"classification" yaml:"classification"`
}

// Reached reports whether the destination answered at this hop.
func (h Hop) Reached() bool {
	return h.Classification.Reached()
}

// RTTs returns the round-trip times of all attempts that got an answer.
func (h Hop) RTTs() []time.Duration {
	var rtts []time.Duration
	for _, a := range h.Attempts {
		if a.Received() {
			rtts = append(rtts, a.RTT())
		}
	}
	return rtts
}

func (h Hop) String() string {
	cols := make([]string, 0, AttemptsPerHop)
	for _, a := range h.Attempts {
		if a.Received() {
			cols = append(cols, fmt.Sprintf("%.3f ms", float64(a.RTT())/float64(time.Millisecond)))
			continue
		}
		cols = append(cols, "*")
	}
	return fmt.Sprintf("%-3d  %-11s %-11s %-11s  %s", h.TTL, cols[0], cols[1], cols[2], h.Classification)
}

// Result is the outcome of a whole traceroute.
type Result struct {
	// Target is the traced target.
	Target Target `json:"target"`
	// Addr is the address the target resolved to.
	Addr net.IP `json:"addr"`
	// Name is the reverse DNS name of Addr, if any.
	Name string `json:"name,omitempty"`
	// Hops are the hops in TTL order.
	Hops []Hop `json:"hops"`
	// Reached is true if the destination answered.
	Reached bool `json:"reached"`
	// Exhausted is true if the trace ran out of hops without reaching the destination.
	Exhausted bool `json:"exhausted"`
}

// Distance returns the TTL at which the destination answered.
func (r Result) Distance() (int, bool) {
	if !r.Reached || len(r.Hops) == 0 {
		return 0, false
	}
	return r.Hops[len(r.Hops)-1].TTL, true
}
