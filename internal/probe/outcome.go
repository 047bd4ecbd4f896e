// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"encoding/json"
	"time"
)

// Kind is the kind of an [Outcome].
type Kind int

// The zero Kind is [Timeout], so a zero Outcome never claims a reply.
const (
	// Timeout means nothing came back within the probe's timeout.
	Timeout Kind = iota
	// Success means the probe got a reply or completed the handshake.
	Success
	// HostUnreachable means the network stack reported no path to the host.
	HostUnreachable
	// ConnectionRefused means the host answered with a reset: it is reachable
	// but nothing listens on the probed port.
	ConnectionRefused
	// Failed means any other error. The cause is available via [Outcome.Err].
	Failed
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Timeout:
		return "timeout"
	case HostUnreachable:
		return "host unreachable"
	case ConnectionRefused:
		return "connection refused"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the result of exactly one probe attempt.
// Outcomes can only be created with the constructors of this package.
type Outcome struct {
	kind Kind
	rtt  time.Duration
	err  error
}

// Succeeded returns a [Success] outcome with the given round-trip time.
func Succeeded(rtt time.Duration) Outcome {
	return Outcome{kind: Success, rtt: rtt}
}

// TimedOut returns a [Timeout] outcome.
func TimedOut() Outcome {
	return Outcome{kind: Timeout}
}

// Unreachable returns a [HostUnreachable] outcome.
func Unreachable() Outcome {
	return Outcome{kind: HostUnreachable}
}

// Refused returns a [ConnectionRefused] outcome. The round-trip time is the
// time it took until the reset arrived.
func Refused(rtt time.Duration) Outcome {
	return Outcome{kind: ConnectionRefused, rtt: rtt}
}

// Errored returns a [Failed] outcome caused by err.
func Errored(err error) Outcome {
	return Outcome{kind: Failed, err: err}
}

// Kind returns the kind of the outcome.
func (o Outcome) Kind() Kind {
	return o.kind
}

// RTT returns the round-trip time. It is only set for [Success] and [ConnectionRefused].
func (o Outcome) RTT() time.Duration {
	return o.rtt
}

// Err returns the cause of a [Failed] outcome, nil otherwise.
func (o Outcome) Err() error {
	return o.err
}

// Received reports whether the probe proves the host is reachable.
func (o Outcome) Received() bool {
	return o.kind == Success || o.kind == ConnectionRefused
}

func (o Outcome) String() string {
	switch o.kind {
	case Success, ConnectionRefused:
		return o.kind.String() + " (" + o.rtt.String() + ")"
	case Failed:
		if o.err != nil {
			return o.kind.String() + ": " + o.err.Error()
		}
	}
	return o.kind.String()
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind  string `json:"kind"`
		RTT   string `json:"rtt,omitempty"`
		Error string `json:"error,omitempty"`
	}{
		Kind: o.kind.String(),
	}
	if o.Received() {
		out.RTT = o.rtt.String()
	}
	if o.err != nil {
		out.Error = o.err.Error()
	}
	return json.Marshal(out)
}
