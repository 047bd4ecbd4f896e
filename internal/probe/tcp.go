// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// dialFunc dials a TCP connection to addr. A ttl greater than 0 sets the
// outgoing IP TTL of the socket before connecting.
type dialFunc func(ctx context.Context, addr *net.TCPAddr, ttl int, timeout time.Duration) (net.Conn, error)

// TCP measures the TCP handshake to a host. It never needs elevated privileges.
type TCP struct {
	dial dialFunc
}

// NewTCP returns a new TCP connect prober.
func NewTCP() *TCP {
	return &TCP{dial: dialTCP}
}

// Probe performs one connect attempt to dst:port. If ttl is greater
// than 0 the probe is TTL scoped and an expiry in transit is reported as a
// [Failed] outcome wrapping [ErrTTLExceeded].
// An established connection is closed immediately.
func (p *TCP) Probe(ctx context.Context, dst net.IP, port uint16, timeout time.Duration, ttl int) Outcome {
	addr := &net.TCPAddr{IP: dst, Port: int(port)}

	start := time.Now()
	conn, err := p.dial(ctx, addr, ttl, timeout)
	elapsed := time.Since(start)
	if err != nil {
		return classifyDialError(err, ttl > 0, elapsed)
	}
	_ = conn.Close()
	return Succeeded(elapsed)
}

// dialTCP dials a TCP connection to the given address with the specified TTL.
func dialTCP(ctx context.Context, addr *net.TCPAddr, ttl int, timeout time.Duration) (net.Conn, error) {
	dialer := net.Dialer{
		Timeout: timeout,
	}
	if ttl > 0 {
		dialer.ControlContext = func(_ context.Context, _, _ string, c syscall.RawConn) error {
			var opErr error
			if err := c.Control(func(fd uintptr) {
				opErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TTL, ttl) // #nosec G115 // The net package is safe to use
			}); err != nil {
				return err
			}
			return opErr
		}
	}

	return dialer.DialContext(ctx, "tcp4", addr.String())
}

// ttlExpiredMessages are substrings some network stacks use to report
// a TTL expiry instead of a dedicated errno.
var ttlExpiredMessages = []string{
	"time to live exceeded",
	"ttl expired",
}

// classifyDialError maps a dial error to an [Outcome].
//
// Linux reports an ICMP time exceeded received during SYN_SENT as
// EHOSTUNREACH, so for TTL scoped probes it means the packet expired at an
// intermediate hop.
func classifyDialError(err error, scoped bool, elapsed time.Duration) Outcome {
	var netErr net.Error
	switch {
	case errors.Is(err, unix.ECONNREFUSED):
		return Refused(elapsed)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, unix.ETIMEDOUT),
		errors.As(err, &netErr) && netErr.Timeout():
		return TimedOut()
	case scoped && errors.Is(err, unix.EHOSTUNREACH):
		return Errored(fmt.Errorf("%w: %w", ErrTTLExceeded, err))
	case errors.Is(err, unix.EHOSTUNREACH), errors.Is(err, unix.ENETUNREACH):
		return Unreachable()
	case hasTTLExpiredMessage(err):
		return Errored(fmt.Errorf("%w: %w", ErrTTLExceeded, err))
	default:
		return Errored(err)
	}
}

func hasTTLExpiredMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range ttlExpiredMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
