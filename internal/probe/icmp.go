// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/telekom/hopcheck/internal/logger"
)

// recvBufferSize is large enough for any IPv4 datagram carrying an echo reply.
const recvBufferSize = 1500

// Conn is a raw ICMP endpoint.
//
//go:generate go tool moq -out conn_moq.go . Conn
type Conn interface {
	// Send writes one ICMP message to dst.
	Send(b []byte, dst net.IP) error
	// Wait blocks until a datagram can be read or the timeout elapses.
	// It reports whether the endpoint is readable. A spurious wake-up
	// returns false without an error.
	Wait(timeout time.Duration) (bool, error)
	// Recv reads one datagram including its IPv4 header into b.
	Recv(b []byte) (int, error)
	// Close releases the endpoint.
	Close() error
}

// ICMP sends echo requests over a [Conn] and waits for the matching reply.
type ICMP struct {
	// now returns the current time. It must carry a monotonic reading.
	now func() time.Time
}

// NewICMP returns a new ICMP prober.
func NewICMP() *ICMP {
	return &ICMP{now: time.Now}
}

// Probe sends one echo request with the session identifier and seq to dst
// and waits up to timeout for a reply carrying the same identifier.
// Replies of other sessions are discarded and the wait continues with the
// remaining budget.
func (p *ICMP) Probe(ctx context.Context, conn Conn, dst net.IP, sess Session, seq uint16, timeout time.Duration) Outcome {
	log := logger.FromContext(ctx).With("dst", dst.String(), "id", sess.ID(), "seq", seq)

	start := p.now()
	deadline := start.Add(timeout)
	if err := conn.Send(BuildEchoRequest(sess.ID(), seq), dst); err != nil {
		log.DebugContext(ctx, "Failed to send echo request", "error", err)
		return Errored(fmt.Errorf("failed to send echo request: %w", err))
	}

	buf := make([]byte, recvBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return Errored(err)
		}

		remaining := deadline.Sub(p.now())
		if remaining <= 0 {
			log.DebugContext(ctx, "No matching echo reply within timeout", "timeout", timeout)
			return TimedOut()
		}

		ready, err := conn.Wait(remaining)
		if err != nil {
			return Errored(fmt.Errorf("failed to wait for echo reply: %w", err))
		}
		if !ready {
			continue
		}

		n, err := conn.Recv(buf)
		if err != nil {
			return Errored(fmt.Errorf("failed to read echo reply: %w", err))
		}
		received := p.now()

		h, ok := ParseEchoReply(buf[:n])
		if !ok || !h.IsReply() || h.ID != sess.ID() {
			log.DebugContext(ctx, "Discarding foreign ICMP message", "type", h.Type, "replyID", h.ID)
			continue
		}
		if h.Seq != seq {
			log.DebugContext(ctx, "Discarding stale echo reply", "replySeq", h.Seq)
			continue
		}
		return Succeeded(received.Sub(start))
	}
}
