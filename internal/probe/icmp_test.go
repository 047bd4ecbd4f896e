// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// replyTo returns a raw echo reply datagram including an IPv4 header.
func replyTo(t testing.TB, typ ipv4.ICMPType, id, seq uint16) []byte {
	t.Helper()
	body, err := (&icmp.Message{
		Type: typ,
		Body: &icmp.Echo{ID: int(id), Seq: int(seq), Data: echoPayload},
	}).Marshal(nil)
	require.NoError(t, err)
	return append(ipHeader(t, len(body)), body...)
}

// newStreamConn returns a conn that waits step per call and then delivers the
// next datagram of stream. Once the stream is drained it only advances the clock.
func newStreamConn(clock *fakeClock, step time.Duration, stream [][]byte) *ConnMock {
	next := 0
	return &ConnMock{
		SendFunc: func(_ []byte, _ net.IP) error { return nil },
		WaitFunc: func(timeout time.Duration) (bool, error) {
			if next >= len(stream) {
				clock.Advance(timeout)
				return false, nil
			}
			clock.Advance(step)
			return true, nil
		},
		RecvFunc: func(b []byte) (int, error) {
			n := copy(b, stream[next])
			next++
			return n, nil
		},
		CloseFunc: func() error { return nil },
	}
}

func TestICMP_Probe(t *testing.T) {
	sess := SessionWithID(0xabcd)
	dst := net.IPv4(192, 0, 2, 1)

	decoys := func(n int) [][]byte {
		var s [][]byte
		for i := range n {
			s = append(s, replyTo(t, ipv4.ICMPTypeEchoReply, uint16(0x1000+i), 1)) // #nosec G115
		}
		return s
	}

	tests := []struct {
		name     string
		seq      uint16
		stream   [][]byte
		timeout  time.Duration
		wantKind Kind
		wantRTT  time.Duration
	}{
		{
			name:     "matching reply",
			stream:   [][]byte{replyTo(t, ipv4.ICMPTypeEchoReply, 0xabcd, 1)},
			timeout:  time.Second,
			wantKind: Success,
			wantRTT:  10 * time.Millisecond,
		},
		{
			name:     "decoys before matching reply",
			stream:   append(decoys(5), replyTo(t, ipv4.ICMPTypeEchoReply, 0xabcd, 1)),
			timeout:  time.Second,
			wantKind: Success,
			wantRTT:  60 * time.Millisecond,
		},
		{
			name:     "only decoys",
			stream:   decoys(3),
			timeout:  time.Second,
			wantKind: Timeout,
		},
		{
			name:     "decoys exhaust the budget",
			stream:   append(decoys(20), replyTo(t, ipv4.ICMPTypeEchoReply, 0xabcd, 1)),
			timeout:  100 * time.Millisecond,
			wantKind: Timeout,
		},
		{
			name: "own echo request is ignored",
			stream: [][]byte{
				replyTo(t, ipv4.ICMPTypeEcho, 0xabcd, 1),
				replyTo(t, ipv4.ICMPTypeEchoReply, 0xabcd, 1),
			},
			timeout:  time.Second,
			wantKind: Success,
			wantRTT:  20 * time.Millisecond,
		},
		{
			name:     "stale sequence is ignored",
			seq:      3,
			stream:   [][]byte{replyTo(t, ipv4.ICMPTypeEchoReply, 0xabcd, 2)},
			timeout:  time.Second,
			wantKind: Timeout,
		},
		{
			name: "stale sequence before matching reply",
			seq:  3,
			stream: [][]byte{
				replyTo(t, ipv4.ICMPTypeEchoReply, 0xabcd, 2),
				replyTo(t, ipv4.ICMPTypeEchoReply, 0xabcd, 3),
			},
			timeout:  time.Second,
			wantKind: Success,
			wantRTT:  20 * time.Millisecond,
		},
		{
			name:     "truncated datagrams are ignored",
			stream:   [][]byte{{0x45, 0x00}},
			timeout:  time.Second,
			wantKind: Timeout,
		},
		{
			name:     "no reply",
			stream:   nil,
			timeout:  time.Second,
			wantKind: Timeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Unix(0, 0)}
			conn := newStreamConn(clock, 10*time.Millisecond, tt.stream)
			p := &ICMP{now: clock.Now}
			seq := tt.seq
			if seq == 0 {
				seq = 1
			}

			got := p.Probe(t.Context(), conn, dst, sess, seq, tt.timeout)

			assert.Equal(t, tt.wantKind, got.Kind(), "outcome: %v", got)
			if tt.wantKind == Success {
				assert.Equal(t, tt.wantRTT, got.RTT())
			}

			require.Len(t, conn.SendCalls(), 1)
			sent := conn.SendCalls()[0]
			assert.True(t, dst.Equal(sent.Dst))
			h, ok := ParseEchoReply(append(ipHeader(t, len(sent.B)), sent.B...))
			require.True(t, ok)
			assert.Equal(t, sess.ID(), h.ID)
			assert.Equal(t, seq, h.Seq)
			for _, c := range conn.WaitCalls() {
				assert.LessOrEqual(t, c.Timeout, tt.timeout, "wait must never exceed the budget")
			}
		})
	}
}

func TestICMP_Probe_ShrinkingBudget(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	conn := &ConnMock{
		SendFunc: func(_ []byte, _ net.IP) error { return nil },
		WaitFunc: func(timeout time.Duration) (bool, error) {
			// spurious wake-up after a quarter of the budget
			clock.Advance(timeout / 4)
			if timeout < time.Millisecond {
				clock.Advance(timeout)
			}
			return false, nil
		},
		CloseFunc: func() error { return nil },
	}
	p := &ICMP{now: clock.Now}

	got := p.Probe(t.Context(), conn, net.IPv4(192, 0, 2, 1), SessionWithID(1), 1, time.Second)
	require.Equal(t, Timeout, got.Kind())

	calls := conn.WaitCalls()
	require.Greater(t, len(calls), 1)
	for i := 1; i < len(calls); i++ {
		assert.Less(t, calls[i].Timeout, calls[i-1].Timeout, "remaining budget must shrink")
	}
}

func TestICMP_Probe_Errors(t *testing.T) {
	errSocket := errors.New("socket broke")

	tests := []struct {
		name string
		conn *ConnMock
	}{
		{
			name: "send fails",
			conn: &ConnMock{
				SendFunc: func(_ []byte, _ net.IP) error { return errSocket },
			},
		},
		{
			name: "wait fails",
			conn: &ConnMock{
				SendFunc: func(_ []byte, _ net.IP) error { return nil },
				WaitFunc: func(_ time.Duration) (bool, error) { return false, errSocket },
			},
		},
		{
			name: "recv fails",
			conn: &ConnMock{
				SendFunc: func(_ []byte, _ net.IP) error { return nil },
				WaitFunc: func(_ time.Duration) (bool, error) { return true, nil },
				RecvFunc: func(_ []byte) (int, error) { return 0, errSocket },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewICMP().Probe(t.Context(), tt.conn, net.IPv4(192, 0, 2, 1), SessionWithID(1), 1, time.Second)
			assert.Equal(t, Failed, got.Kind())
			assert.ErrorIs(t, got.Err(), errSocket)
		})
	}
}

func TestICMP_Probe_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	conn := &ConnMock{
		SendFunc: func(_ []byte, _ net.IP) error { return nil },
		WaitFunc: func(_ time.Duration) (bool, error) {
			cancel()
			return false, nil
		},
	}

	got := NewICMP().Probe(ctx, conn, net.IPv4(192, 0, 2, 1), SessionWithID(1), 1, time.Hour)
	assert.Equal(t, Failed, got.Kind())
	assert.ErrorIs(t, got.Err(), context.Canceled)
	assert.Len(t, conn.WaitCalls(), 1)
}
