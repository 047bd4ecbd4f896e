// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/probe"
)

func TestGenericClient_Run_validation(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		opts    *Options
		wantErr error
	}{
		{name: "empty target", target: Target{}, wantErr: ErrInvalidTarget},
		{name: "invalid options", target: Target{Address: "10.0.0.1"}, opts: &Options{MaxHops: 0}, wantErr: ErrInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &ClientMock{}
			c := &genericClient{tcp: inner}

			_, err := c.Run(t.Context(), tt.target, tt.opts, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, inner.RunCalls(), "invalid input must not start a trace")
		})
	}
}

func TestGenericClient_Run_defaults(t *testing.T) {
	inner := &ClientMock{
		RunFunc: func(_ context.Context, target Target, opts *Options, _ func(Hop)) (Result, error) {
			return Result{Target: target}, nil
		},
	}
	c := &genericClient{tcp: inner}

	res, err := c.Run(t.Context(), Target{Address: "example.com"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Target{Address: "example.com", Port: DefaultPort}, res.Target)

	calls := inner.RunCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, DefaultOptions(), *calls[0].Opts)
}

func newTestClient(outcomes map[int]probe.Outcome) (*tcpClient, *proberMock) {
	p := &proberMock{ProbeFunc: byTTL(outcomes)}
	return &tcpClient{
		resolver: &probe.ResolverMock{
			LookupIPFunc: func(context.Context, string, string) ([]net.IP, error) {
				return []net.IP{testDst}, nil
			},
		},
		lookupName: func(context.Context, string) ([]string, error) {
			return []string{"dst.example.com."}, nil
		},
		prober: p,
	}, p
}

func TestTCPClient_Run(t *testing.T) {
	t.Run("reached", func(t *testing.T) {
		c, _ := newTestClient(map[int]probe.Outcome{1: expired, 2: refused})
		opts := Options{MaxHops: 10, Timeout: DefaultTimeout}

		res, err := c.Run(t.Context(), Target{Address: "dst.example.com", Port: 22}, &opts, nil)
		require.NoError(t, err)
		assert.Equal(t, testDst, res.Addr)
		assert.Equal(t, "dst.example.com", res.Name)
		assert.True(t, res.Reached)
		assert.False(t, res.Exhausted)
		require.Len(t, res.Hops, 2)
		assert.Equal(t, DestinationReachedPortClosed, res.Hops[1].Classification)
	})

	t.Run("exhausted", func(t *testing.T) {
		c, p := newTestClient(nil)
		opts := Options{MaxHops: 4, Timeout: DefaultTimeout}

		res, err := c.Run(t.Context(), Target{Address: "dst.example.com", Port: 22}, &opts, nil)
		require.NoError(t, err, "running out of hops is not an error")
		assert.False(t, res.Reached)
		assert.True(t, res.Exhausted)
		assert.Len(t, res.Hops, 4)
		assert.Len(t, p.ProbeCalls(), 4*AttemptsPerHop)
	})

	t.Run("resolution failure", func(t *testing.T) {
		c, p := newTestClient(nil)
		c.resolver = &probe.ResolverMock{
			LookupIPFunc: func(context.Context, string, string) ([]net.IP, error) {
				return nil, &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}
			},
		}
		opts := Options{MaxHops: 4, Timeout: DefaultTimeout, Retry: helper.RetryConfig{Count: 2}}

		res, err := c.Run(t.Context(), Target{Address: "nope.invalid", Port: 22}, &opts, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, probe.ErrResolution)
		assert.Empty(t, res.Hops)
		assert.Empty(t, p.ProbeCalls(), "no probe may be sent without an address")
	})

	t.Run("interrupted", func(t *testing.T) {
		c, _ := newTestClient(nil)
		ctx, cancel := context.WithCancel(t.Context())
		opts := Options{MaxHops: 10, Timeout: DefaultTimeout}

		res, err := c.Run(ctx, Target{Address: "dst.example.com", Port: 22}, &opts, func(Hop) { cancel() })
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Len(t, res.Hops, 1)
		assert.False(t, res.Exhausted)
	})
}
