// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/hopcheck/internal/probe"
)

func TestTarget_String(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{name: "No Port", target: Target{Address: "100.1.1.7"}, want: "100.1.1.7"},
		{name: "With Port", target: Target{Address: "100.1.1.7", Port: 80}, want: "100.1.1.7:80"},
		{name: "Host name", target: Target{Address: "example.com", Port: 443}, want: "example.com:443"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.String())
		})
	}
}

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{name: "ip address", target: Target{Address: "10.0.0.1"}},
		{name: "host name", target: Target{Address: "example.com", Port: 443}},
		{name: "empty address", target: Target{}, wantErr: true},
		{name: "url", target: Target{Address: "https://example.com/"}, wantErr: true},
		{name: "whitespace", target: Target{Address: "exa mple.com"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTarget)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTarget_withDefaults(t *testing.T) {
	assert.Equal(t, uint16(DefaultPort), Target{Address: "a"}.withDefaults().Port)
	assert.Equal(t, uint16(443), Target{Address: "a", Port: 443}.withDefaults().Port)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Options) {}},
		{name: "zero hops", mutate: func(o *Options) { o.MaxHops = 0 }, wantErr: true},
		{name: "too many hops", mutate: func(o *Options) { o.MaxHops = 256 }, wantErr: true},
		{name: "no timeout", mutate: func(o *Options) { o.Timeout = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(o *Options) { o.HopDelay = -time.Second }, wantErr: true},
		{name: "no delays", mutate: func(o *Options) { o.HopDelay, o.AttemptDelay = 0, 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClassification_Reached(t *testing.T) {
	tests := []struct {
		c    Classification
		want bool
	}{
		{Timeout, false},
		{HostUnreachable, false},
		{IntermediateHop, false},
		{DestinationReachedPortClosed, true},
		{DestinationReached, true},
	}
	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Reached())
		})
	}
}

func TestHop_String(t *testing.T) {
	hop := Hop{
		TTL: 7,
		Attempts: [AttemptsPerHop]probe.Outcome{
			probe.Succeeded(1500 * time.Microsecond),
			probe.TimedOut(),
			probe.Refused(2 * time.Millisecond),
		},
		Classification: DestinationReached,
	}

	got := hop.String()
	assert.Contains(t, got, "7")
	assert.Contains(t, got, "1.500 ms")
	assert.Contains(t, got, "*")
	assert.Contains(t, got, "2.000 ms")
	assert.Contains(t, got, "destination reached")
	assert.Equal(t, []time.Duration{1500 * time.Microsecond, 2 * time.Millisecond}, hop.RTTs())
}

func TestResult_MarshalJSON(t *testing.T) {
	res := Result{
		Target: Target{Address: "example.com", Port: 80},
		Addr:   net.IPv4(192, 0, 2, 1).To4(),
		Hops: []Hop{{
			TTL: 1,
			Attempts: [AttemptsPerHop]probe.Outcome{
				probe.Errored(errors.Join(probe.ErrTTLExceeded)),
				probe.TimedOut(),
				probe.TimedOut(),
			},
			Classification: IntermediateHop,
		}},
		Exhausted: true,
	}

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "192.0.2.1", got["addr"])
	assert.Equal(t, true, got["exhausted"])
	assert.NotContains(t, got, "name")
	hops := got["hops"].([]any)
	require.Len(t, hops, 1)
	assert.Equal(t, "intermediate hop", hops[0].(map[string]any)["classification"])
}

func TestResult_Distance(t *testing.T) {
	_, ok := Result{Exhausted: true, Hops: []Hop{{TTL: 1}}}.Distance()
	assert.False(t, ok)

	d, ok := Result{Reached: true, Hops: []Hop{{TTL: 1}, {TTL: 2, Classification: DestinationReached}}}.Distance()
	assert.True(t, ok)
	assert.Equal(t, 2, d)
}
