// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/hopcheck/internal/probe"
	"github.com/telekom/hopcheck/internal/traceroute"
	"github.com/telekom/hopcheck/pkg/checks"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name string
		c    *Traceroute
		want result
	}{
		{
			name: "no targets",
			c:    newTraceroute(t, Config{Options: traceroute.Options{MaxHops: 5, Timeout: time.Second}}),
			want: result{},
		},
		{
			name: "Success 5 hops",
			c:    newTraceroute(t, Config{Options: traceroute.Options{MaxHops: 5, Timeout: time.Second}, Targets: []traceroute.Target{{Address: "8.8.8.8", Port: 53}}}),
			want: result{
				"8.8.8.8:53": {
					Addr:    "8.8.8.8",
					Name:    "dns.google",
					Reached: true,
					Hops: []hopResult{
						{TTL: 1, Classification: "intermediate hop", RTTs: []float64{}},
						{TTL: 2, Classification: "timeout", RTTs: []float64{}},
						{TTL: 3, Classification: "intermediate hop", RTTs: []float64{}},
						{TTL: 4, Classification: "timeout", RTTs: []float64{}},
						{TTL: 5, Classification: "destination reached", RTTs: []float64{12, 12, 12}},
					},
				},
			},
		},
		{
			name: "Exhausted and port closed",
			c: newTraceroute(t, Config{Options: traceroute.Options{MaxHops: 2, Timeout: time.Second}, Targets: []traceroute.Target{
				{Address: "192.0.2.1"},
				{Address: "192.0.2.2", Port: 22},
			}}),
			want: result{
				"192.0.2.1": {
					Addr:      "192.0.2.1",
					Exhausted: true,
					Hops: []hopResult{
						{TTL: 1, Classification: "intermediate hop", RTTs: []float64{}},
						{TTL: 2, Classification: "timeout", RTTs: []float64{}},
					},
				},
				"192.0.2.2:22": {
					Addr:    "192.0.2.2",
					Reached: true,
					Hops: []hopResult{
						{TTL: 1, Classification: "destination reached (port closed)", RTTs: []float64{3, 3, 3}},
					},
				},
			},
		},
		{
			name: "Unresolvable target",
			c:    newTraceroute(t, Config{Options: traceroute.Options{MaxHops: 5, Timeout: time.Second}, Targets: []traceroute.Target{{Address: "does-not-exist.invalid"}}}),
			want: result{
				"does-not-exist.invalid": {
					Hops:  []hopResult{},
					Error: (&probe.ResolutionError{Host: "does-not-exist.invalid", Err: assert.AnError}).Error(),
				},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := c.c.check(t.Context())

			if diff := cmp.Diff(c.want, res); diff != "" {
				t.Errorf("unexpected result: -want +got\n%s", diff)
			}
		})
	}
}

func TestTraceroute_metrics(t *testing.T) {
	c := newTraceroute(t, Config{Options: traceroute.Options{MaxHops: 5, Timeout: time.Second}, Targets: []traceroute.Target{{Address: "8.8.8.8", Port: 53}, {Address: "192.0.2.1"}}})

	c.metrics.Set(c.check(t.Context()))
	assert.InDelta(t, 5.0, testutil.ToFloat64(c.metrics.minHops.WithLabelValues("8.8.8.8:53")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.metrics.reached.WithLabelValues("8.8.8.8:53")), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(c.metrics.reached.WithLabelValues("192.0.2.1")), 1e-9)

	require.NoError(t, c.RemoveLabelledMetrics("192.0.2.1"))
	assert.ErrorAs(t, c.RemoveLabelledMetrics("192.0.2.1"), &checks.ErrMetricNotFound{})
}

func TestTraceroute_UpdateConfig(t *testing.T) {
	c, ok := NewCheck().(*Traceroute)
	require.True(t, ok)

	cfg := &Config{Targets: []traceroute.Target{{Address: "example.com", Port: 443}}, Interval: time.Minute, Options: traceroute.DefaultOptions()}
	require.NoError(t, c.UpdateConfig(cfg))
	assert.Equal(t, cfg, c.GetConfig())

	err := c.UpdateConfig(&otherConfig{})
	assert.ErrorAs(t, err, &checks.ErrConfigMismatch{})
}

func TestTraceroute_Schema(t *testing.T) {
	c := newTraceroute(t, Config{})
	schema, err := c.Schema()
	require.NoError(t, err)
	assert.Contains(t, schema.Value.Properties, "data")
}

type otherConfig struct{}

func (*otherConfig) For() string     { return "other" }
func (*otherConfig) Validate() error { return nil }

// newTraceroute returns a check whose client walks a canned path:
// 8.8.8.8 answers at the last hop, 192.0.2.1 never answers, 192.0.2.2
// refuses right at the first hop, any other target can't be resolved.
func newTraceroute(t testing.TB, cfg Config) *Traceroute {
	t.Helper()
	c, ok := NewCheck().(*Traceroute)
	require.True(t, ok, "NewCheck should return a Traceroute check")
	c.config = cfg
	c.client = &traceroute.ClientMock{
		RunFunc: func(ctx context.Context, target traceroute.Target, opts *traceroute.Options, onHop func(traceroute.Hop)) (traceroute.Result, error) {
			res := traceroute.Result{Target: target}
			ip := net.ParseIP(target.Address)
			if ip == nil {
				return res, &probe.ResolutionError{Host: target.Address, Err: assert.AnError}
			}
			res.Addr = ip.To4()

			ttlExceeded := probe.Errored(probe.ErrTTLExceeded)
			for ttl := 1; ttl <= opts.MaxHops; ttl++ {
				hop := traceroute.Hop{TTL: ttl}
				switch {
				case target.Address == "192.0.2.2":
					hop.Attempts = [traceroute.AttemptsPerHop]probe.Outcome{probe.Refused(3 * time.Millisecond), probe.Refused(3 * time.Millisecond), probe.Refused(3 * time.Millisecond)}
					hop.Classification = traceroute.DestinationReachedPortClosed
				case target.Address == "8.8.8.8" && ttl == opts.MaxHops:
					hop.Attempts = [traceroute.AttemptsPerHop]probe.Outcome{probe.Succeeded(12 * time.Millisecond), probe.Succeeded(12 * time.Millisecond), probe.Succeeded(12 * time.Millisecond)}
					hop.Classification = traceroute.DestinationReached
					res.Name = "dns.google"
				case ttl%2 == 1:
					hop.Attempts = [traceroute.AttemptsPerHop]probe.Outcome{ttlExceeded, probe.TimedOut(), ttlExceeded}
					hop.Classification = traceroute.IntermediateHop
				default:
					hop.Attempts = [traceroute.AttemptsPerHop]probe.Outcome{probe.TimedOut(), probe.TimedOut(), probe.TimedOut()}
					hop.Classification = traceroute.Timeout
				}
				res.Hops = append(res.Hops, hop)
				if hop.Reached() {
					res.Reached = true
					return res, nil
				}
			}
			res.Exhausted = true
			return res, nil
		},
	}
	return c
}
