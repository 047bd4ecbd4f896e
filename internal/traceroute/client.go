// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net"

	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/internal/probe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ Client = (*genericClient)(nil)
	_ Client = (*tcpClient)(nil)
)

// Client is able to run a traceroute to a target.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Run executes the traceroute for the given target with the specified options.
	// onHop is called for every finished hop and may be nil.
	// Returns the Result with all probed hops, or an error if the target
	// couldn't be resolved or the traceroute was interrupted.
	Run(ctx context.Context, target Target, opts *Options, onHop func(Hop)) (Result, error)
}

type genericClient struct {
	// tcp is the [tcpClient] that implements the traceroute using TCP.
	tcp Client
}

func NewClient() Client {
	return &genericClient{
		tcp: newTCPClient(),
	}
}

func (c *genericClient) Run(ctx context.Context, target Target, opts *Options, onHop func(Hop)) (Result, error) {
	if err := target.Validate(); err != nil {
		return Result{Target: target}, err
	}
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if err := opts.Validate(); err != nil {
		return Result{Target: target}, err
	}

	return c.tcp.Run(ctx, target.withDefaults(), opts, onHop)
}

type tcpClient struct {
	resolver   probe.Resolver
	lookupName nameLookup
	prober     prober
}

// newTCPClient creates a new TCP client for performing traceroutes.
func newTCPClient() *tcpClient {
	return &tcpClient{
		resolver:   net.DefaultResolver,
		lookupName: net.DefaultResolver.LookupAddr,
		prober:     probe.NewTCP(),
	}
}

// Run executes the traceroute for the given target using TCP.
func (c *tcpClient) Run(ctx context.Context, target Target, opts *Options, onHop func(Hop)) (Result, error) {
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("traceroute.tcpClient")
	ctx, sp := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.Stringer("traceroute.target", target),
		attribute.Int("traceroute.options.max_hops", opts.MaxHops),
		attribute.Stringer("traceroute.options.timeout", opts.Timeout),
	))
	defer sp.End()

	res := Result{Target: target}
	dst, err := probe.Resolve(ctx, c.resolver, target.Address, opts.Retry)
	if err != nil {
		return res, helper.WrapError(ctx, err, "failed to resolve %s", target.Address)
	}
	res.Addr = dst
	res.Name = resolveName(ctx, c.lookupName, dst)
	ctx = logger.IntoContext(ctx, logger.FromContext(ctx).With("target", target.String(), "addr", dst.String()))
	logger.FromContext(ctx).DebugContext(ctx, "Starting TCP trace", "maxHops", opts.MaxHops)

	h := &hopper{
		prober:     c.prober,
		otelTracer: tracer,
		dst:        dst,
		port:       target.Port,
		opts:       *opts,
		onHop:      onHop,
	}
	hops, reached, err := h.walk(ctx)
	res.Hops = hops
	res.Reached = reached
	logHops(ctx, hops)
	if err != nil {
		if isCanceled(err) {
			sp.AddEvent("traceroute interrupted")
		}
		return res, err
	}
	res.Exhausted = !reached

	sp.SetAttributes(
		attribute.Bool("traceroute.target.reached", res.Reached),
		attribute.Int("traceroute.target.hops", len(res.Hops)),
	)
	return res, nil
}
