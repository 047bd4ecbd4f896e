// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/internal/probe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// prober performs a single TTL scoped TCP connect probe.
// [*probe.TCP] satisfies it.
//
//go:generate go tool moq -out prober_moq.go . prober
type prober interface {
	Probe(ctx context.Context, dst net.IP, port uint16, timeout time.Duration, ttl int) probe.Outcome
}

// hopper walks the TTLs towards a single destination, one hop at a time.
type hopper struct {
	prober     prober
	otelTracer trace.Tracer
	dst        net.IP
	port       uint16
	opts       Options
	onHop      func(Hop)
}

// walk probes every TTL from 1 up to the configured maximum until
// the destination answers. It returns the hops probed so far and whether the
// destination was reached. The error is only set if ctx is done.
func (h *hopper) walk(ctx context.Context) ([]Hop, bool, error) {
	hops := make([]Hop, 0, h.opts.MaxHops)
	for ttl := 1; ttl <= h.opts.MaxHops; ttl++ {
		if ttl > 1 {
			if err := pause(ctx, h.opts.HopDelay); err != nil {
				return hops, false, err
			}
		}

		hop, err := h.hop(ctx, ttl)
		if err != nil {
			return hops, false, err
		}
		hops = append(hops, hop)
		if h.onHop != nil {
			h.onHop(hop)
		}
		if hop.Reached() {
			return hops, true, nil
		}
	}
	return hops, false, nil
}

// hop sends all attempts for a single TTL and classifies them.
func (h *hopper) hop(ctx context.Context, ttl int) (Hop, error) {
	ctx, span := h.otelTracer.Start(ctx, fmt.Sprintf("hop %d", ttl), trace.WithAttributes(
		attribute.Stringer("traceroute.target.address", h.dst),
		attribute.Int("traceroute.target.ttl", ttl),
	))
	defer span.End()
	log := logger.FromContext(ctx).With("ttl", ttl)

	hop := Hop{TTL: ttl}
	for i := range AttemptsPerHop {
		if i > 0 {
			if err := pause(ctx, h.opts.AttemptDelay); err != nil {
				return hop, err
			}
		}
		if err := ctx.Err(); err != nil {
			return hop, err
		}

		o := h.prober.Probe(ctx, h.dst, h.port, h.opts.Timeout, ttl)
		hop.Attempts[i] = o
		log.DebugContext(ctx, "Attempt finished", "attempt", i+1, "outcome", o.String())
		span.AddEvent("attempt finished", trace.WithAttributes(
			attribute.Int("traceroute.hop.attempt", i+1),
			attribute.Stringer("traceroute.hop.outcome", o),
		))
	}

	hop.Classification = classify(hop.Attempts)
	span.SetAttributes(
		attribute.Stringer("traceroute.hop.classification", hop.Classification),
		attribute.Bool("traceroute.target.reached", hop.Reached()),
	)
	return hop, nil
}
