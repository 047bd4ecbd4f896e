// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/internal/probe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Mode is the probe kind used for a run.
type Mode string

const (
	ModeICMP Mode = "icmp"
	ModeTCP  Mode = "tcp"
)

// ICMPProber sends a single echo request over an open raw socket.
//
//go:generate go tool moq -out prober_moq.go . ICMPProber TCPProber
type ICMPProber interface {
	Probe(ctx context.Context, conn probe.Conn, dst net.IP, sess probe.Session, seq uint16, timeout time.Duration) probe.Outcome
}

// TCPProber performs a single TCP connect probe.
type TCPProber interface {
	Probe(ctx context.Context, dst net.IP, port uint16, timeout time.Duration, ttl int) probe.Outcome
}

// Attempt is emitted for every probe of a run as soon as its outcome is known.
type Attempt struct {
	// Seq is the 1-based number of the attempt within the run.
	Seq uint32 `json:"seq"`
	// Mode is the probe kind the attempt used.
	Mode Mode `json:"mode"`
	// Addr is the probed address.
	Addr net.IP `json:"addr"`
	// Outcome is the result of the probe.
	Outcome probe.Outcome `json:"outcome"`
}

// Report is the result of a finished run.
type Report struct {
	// Host is the host as passed to the run.
	Host string `json:"host"`
	// Addr is the address the host resolved to.
	Addr net.IP `json:"addr"`
	// Mode is the probe kind selected for the run.
	Mode Mode `json:"mode"`
	// Statistics summarize all attempts.
	Statistics Statistics `json:"statistics"`
}

// Engine runs pings with an ICMP to TCP fallback.
type Engine struct {
	resolver probe.Resolver
	openICMP func() (probe.Conn, error)
	icmp     ICMPProber
	tcp      TCPProber
	session  probe.Session
}

// NewEngine returns an engine using the system resolver and a session
// derived from the current process.
func NewEngine() *Engine {
	return &Engine{
		resolver: net.DefaultResolver,
		openICMP: probe.OpenICMP,
		icmp:     probe.NewICMP(),
		tcp:      probe.NewTCP(),
		session:  probe.NewSession(),
	}
}

// Run resolves host once and sends opts.Count probes to it, pausing
// opts.Interval between them. onAttempt is called after every probe
// and may be nil.
//
// Only a failed resolution or invalid options are returned as an error,
// in which case no probe is sent. If ctx is done between two attempts the run
// stops and returns the statistics of the attempts made so far along with
// the context's error.
func (e *Engine) Run(ctx context.Context, host string, opts Options, onAttempt func(Attempt)) (Report, error) {
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("ping.Engine")
	ctx, span := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.String("ping.host", host),
		attribute.Int64("ping.options.count", int64(opts.Count)),
		attribute.Stringer("ping.options.interval", opts.Interval),
		attribute.Bool("ping.options.force_tcp", opts.ForceTCP),
	))
	defer span.End()

	rep := Report{Host: host}
	if err := opts.Validate(); err != nil {
		return rep, helper.WrapError(ctx, err, "invalid ping options")
	}

	dst, err := probe.Resolve(ctx, e.resolver, host, opts.Retry)
	if err != nil {
		return rep, helper.WrapError(ctx, err, "failed to resolve %s", host)
	}
	rep.Addr = dst

	ctx = logger.IntoContext(ctx, logger.FromContext(ctx).With("host", host, "addr", dst.String()))
	r := &run{dst: dst, onAttempt: onAttempt}

	first := uint32(1)
	conn, trial, ok := e.trialICMP(ctx, dst, opts)
	if ok {
		defer func() {
			if cErr := conn.Close(); cErr != nil {
				logger.FromContext(ctx).WarnContext(ctx, "Failed to close ICMP socket", "error", cErr)
			}
		}()
		rep.Mode = ModeICMP
		r.record(ctx, 1, ModeICMP, trial)
		first = 2
	} else {
		rep.Mode = ModeTCP
	}
	span.SetAttributes(attribute.String("ping.mode", string(rep.Mode)))

	for seq := first; seq <= opts.Count; seq++ {
		if seq > 1 {
			if err := sleep(ctx, opts.Interval); err != nil {
				rep.Statistics = r.statistics()
				return rep, err
			}
		}
		if err := ctx.Err(); err != nil {
			rep.Statistics = r.statistics()
			return rep, err
		}

		var o probe.Outcome
		switch rep.Mode {
		case ModeICMP:
			o = e.icmp.Probe(ctx, conn, dst, e.session, uint16(seq), opts.Timeout) // #nosec G115 // sequence numbers wrap
		default:
			o = e.tcp.Probe(ctx, dst, opts.Port, opts.Timeout, 0)
		}
		r.record(ctx, seq, rep.Mode, o)
	}

	rep.Statistics = r.statistics()
	return rep, nil
}

// trialICMP opens the raw socket and sends the first echo request.
// It reports false if ICMP can't be used for this run, in which case the
// socket is already released.
func (e *Engine) trialICMP(ctx context.Context, dst net.IP, opts Options) (probe.Conn, probe.Outcome, bool) {
	log := logger.FromContext(ctx)
	if opts.ForceTCP {
		log.DebugContext(ctx, "TCP probes forced")
		return nil, probe.Outcome{}, false
	}

	conn, err := e.openICMP()
	if err != nil {
		log.InfoContext(ctx, "ICMP not available, falling back to TCP probes", "error", err)
		return nil, probe.Outcome{}, false
	}

	o := e.icmp.Probe(ctx, conn, dst, e.session, 1, opts.Timeout)
	if o.Kind() == probe.Failed {
		log.InfoContext(ctx, "ICMP trial probe failed, falling back to TCP probes", "error", o.Err())
		if cErr := conn.Close(); cErr != nil {
			log.WarnContext(ctx, "Failed to close ICMP socket", "error", cErr)
		}
		return nil, probe.Outcome{}, false
	}
	return conn, o, true
}

// run collects the outcomes of a single [Engine.Run].
type run struct {
	dst       net.IP
	onAttempt func(Attempt)

	sent     uint32
	received uint32
	rtts     []float64
}

func (r *run) record(ctx context.Context, seq uint32, mode Mode, o probe.Outcome) {
	r.sent++
	if o.Received() {
		r.received++
		r.rtts = append(r.rtts, float64(o.RTT())/float64(time.Millisecond))
	}

	logger.FromContext(ctx).DebugContext(ctx, "Probe finished", "seq", seq, "mode", mode, "outcome", o.String())
	trace.SpanFromContext(ctx).AddEvent("probe finished", trace.WithAttributes(
		attribute.Int64("ping.attempt.seq", int64(seq)),
		attribute.String("ping.attempt.mode", string(mode)),
		attribute.Stringer("ping.attempt.outcome", o),
	))

	if r.onAttempt != nil {
		r.onAttempt(Attempt{Seq: seq, Mode: mode, Addr: r.dst, Outcome: o})
	}
}

func (r *run) statistics() Statistics {
	return NewStatistics(r.sent, r.received, r.rtts)
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("ping interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}
