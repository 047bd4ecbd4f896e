// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"
	"slices"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/internal/ping"
	"github.com/telekom/hopcheck/pkg/checks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ checks.Check   = (*Ping)(nil)
	_ checks.Runtime = (*Config)(nil)
)

const CheckName = "ping"

// runner executes a single ping run. [*ping.Engine] satisfies it.
//
//go:generate go tool moq -out runner_moq.go . runner
type runner interface {
	Run(ctx context.Context, host string, opts ping.Options, onAttempt func(ping.Attempt)) (ping.Report, error)
}

// Ping is a check that measures round-trip time and packet loss to its targets.
// ICMP echo is used when a raw socket is available, TCP connect probes otherwise.
type Ping struct {
	checks.CheckBase
	config  Config
	metrics metrics
	engine  runner
	tracer  trace.Tracer
}

// NewCheck creates a new instance of the ping check
func NewCheck() checks.Check {
	c := &Ping{
		CheckBase: checks.NewCheckBase(),
		config: Config{
			Retry: checks.DefaultRetry,
		},
		metrics: newMetrics(),
		engine:  ping.NewEngine(),
	}
	c.tracer = otel.Tracer(c.Name())
	return c
}

// result is the outcome of one ping run against a target.
// Round-trip times are in milliseconds.
type result struct {
	Addr     string    `json:"addr,omitempty"`
	Mode     string    `json:"mode,omitempty"`
	Sent     uint32    `json:"sent"`
	Received uint32    `json:"received"`
	Loss     float64   `json:"loss"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Avg      *float64  `json:"avg,omitempty"`
	StdDev   *float64  `json:"stddev,omitempty"`
	RTTs     []float64 `json:"rtts"`
	Error    string    `json:"error,omitempty"`
}

// Run starts the ping check
func (p *Ping) Run(ctx context.Context, cResult chan checks.ResultDTO) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	interval := p.GetConfig().(*Config).Interval
	log.InfoContext(ctx, "Starting ping check", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			log.ErrorContext(ctx, "Context canceled", "error", ctx.Err())
			return ctx.Err()
		case <-p.DoneChan:
			log.DebugContext(ctx, "Soft shut down")
			return nil
		case <-time.After(interval):
			res := p.check(ctx)
			cResult <- checks.ResultDTO{
				Name: p.Name(),
				Result: &checks.Result{
					Data:      res,
					Timestamp: time.Now(),
				},
			}
			log.DebugContext(ctx, "Successfully finished ping check run")

			// Re-read interval in case config was updated
			interval = p.GetConfig().(*Config).Interval
		}
	}
}

// Shutdown is called once when the check is unregistered or the agent shuts down
func (p *Ping) Shutdown() {
	p.DoneChan <- struct{}{}
	close(p.DoneChan)
}

// UpdateConfig sets the configuration for the ping check
func (p *Ping) UpdateConfig(cfg checks.Runtime) error {
	if c, ok := cfg.(*Config); ok {
		p.Mu.Lock()
		defer p.Mu.Unlock()

		for _, target := range p.config.Targets {
			if !slices.Contains(c.Targets, target) {
				if err := p.metrics.Remove(target); err != nil {
					logger.NewLogger().Debug("No metrics to remove for target", "target", target, "error", err)
				}
			}
		}

		p.config = *c
		return nil
	}

	return checks.ErrConfigMismatch{
		Expected: CheckName,
		Current:  cfg.For(),
	}
}

// GetConfig returns a copy of the current configuration of the check
func (p *Ping) GetConfig() checks.Runtime {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	configCopy := p.config
	return &configCopy
}

// Name returns the name of the check
func (p *Ping) Name() string {
	return CheckName
}

// Schema provides the schema of the data that will be provided
// by the ping check
func (p *Ping) Schema() (*openapi3.SchemaRef, error) {
	return checks.OpenapiFromPerfData(map[string]result{})
}

// GetMetricCollectors returns all metric collectors of check
func (p *Ping) GetMetricCollectors() []prometheus.Collector {
	return p.metrics.GetCollectors()
}

// RemoveLabelledMetrics removes the metrics which have the passed
// target as a label
func (p *Ping) RemoveLabelledMetrics(target string) error {
	return p.metrics.Remove(target)
}

// check pings all targets one after another. The targets share one ICMP
// session identifier, so running them in parallel would mix up their replies.
func (p *Ping) check(ctx context.Context) map[string]result {
	log := logger.FromContext(ctx)
	ctx, span := p.tracer.Start(ctx, "ping.check")
	defer span.End()

	cfg := p.GetConfig().(*Config)
	if len(cfg.Targets) == 0 {
		log.DebugContext(ctx, "No targets defined")
		return map[string]result{}
	}
	span.SetAttributes(attribute.StringSlice("ping.targets", cfg.Targets))

	opts := cfg.options()
	results := make(map[string]result, len(cfg.Targets))
	for _, target := range cfg.Targets {
		if ctx.Err() != nil {
			break
		}
		l := log.With("target", target)

		rep, err := p.engine.Run(ctx, target, opts, nil)
		res := newResult(rep)
		if err != nil {
			l.WarnContext(ctx, "Ping run failed", "error", err)
			span.SetStatus(codes.Error, "ping run failed")
			span.RecordError(err)
			res.Error = err.Error()
		}
		if rep.Statistics.Sent() > 0 {
			p.metrics.Set(target, res)
		}
		l.DebugContext(ctx, "Finished ping run", "mode", res.Mode, "sent", res.Sent, "received", res.Received)
		results[target] = res
	}
	return results
}

// newResult converts the report of a ping run into the check's result.
func newResult(rep ping.Report) result {
	stats := rep.Statistics
	res := result{
		Mode:     string(rep.Mode),
		Sent:     stats.Sent(),
		Received: stats.Received(),
		Loss:     stats.Loss(),
		Min:      optional(stats.Min()),
		Max:      optional(stats.Max()),
		Avg:      optional(stats.Avg()),
		StdDev:   optional(stats.StdDev()),
		RTTs:     stats.RTTs(),
	}
	if rep.Addr != nil {
		res.Addr = rep.Addr.String()
	}
	if res.RTTs == nil {
		res.RTTs = []float64{}
	}
	return res
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
