// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/internal/traceroute"
	"github.com/telekom/hopcheck/pkg/checks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	_ checks.Check   = (*Traceroute)(nil)
	_ checks.Runtime = (*Config)(nil)
)

const (
	CheckName = "traceroute"
	// maxParallel bounds the number of targets traced at the same time.
	maxParallel = 8
)

func NewCheck() checks.Check {
	c := &Traceroute{
		CheckBase: checks.NewCheckBase(),
		config:    Config{},
		client:    traceroute.NewClient(),
		metrics:   newMetrics(),
	}
	c.tracer = otel.Tracer(c.Name())
	return c
}

type Traceroute struct {
	checks.CheckBase
	config  Config
	metrics metrics
	client  traceroute.Client
	tracer  trace.Tracer
}

type result map[string]targetResult

// targetResult is the trace towards one target.
type targetResult struct {
	Addr      string      `json:"addr,omitempty"`
	Name      string      `json:"name,omitempty"`
	Reached   bool        `json:"reached"`
	Exhausted bool        `json:"exhausted"`
	Hops      []hopResult `json:"hops"`
	Error     string      `json:"error,omitempty"`
}

// hopResult is one classified hop. Round-trip times are in milliseconds,
// attempts without an answer are left out.
type hopResult struct {
	TTL            int       `json:"ttl"`
	Classification string    `json:"classification"`
	RTTs           []float64 `json:"rtts"`
}

// Run runs the check in a loop sending results to the provided channel
func (tr *Traceroute) Run(ctx context.Context, cResult chan checks.ResultDTO) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	interval := tr.GetConfig().(*Config).Interval
	log.InfoContext(ctx, "Starting traceroute check", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			log.ErrorContext(ctx, "Context canceled", "error", ctx.Err())
			return ctx.Err()
		case <-tr.DoneChan:
			return nil
		case <-time.After(interval):
			res := tr.check(ctx)
			tr.metrics.Set(res)
			cResult <- checks.ResultDTO{
				Name: tr.Name(),
				Result: &checks.Result{
					Data:      res,
					Timestamp: time.Now(),
				},
			}
			log.DebugContext(ctx, "Successfully finished traceroute check run")
			interval = tr.GetConfig().(*Config).Interval
		}
	}
}

// GetConfig returns a copy of the current configuration of the check
func (tr *Traceroute) GetConfig() checks.Runtime {
	tr.Mu.Lock()
	defer tr.Mu.Unlock()
	configCopy := tr.config
	return &configCopy
}

func (tr *Traceroute) check(ctx context.Context) result {
	log := logger.FromContext(ctx)
	ctx, span := tr.tracer.Start(ctx, "traceroute.check")
	defer span.End()

	cfg := tr.GetConfig().(*Config)
	if len(cfg.Targets) == 0 {
		log.WarnContext(ctx, "No targets configured for traceroute check")
		return result{}
	}

	var mu sync.Mutex
	res := make(result, len(cfg.Targets))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, target := range cfg.Targets {
		g.Go(func() error {
			tres, err := tr.client.Run(gCtx, target, &cfg.Options, nil)
			r := newTargetResult(tres)
			if err != nil {
				log.ErrorContext(ctx, "Failed to run traceroute", "target", target.String(), "error", err)
				r.Error = err.Error()
				mu.Lock()
				span.SetStatus(codes.Error, "Failed to run traceroute")
				span.RecordError(err)
				mu.Unlock()
			}

			mu.Lock()
			defer mu.Unlock()
			res[target.String()] = r
			return nil
		})
	}
	_ = g.Wait()

	return res
}

// Shutdown is called once when the check is unregistered or the agent shuts down
func (tr *Traceroute) Shutdown() {
	tr.DoneChan <- struct{}{}
	close(tr.DoneChan)
}

// UpdateConfig is called once when the check is registered
// This is also called while the check is running, if the runtime config is updated
// This should return an error if the config is invalid
func (tr *Traceroute) UpdateConfig(cfg checks.Runtime) error {
	if c, ok := cfg.(*Config); ok {
		tr.Mu.Lock()
		defer tr.Mu.Unlock()

		for _, target := range tr.config.Targets {
			if !slices.Contains(c.Targets, target) {
				if err := tr.metrics.Remove(target.String()); err != nil {
					logger.NewLogger().Debug("No metrics to remove for target", "target", target.String(), "error", err)
				}
			}
		}

		tr.config = *c
		return nil
	}

	return checks.ErrConfigMismatch{
		Expected: CheckName,
		Current:  cfg.For(),
	}
}

// Schema returns an openapi3.SchemaRef of the result type returned by the check
func (tr *Traceroute) Schema() (*openapi3.SchemaRef, error) {
	return checks.OpenapiFromPerfData(result{})
}

// GetMetricCollectors allows the check to provide prometheus metric collectors
func (tr *Traceroute) GetMetricCollectors() []prometheus.Collector {
	return tr.metrics.List()
}

// Name returns the name of the check
func (tr *Traceroute) Name() string {
	return CheckName
}

// RemoveLabelledMetrics removes the metrics which have the passed
// target as a label
func (tr *Traceroute) RemoveLabelledMetrics(target string) error {
	return tr.metrics.Remove(target)
}

func newTargetResult(res traceroute.Result) targetResult {
	r := targetResult{
		Name:      res.Name,
		Reached:   res.Reached,
		Exhausted: res.Exhausted,
		// An empty slice still shows the traceroute was attempted
		Hops: make([]hopResult, 0, len(res.Hops)),
	}
	if res.Addr != nil {
		r.Addr = res.Addr.String()
	}
	for _, h := range res.Hops {
		rtts := make([]float64, 0, traceroute.AttemptsPerHop)
		for _, d := range h.RTTs() {
			rtts = append(rtts, float64(d)/float64(time.Millisecond))
		}
		r.Hops = append(r.Hops, hopResult{
			TTL:            h.TTL,
			Classification: h.Classification.String(),
			RTTs:           rtts,
		})
	}
	return r
}
