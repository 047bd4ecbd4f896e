// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/pkg/agent/metrics"
	"github.com/telekom/hopcheck/pkg/api"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
	"github.com/telekom/hopcheck/pkg/config"
	"github.com/telekom/hopcheck/pkg/db"
)

const shutdownTimeout = time.Second * 90

// Agent runs the configured checks periodically and serves their results
type Agent struct {
	// config is the startup configuration of the agent
	config *config.Config
	// db stores the latest check results
	db db.DB
	// api serves the results and metrics
	api api.API
	// loader is used to load the runtime configuration
	loader config.Loader
	// metrics holds the prometheus registry and the tracer provider
	metrics metrics.Provider
	// controller manages the lifecycle of the checks
	controller *ChecksController
	// cRuntime is used to signal that the runtime configuration has changed
	cRuntime chan runtime.Config
	// cErr is used to handle non-recoverable errors of the agent components
	cErr chan error
	// cDone is used to signal that the agent was shut down
	cDone chan struct{}
	// shutOnce ensures that the shutdown is only performed once
	shutOnce sync.Once
}

// New creates a new agent from the given startup configuration
func New(cfg *config.Config) *Agent {
	m := metrics.New(cfg.Telemetry)
	dbase := db.NewInMemory()

	a := &Agent{
		config:     cfg,
		db:         dbase,
		api:        api.New(cfg.Api),
		metrics:    m,
		controller: NewChecksController(dbase, m),
		cRuntime:   make(chan runtime.Config, 1),
		cErr:       make(chan error, 1),
		cDone:      make(chan struct{}, 1),
	}
	a.loader = config.NewLoader(cfg, a.cRuntime)

	return a
}

// Run starts the agent and blocks until it is shut down.
// It always returns a non-nil error describing why it stopped.
func (a *Agent) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	log := logger.FromContext(ctx)
	defer cancel()

	if err := a.metrics.InitTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := metrics.RegisterInstanceInfo(a.metrics.GetRegistry(), a.config.Name, a.config.Metadata); err != nil {
		log.WarnContext(ctx, "Failed to register instance info metric", "error", err)
	}

	go func() {
		a.cErr <- a.loader.Run(ctx)
	}()
	go func() {
		a.cErr <- a.startupAPI(ctx)
	}()
	go func() {
		a.cErr <- a.controller.Run(ctx)
	}()

	for {
		select {
		case cfg := <-a.cRuntime:
			a.controller.Reconcile(ctx, cfg)
		case <-ctx.Done():
			a.shutdown(ctx)
		case err := <-a.cErr:
			if err != nil {
				log.ErrorContext(ctx, "Non-recoverable error in agent component", "error", err)
				a.shutdown(ctx)
			}
		case <-a.cDone:
			log.InfoContext(ctx, "Agent was shut down")
			return ErrFinalShutdown
		}
	}
}

// startupAPI registers the agent's routes and serves the api
func (a *Agent) startupAPI(ctx context.Context) error {
	if err := a.api.RegisterRoutes(ctx, a.routes()...); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}
	return a.api.Run(ctx)
}

// shutdown shuts down the agent and all managed components gracefully
func (a *Agent) shutdown(ctx context.Context) {
	errC := ctx.Err()
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.shutOnce.Do(func() {
		log.InfoContext(ctx, "Shutting down agent")
		var sErrs ErrShutdown
		sErrs.errAPI = a.api.Shutdown(ctx)
		sErrs.errMetrics = a.metrics.Shutdown(ctx)
		a.loader.Shutdown(ctx)
		a.controller.Shutdown(ctx)

		if sErrs.HasError() {
			log.ErrorContext(ctx, "Failed to shutdown gracefully", "contextError", errC, "errors", sErrs)
		}

		a.cDone <- struct{}{}
	})
}
