// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
)

// Loader fetches the runtime configuration of the checks
//
//go:generate go tool moq -out loader_moq.go . Loader
type Loader interface {
	// Run starts the loader routine.
	// The loader should be able
	// to handle all errors by itself and retry if necessary.
	// If the context is canceled,
	// the Run method returns an error.
	Run(context.Context) error
	// Shutdown stops the loader routine.
	Shutdown(context.Context)
}

// NewLoader returns the runtime configuration loader for the configured loader type
func NewLoader(cfg *Config, cRuntime chan<- runtime.Config) Loader {
	switch cfg.Loader.Type {
	case "http":
		return NewHttpLoader(cfg, cRuntime)
	default:
		return NewFileLoader(cfg, cRuntime)
	}
}

// fetchFunc loads the runtime configuration once
type fetchFunc func(ctx context.Context) (runtime.Config, error)

// reload fetches the runtime configuration on startup and then once per interval
// until done is signaled or ctx is canceled. Only successfully fetched
// configurations are sent, so a failed fetch keeps the running checks.
// With a zero interval the configuration is fetched once and the error of that fetch is returned.
func reload(ctx context.Context, interval time.Duration, done <-chan struct{}, cRuntime chan<- runtime.Config, fetch fetchFunc) error {
	log := logger.FromContext(ctx)

	cfg, err := fetch(ctx)
	if err != nil {
		log.WarnContext(ctx, "Could not get runtime configuration", "error", err)
		err = fmt.Errorf("could not get runtime configuration: %w", err)
	} else {
		log.InfoContext(ctx, "Successfully got runtime configuration")
		cRuntime <- cfg
	}

	if interval == 0 {
		log.InfoContext(ctx, "Periodic reload disabled")
		return err
	}

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-done:
			log.InfoContext(ctx, "Loader terminated")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			cfg, err := fetch(ctx)
			if err != nil {
				log.WarnContext(ctx, "Could not get runtime configuration", "error", err)
				tick.Reset(interval)
				continue
			}

			log.InfoContext(ctx, "Successfully got runtime configuration")
			cRuntime <- cfg
			tick.Reset(interval)
		}
	}
}
