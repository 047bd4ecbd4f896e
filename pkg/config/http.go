// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
	"gopkg.in/yaml.v3"
)

var _ Loader = (*HttpLoader)(nil)

// ErrUnexpectedStatus is returned when the remote config endpoint doesn't answer with 200
var ErrUnexpectedStatus = errors.New("unexpected status code")

type HttpLoader struct {
	config   LoaderConfig
	cRuntime chan<- runtime.Config
	client   *http.Client
	done     chan struct{}
}

func NewHttpLoader(cfg *Config, cRuntime chan<- runtime.Config) *HttpLoader {
	return &HttpLoader{
		config:   cfg.Loader,
		cRuntime: cRuntime,
		client: &http.Client{
			Timeout: cfg.Loader.Http.Timeout,
		},
		done: make(chan struct{}, 1),
	}
}

// Run requests the runtime configuration from the remote endpoint on startup
// and then once per loader interval. Failed requests are retried with an exponential backoff.
func (hl *HttpLoader) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	ctx = logger.IntoContext(ctx, logger.FromContext(ctx).With("loader", "http", "url", hl.config.Http.Url))

	return reload(ctx, hl.config.Interval, hl.done, hl.cRuntime, func(ctx context.Context) (cfg runtime.Config, err error) {
		err = helper.Retry(func(ctx context.Context) error {
			c, rErr := hl.getRuntimeConfig(ctx)
			if rErr != nil {
				return rErr
			}
			cfg = *c
			return nil
		}, hl.config.Http.RetryCfg)(ctx)
		return cfg, err
	})
}

// getRuntimeConfig requests the runtime configuration from the configured url
func (hl *HttpLoader) getRuntimeConfig(ctx context.Context) (cfg *runtime.Config, err error) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hl.config.Http.Url, http.NoBody)
	if err != nil {
		log.ErrorContext(ctx, "Could not create http GET request", "error", err)
		return nil, err
	}
	if hl.config.Http.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", hl.config.Http.Token))
	}

	res, err := hl.client.Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		log.ErrorContext(ctx, "Http get request failed", "error", err)
		return nil, err
	}
	defer func() {
		if cErr := res.Body.Close(); cErr != nil {
			log.ErrorContext(ctx, "Failed to close response body", "error", cErr)
			err = errors.Join(err, cErr)
		}
	}()

	if res.StatusCode != http.StatusOK {
		log.ErrorContext(ctx, "Http get request failed", "status", res.Status)
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.ErrorContext(ctx, "Could not read response body", "error", err)
		return nil, err
	}
	log.DebugContext(ctx, "Successfully got response")

	var runtimeCfg runtime.Config
	if err := yaml.Unmarshal(body, &runtimeCfg); err != nil {
		log.ErrorContext(ctx, "Could not unmarshal response", "error", err)
		return nil, fmt.Errorf("failed to parse runtime configuration: %w", err)
	}

	return &runtimeCfg, nil
}

// Shutdown stops the loader routine
func (hl *HttpLoader) Shutdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	select {
	case hl.done <- struct{}{}:
		log.DebugContext(ctx, "Sending signal to shut down http loader")
	default:
	}
}
