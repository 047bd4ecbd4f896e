// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/telekom/hopcheck/internal/logger"
)

var _ API = (*api)(nil)

const readHeaderTimeout = 5 * time.Second

//go:generate go tool moq -out api_moq.go . API
type API interface {
	// Run starts the api server and blocks until ctx is done or the server fails
	Run(ctx context.Context) error
	// Shutdown gracefully stops the api server
	Shutdown(ctx context.Context) error
	// RegisterRoutes adds the given routes to the api server
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

type api struct {
	server *http.Server
	router chi.Router
	tls    TLSConfig
}

// Route is a single endpoint of the api
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

// New creates a new api server listening on the configured address
func New(cfg Config) API {
	r := chi.NewRouter()
	return &api{
		server: &http.Server{
			Addr:              cfg.ListeningAddress,
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		router: r,
		tls:    cfg.Tls,
	}
}

// Run serves the registered routes until ctx is done.
// A regular shutdown of the server is not reported as an error.
func (a *api) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	cErr := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "Serving api", "addr", a.server.Addr, "tls", a.tls.Enabled)
		var err error
		if a.tls.Enabled {
			err = a.server.ListenAndServeTLS(a.tls.CertPath, a.tls.KeyPath)
		} else {
			err = a.server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		cErr <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed to serve api: %w", ctx.Err())
	case err := <-cErr:
		if err != nil {
			log.ErrorContext(ctx, "Failed to serve api", "error", err)
			return fmt.Errorf("%w: %w", ErrServeAPI, err)
		}
		return nil
	}
}

// Shutdown gracefully shuts down the api server
func (a *api) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := a.server.Shutdown(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to shutdown api server", "error", err)
		return fmt.Errorf("failed shutting down api server: %w", err)
	}
	log.InfoContext(ctx, "Api server shut down")
	return nil
}

// RegisterRoutes registers the given routes.
// Every request handled by them carries the logger of ctx.
func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) (err error) {
	a.router.Group(func(r chi.Router) {
		r.Use(logger.Middleware(ctx))
		for _, route := range routes {
			switch route.Method {
			case http.MethodGet:
				r.Get(route.Path, route.Handler)
			case http.MethodPost:
				r.Post(route.Path, route.Handler)
			case http.MethodPut:
				r.Put(route.Path, route.Handler)
			case http.MethodDelete:
				r.Delete(route.Path, route.Handler)
			case "*":
				r.Handle(route.Path, route.Handler)
			default:
				err = errors.Join(err, fmt.Errorf("%w: %s %s", ErrInvalidMethod, route.Method, route.Path))
			}
		}
	})
	return err
}
