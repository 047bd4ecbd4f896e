// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/pkg"
	"github.com/telekom/hopcheck/pkg/agent/metrics"
	"github.com/telekom/hopcheck/pkg/api"
	"github.com/telekom/hopcheck/pkg/checks"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
	"github.com/telekom/hopcheck/pkg/db"
	"github.com/telekom/hopcheck/pkg/factory"
)

// ChecksController is responsible for managing checks.
type ChecksController struct {
	db      db.DB
	metrics metrics.Provider
	checks  runtime.Checks
	cResult chan checks.ResultDTO
	cErr    chan error
	done    chan struct{}
}

// NewChecksController creates a new ChecksController.
func NewChecksController(dbase db.DB, m metrics.Provider) *ChecksController {
	return &ChecksController{
		db:      dbase,
		metrics: m,
		checks:  runtime.Checks{},
		cResult: make(chan checks.ResultDTO, 8),
		cErr:    make(chan error, 1),
		done:    make(chan struct{}, 1),
	}
}

// Run runs the ChecksController with handling results and errors.
// Failing checks are unregistered, the controller itself keeps running.
func (cc *ChecksController) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for {
		select {
		case result := <-cc.cResult:
			cc.db.Save(result)
		case err := <-cc.cErr:
			log.ErrorContext(ctx, "Error while running check", "error", err)
			var runErr *ErrRunningCheck
			if errors.As(err, &runErr) {
				cc.UnregisterCheck(ctx, runErr.Check)
			}
		case <-ctx.Done():
			log.ErrorContext(ctx, "Context canceled", "error", ctx.Err())
			return fmt.Errorf("failed to run controller: %w", ctx.Err())
		case <-cc.done:
			log.InfoContext(ctx, "Stopping checks controller")
			return nil
		}
	}
}

// Shutdown shuts down the ChecksController and all registered checks.
func (cc *ChecksController) Shutdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.InfoContext(ctx, "Shutting down checks controller")

	for c := range cc.checks.Iter() {
		cc.UnregisterCheck(ctx, c)
	}

	select {
	case cc.done <- struct{}{}:
	default:
	}
}

// Reconcile reconciles the checks with the given runtime configuration.
// Existing checks are updated, removed checks are unregistered
// and new checks are registered.
func (cc *ChecksController) Reconcile(ctx context.Context, cfg runtime.Config) {
	log := logger.FromContext(ctx)

	newChecks, err := factory.NewChecksFromConfig(cfg)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create checks from config", "error", err)
		return
	}

	var unregList []checks.Check
	for c := range cc.checks.Iter() {
		conf := cfg.For(c.Name())
		if conf == nil {
			unregList = append(unregList, c)
			continue
		}

		if err := c.UpdateConfig(conf); err != nil {
			log.ErrorContext(ctx, "Failed to update check config", "check", c.Name(), "error", err)
		}
		delete(newChecks, c.Name())
	}

	for _, c := range unregList {
		cc.UnregisterCheck(ctx, c)
	}

	for _, c := range newChecks {
		cc.RegisterCheck(ctx, c)
	}
}

// RegisterCheck registers the metric collectors of the check and starts it.
func (cc *ChecksController) RegisterCheck(ctx context.Context, check checks.Check) {
	log := logger.FromContext(ctx).With("check", check.Name())

	for _, collector := range check.GetMetricCollectors() {
		if err := cc.metrics.GetRegistry().Register(collector); err != nil {
			log.ErrorContext(ctx, "Could not add metrics collector to registry", "error", err)
		}
	}

	cc.checks.Add(check)
	go func() {
		if err := check.Run(ctx, cc.cResult); err != nil && !errors.Is(err, context.Canceled) {
			log.ErrorContext(ctx, "Failed to run check", "error", err)
			cc.cErr <- &ErrRunningCheck{Check: check, Err: err}
		}
	}()
	log.InfoContext(ctx, "Check registered")
}

// UnregisterCheck removes the metric collectors of the check and stops it.
func (cc *ChecksController) UnregisterCheck(ctx context.Context, check checks.Check) {
	log := logger.FromContext(ctx).With("check", check.Name())

	for _, collector := range check.GetMetricCollectors() {
		if !cc.metrics.GetRegistry().Unregister(collector) {
			log.WarnContext(ctx, "Could not remove metrics collector from registry")
		}
	}

	check.Shutdown()
	cc.checks.Delete(check)
	log.InfoContext(ctx, "Check unregistered")
}

func newOpenapiDoc() openapi3.T {
	return openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "hopcheck",
			Description: "Latest results of the reachability checks",
			Version:     pkg.Version,
			Contact: &openapi3.Contact{
				URL: "https://github.com/telekom/hopcheck",
			},
			License: &openapi3.License{
				Name: "Apache 2.0",
				URL:  "http://www.apache.org/licenses/LICENSE-2.0.html",
			},
		},
		Paths:   openapi3.NewPaths(),
		Servers: openapi3.Servers{},
	}
}

// GenerateCheckSpecs generates the OpenAPI specifications
// for the result endpoints of all registered checks.
func (cc *ChecksController) GenerateCheckSpecs(ctx context.Context) (openapi3.T, error) {
	log := logger.FromContext(ctx)
	doc := newOpenapiDoc()

	for c := range cc.checks.Iter() {
		name := c.Name()
		ref, err := c.Schema()
		if err != nil {
			log.ErrorContext(ctx, "Failed to get schema for check", "name", name, "error", err)
			return openapi3.T{}, api.ErrCreateOpenapiSchema{Name: name, Err: err}
		}

		routeDesc := fmt.Sprintf("Returns the latest result of the %s check", name)
		bodyDesc := fmt.Sprintf("Result of the %s check", name)
		op := &openapi3.Operation{
			Description: routeDesc,
			Tags:        []string{"Metrics", name},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: &openapi3.Response{
						Description: &bodyDesc,
						Content:     openapi3.NewContentWithSchemaRef(ref, []string{"application/json"}),
					},
				}),
			),
		}

		path := fmt.Sprintf("/v1/metrics/%s", name)
		doc.Paths.Set(path, &openapi3.PathItem{
			Description: name,
			Get:         op,
		})
	}

	return doc, nil
}
