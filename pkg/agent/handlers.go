// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telekom/hopcheck/internal/logger"
	"github.com/telekom/hopcheck/pkg/api"
	"gopkg.in/yaml.v3"
)

const urlParamCheckName = "checkName"

var (
	errEmptyCheckName = errors.New("missing check name")
	errNoResult       = errors.New("no result for check")
)

// routes returns the routes served by the agent's api
func (a *Agent) routes() []api.Route {
	return []api.Route{
		{
			Path: "/openapi", Method: http.MethodGet,
			Handler: a.handleOpenAPI,
		},
		{
			Path: "/v1/metrics", Method: http.MethodGet,
			Handler: a.handleAllResults,
		},
		{
			Path: fmt.Sprintf("/v1/metrics/{%s}", urlParamCheckName), Method: http.MethodGet,
			Handler: a.handleCheckResult,
		},
		{
			Path: "/metrics", Method: "*",
			Handler: promhttp.HandlerFor(
				a.metrics.GetRegistry(),
				promhttp.HandlerOpts{Registry: a.metrics.GetRegistry()},
			).ServeHTTP,
		},
	}
}

// handleOpenAPI serves the openapi document of the registered checks.
// The document is rendered as yaml unless the client accepts json.
func (a *Agent) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	doc, err := a.controller.GenerateCheckSpecs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to generate openapi document", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	b, err := json.Marshal(&doc)
	if err != nil {
		log.ErrorContext(ctx, "Failed to marshal openapi document", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		writeBody(w, r, b)
		return
	}

	b, err = jsonToYAML(b)
	if err != nil {
		log.ErrorContext(ctx, "Failed to convert openapi document to yaml", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/yaml")
	writeBody(w, r, b)
}

// handleAllResults serves the latest results of all checks
func (a *Agent) handleAllResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, a.db.List())
}

// handleCheckResult serves the latest result of a single check
func (a *Agent) handleCheckResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	name := chi.URLParam(r, urlParamCheckName)
	if name == "" {
		http.Error(w, errEmptyCheckName.Error(), http.StatusBadRequest)
		return
	}

	res, ok := a.db.Get(name)
	if !ok {
		log.DebugContext(ctx, "No result available", "check", name)
		http.Error(w, fmt.Sprintf("%s: %s", errNoResult, name), http.StatusNotFound)
		return
	}
	writeJSON(w, r, res)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeBody(w, r, b)
}

func writeBody(w http.ResponseWriter, r *http.Request, b []byte) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}

// jsonToYAML re-encodes a json document as block style yaml.
// Key order of the json document is kept.
func jsonToYAML(b []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, err
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}
