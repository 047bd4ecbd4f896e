// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/hopcheck/pkg/agent/metrics"
	"github.com/telekom/hopcheck/pkg/checks"
	"github.com/telekom/hopcheck/pkg/db"
)

func newTestRouter(t *testing.T) (*Agent, http.Handler) {
	t.Helper()
	store := db.NewInMemory()
	m := metrics.New(metrics.Config{})
	a := &Agent{
		db:         store,
		metrics:    m,
		controller: NewChecksController(store, m),
	}

	r := chi.NewRouter()
	for _, route := range a.routes() {
		if route.Method == "*" {
			r.Handle(route.Path, route.Handler)
			continue
		}
		r.Method(route.Method, route.Path, route.Handler)
	}
	return a, r
}

func TestAgent_handleCheckResult(t *testing.T) {
	a, router := newTestRouter(t)
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	a.db.Save(checks.ResultDTO{Name: "ping", Result: &checks.Result{Data: map[string]int{"sent": 4}, Timestamp: ts}})

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{
			name:     "existing result",
			path:     "/v1/metrics/ping",
			wantCode: http.StatusOK,
			wantBody: `{"data":{"sent":4},"timestamp":"2025-01-01T12:00:00Z"}`,
		},
		{
			name:     "unknown check",
			path:     "/v1/metrics/traceroute",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "all results",
			path:     "/v1/metrics",
			wantCode: http.StatusOK,
			wantBody: `{"ping":{"data":{"sent":4},"timestamp":"2025-01-01T12:00:00Z"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAgent_handleOpenAPI(t *testing.T) {
	a, router := newTestRouter(t)
	a.controller.checks.Add(newMockCheck("ping"))

	t.Run("yaml", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi", http.NoBody))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/yaml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "openapi: 3.0.0\n")
		assert.Contains(t, rec.Body.String(), "/v1/metrics/ping:")
	})

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/openapi", http.NoBody)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.0", doc["openapi"])
	})
}

func TestAgent_handleMetrics(t *testing.T) {
	_, router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestJsonToYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "keeps key order",
			in:   `{"b":1,"a":"x"}`,
			want: "b: 1\na: x\n",
		},
		{
			name: "quotes strings that look like numbers",
			in:   `{"responses":{"200":{"description":"ok"}}}`,
			want: "responses:\n  \"200\":\n    description: ok\n",
		},
		{
			name: "block style lists",
			in:   `{"tags":["Metrics","ping"]}`,
			want: "tags:\n  - Metrics\n  - ping\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonToYAML([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
