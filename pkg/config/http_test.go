// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/traceroute"
	"github.com/telekom/hopcheck/pkg/checks/ping"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
	tracecheck "github.com/telekom/hopcheck/pkg/checks/traceroute"
)

const remoteURL = "https://config.example.com/hopcheck/checks.yaml"

const remoteConfig = `
ping:
  targets:
    - example.com
  interval: 30s
  timeout: 2s
traceroute:
  targets:
    - address: example.com
      port: 443
  interval: 5m
  maxHops: 20
  timeout: 1s
`

func TestHttpLoader_getRuntimeConfig(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		responder httpmock.Responder
		want      *runtime.Config
		wantErr   error
	}{
		{
			name:      "valid config",
			responder: httpmock.NewStringResponder(http.StatusOK, remoteConfig),
			want: &runtime.Config{
				Ping: &ping.Config{
					Targets:  []string{"example.com"},
					Interval: 30 * time.Second,
					Timeout:  2 * time.Second,
				},
				Traceroute: &tracecheck.Config{
					Targets:  []traceroute.Target{{Address: "example.com", Port: 443}},
					Interval: 5 * time.Minute,
					Options:  traceroute.Options{MaxHops: 20, Timeout: time.Second},
				},
			},
		},
		{
			name:  "bearer token is sent",
			token: "secret",
			responder: func(req *http.Request) (*http.Response, error) {
				if req.Header.Get("Authorization") != "Bearer secret" {
					return httpmock.NewStringResponse(http.StatusUnauthorized, ""), nil
				}
				return httpmock.NewStringResponse(http.StatusOK, "ping:\n  targets: [example.com]\n"), nil
			},
			want: &runtime.Config{Ping: &ping.Config{Targets: []string{"example.com"}}},
		},
		{
			name:      "unexpected status",
			responder: httpmock.NewStringResponder(http.StatusNotFound, ""),
			wantErr:   ErrUnexpectedStatus,
		},
		{
			name:      "malformed yaml",
			responder: httpmock.NewStringResponder(http.StatusOK, "ping: [this is: not valid"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hl := NewHttpLoader(&Config{Loader: LoaderConfig{
				Type: "http",
				Http: HttpLoaderConfig{Url: remoteURL, Token: tt.token, Timeout: time.Second},
			}}, make(chan runtime.Config, 1))
			httpmock.ActivateNonDefault(hl.client)
			t.Cleanup(httpmock.DeactivateAndReset)
			httpmock.RegisterResponder(http.MethodGet, remoteURL, tt.responder)

			got, err := hl.getRuntimeConfig(t.Context())
			if tt.want == nil {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHttpLoader_Run(t *testing.T) {
	t.Run("retries until the config is available", func(t *testing.T) {
		result := make(chan runtime.Config, 1)
		hl := NewHttpLoader(&Config{Loader: LoaderConfig{
			Type: "http",
			Http: HttpLoaderConfig{
				Url:      remoteURL,
				Timeout:  time.Second,
				RetryCfg: helper.RetryConfig{Count: 2, Delay: time.Millisecond},
			},
		}}, result)
		httpmock.ActivateNonDefault(hl.client)
		t.Cleanup(httpmock.DeactivateAndReset)
		httpmock.RegisterResponder(http.MethodGet, remoteURL,
			httpmock.NewStringResponder(http.StatusServiceUnavailable, "").
				Then(httpmock.NewStringResponder(http.StatusOK, remoteConfig)),
		)

		require.NoError(t, hl.Run(t.Context()))
		cfg := <-result
		assert.True(t, cfg.HasPingCheck())
		assert.True(t, cfg.HasTracerouteCheck())
		assert.Equal(t, 2, httpmock.GetTotalCallCount())
	})

	t.Run("gives up after the retries", func(t *testing.T) {
		result := make(chan runtime.Config, 1)
		hl := NewHttpLoader(&Config{Loader: LoaderConfig{
			Type: "http",
			Http: HttpLoaderConfig{
				Url:      remoteURL,
				RetryCfg: helper.RetryConfig{Count: 1, Delay: time.Millisecond},
			},
		}}, result)
		httpmock.ActivateNonDefault(hl.client)
		t.Cleanup(httpmock.DeactivateAndReset)
		httpmock.RegisterResponder(http.MethodGet, remoteURL, httpmock.NewStringResponder(http.StatusInternalServerError, ""))

		err := hl.Run(t.Context())
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Equal(t, 2, httpmock.GetTotalCallCount())
		assert.Empty(t, result)
	})

	t.Run("reloads periodically until shut down", func(t *testing.T) {
		result := make(chan runtime.Config, 1)
		hl := NewHttpLoader(&Config{Loader: LoaderConfig{
			Type:     "http",
			Interval: 10 * time.Millisecond,
			Http:     HttpLoaderConfig{Url: remoteURL},
		}}, result)
		httpmock.ActivateNonDefault(hl.client)
		t.Cleanup(httpmock.DeactivateAndReset)
		httpmock.RegisterResponder(http.MethodGet, remoteURL, httpmock.NewStringResponder(http.StatusOK, remoteConfig))

		cErr := make(chan error, 1)
		go func() { cErr <- hl.Run(t.Context()) }()

		<-result
		<-result
		hl.Shutdown(t.Context())
		// drain a config that may have been sent concurrently to the shutdown
		go func() {
			for range result {
			}
		}()
		assert.NoError(t, <-cErr)
	})
}

func TestNewLoader(t *testing.T) {
	assert.IsType(t, &HttpLoader{}, NewLoader(&Config{Loader: LoaderConfig{Type: "http"}}, nil))
	assert.IsType(t, &FileLoader{}, NewLoader(&Config{Loader: LoaderConfig{Type: "file"}}, nil))
}
