// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/hopcheck/internal/traceroute"
	"github.com/telekom/hopcheck/pkg/checks"
	"github.com/telekom/hopcheck/pkg/checks/ping"
	"github.com/telekom/hopcheck/pkg/checks/runtime"
	tracecheck "github.com/telekom/hopcheck/pkg/checks/traceroute"
)

func TestNewChecksFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     runtime.Config
		want    []string
		wantErr bool
	}{
		{name: "empty config", cfg: runtime.Config{}, want: []string{}},
		{
			name: "ping and traceroute",
			cfg: runtime.Config{
				Ping: &ping.Config{Targets: []string{"example.com"}, Interval: time.Second, Timeout: time.Second},
				Traceroute: &tracecheck.Config{
					Targets:  []traceroute.Target{{Address: "example.com"}},
					Interval: time.Minute,
					Options:  traceroute.DefaultOptions(),
				},
			},
			want: []string{ping.CheckName, tracecheck.CheckName},
		},
		{
			name:    "invalid ping config",
			cfg:     runtime.Config{Ping: &ping.Config{Targets: []string{"example.com"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewChecksFromConfig(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, len(tt.want))
			for _, name := range tt.want {
				require.Contains(t, got, name)
				assert.Equal(t, tt.cfg.For(name), got[name].GetConfig())
			}
		})
	}
}

func TestNewCheck(t *testing.T) {
	_, err := NewCheck(nil)
	assert.ErrorIs(t, err, ErrNilConfig)

	_, err = NewCheck(&unknownConfig{})
	assert.ErrorIs(t, err, ErrUnknownCheck)
}

type unknownConfig struct{}

func (*unknownConfig) For() string     { return "unknown" }
func (*unknownConfig) Validate() error { return nil }

var _ checks.Runtime = (*unknownConfig)(nil)
