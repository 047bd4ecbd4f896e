// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/telekom/hopcheck/internal/ping"
	"github.com/telekom/hopcheck/pkg/checks"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Targets:  []string{"example.com", "192.0.2.1"},
				Interval: time.Second,
				Timeout:  time.Second,
			},
		},
		{
			name: "url target",
			config: Config{
				Targets:  []string{"https://example.com"},
				Interval: time.Second,
				Timeout:  time.Second,
			},
			wantErr: true,
		},
		{
			name: "ipv6 target",
			config: Config{
				Targets:  []string{"2001:db8::1"},
				Interval: time.Second,
				Timeout:  time.Second,
			},
			wantErr: true,
		},
		{
			name: "empty target",
			config: Config{
				Targets:  []string{""},
				Interval: time.Second,
				Timeout:  time.Second,
			},
			wantErr: true,
		},
		{
			name: "interval too short",
			config: Config{
				Targets:  []string{"example.com"},
				Interval: 10 * time.Millisecond,
				Timeout:  time.Second,
			},
			wantErr: true,
		},
		{
			name: "timeout too short",
			config: Config{
				Targets:  []string{"example.com"},
				Interval: time.Second,
				Timeout:  time.Millisecond,
			},
			wantErr: true,
		},
		{
			name: "negative probe interval",
			config: Config{
				Targets:       []string{"example.com"},
				Interval:      time.Second,
				Timeout:       time.Second,
				ProbeInterval: -time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				assert.ErrorAs(t, err, &checks.ErrInvalidConfig{})
			}
		})
	}
}

func TestConfig_options(t *testing.T) {
	c := Config{Timeout: 3 * time.Second, Retry: checks.DefaultRetry}

	want := ping.DefaultOptions()
	want.Timeout = 3 * time.Second
	want.Retry = checks.DefaultRetry
	assert.Equal(t, want, c.options())
}
