// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import "net"

// Config is the configuration for the api server
type Config struct {
	// ListeningAddress is the address the server listens on, e.g. ":8080"
	ListeningAddress string `yaml:"address" mapstructure:"address"`
	// Tls is the tls configuration of the server
	Tls TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// TLSConfig is the tls configuration for the api server
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	CertPath string `yaml:"certPath" mapstructure:"certPath"`
	KeyPath  string `yaml:"keyPath" mapstructure:"keyPath"`
}

// Validate validates the api configuration
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.ListeningAddress); err != nil {
		return ErrInvalidListeningAddress
	}
	if c.Tls.Enabled && (c.Tls.CertPath == "" || c.Tls.KeyPath == "") {
		return ErrMissingTLSFiles
	}
	return nil
}
