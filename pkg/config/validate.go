// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/telekom/hopcheck/internal/logger"
)

var (
	dnsNameRe    = regexp.MustCompile(`^([a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)
	labelNameRe  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	maxHttpRetry = 5
)

// Validate validates the startup config
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	if !isDNSName(c.Name) {
		log.ErrorContext(ctx, "The name of the agent must be DNS compliant", "name", c.Name)
		err = errors.Join(err, ErrInvalidName)
	}

	for k := range c.Metadata {
		if !labelNameRe.MatchString(k) {
			log.ErrorContext(ctx, "The metadata key is no valid label name", "key", k)
			err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidMetadataLabel, k))
		}
	}

	if vErr := c.Loader.Validate(ctx); vErr != nil {
		log.ErrorContext(ctx, "The loader configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if c.HasTelemetry() {
		if vErr := c.Telemetry.Validate(ctx); vErr != nil {
			log.ErrorContext(ctx, "The telemetry configuration is invalid")
			err = errors.Join(err, vErr)
		}
	}

	if vErr := c.Api.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The api configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}

// Validate validates the loader configuration
func (c *LoaderConfig) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if c.Interval < 0 {
		log.ErrorContext(ctx, "The loader interval should be equal or above 0", "interval", c.Interval)
		return ErrInvalidLoaderInterval
	}

	switch c.Type {
	case "http":
		if _, err := url.ParseRequestURI(c.Http.Url); err != nil {
			log.ErrorContext(ctx, "The loader http url is not a valid url")
			return ErrInvalidLoaderHttpURL
		}
		if c.Http.RetryCfg.Count < 0 || c.Http.RetryCfg.Count > maxHttpRetry {
			log.ErrorContext(ctx, "The amount of loader http retries should be between 0 and 5", "retryCount", c.Http.RetryCfg.Count)
			return ErrInvalidLoaderHttpRetryCount
		}
	case "file":
		if c.File.Path == "" {
			log.ErrorContext(ctx, "The loader file path cannot be empty")
			return ErrInvalidLoaderFilePath
		}
	default:
		log.ErrorContext(ctx, "The loader type is unknown", "type", c.Type)
		return ErrInvalidLoaderType
	}

	return nil
}

// isDNSName checks if the given string is a valid DNS name
func isDNSName(s string) bool {
	return dnsNameRe.MatchString(s)
}
