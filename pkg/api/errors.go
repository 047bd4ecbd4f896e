// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrServeAPI is returned when the api server stops unexpectedly
	ErrServeAPI = errors.New("api server failed")
	// ErrInvalidMethod is returned when a route uses an unsupported http method
	ErrInvalidMethod = errors.New("invalid http method")
	// ErrInvalidListeningAddress is returned when the listening address is not host:port
	ErrInvalidListeningAddress = errors.New("invalid listening address")
	// ErrMissingTLSFiles is returned when tls is enabled without certificate or key
	ErrMissingTLSFiles = errors.New("tls enabled but certificate or key path missing")
)

// ErrCreateOpenapiSchema is returned when the result schema of a check can't be generated
type ErrCreateOpenapiSchema struct {
	Name string
	Err  error
}

func (e ErrCreateOpenapiSchema) Error() string {
	return fmt.Sprintf("failed to get schema for check %s: %v", e.Name, e.Err)
}

func (e ErrCreateOpenapiSchema) Unwrap() error {
	return e.Err
}
