// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package helper

import (
	"context"
	"fmt"
	"strings"

	"github.com/telekom/hopcheck/internal/logger"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WrapError wraps an error with a message and logs it.
// It also records the error in the current OpenTelemetry span.
func WrapError(ctx context.Context, err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)

	wrapped := fmt.Sprintf(msg, args...)
	log.ErrorContext(ctx, logMessage(msg, args...), "error", err)
	span.SetStatus(codes.Error, wrapped)
	span.RecordError(err)
	return fmt.Errorf("%s: %w", wrapped, err)
}

// logMessage capitalizes the leading word of the format.
// Formatted arguments such as host names are never changed.
func logMessage(format string, args ...any) string {
	word, rest, found := strings.Cut(format, " ")
	if !strings.Contains(word, "%") {
		word = cases.Title(language.English, cases.NoLower).String(word)
	}
	if found {
		word += " " + rest
	}
	return fmt.Sprintf(word, args...)
}
