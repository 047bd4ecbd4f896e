// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package helper

import (
	"context"
	"math"
	"time"

	"github.com/telekom/hopcheck/internal/logger"
)

// maxBackoff caps the delay between two attempts
const maxBackoff = time.Minute

// RetryConfig configures how often and with which base delay an effector is retried.
type RetryConfig struct {
	Count int           `json:"count" yaml:"count" mapstructure:"count"`
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`
}

// Effector will be the function called by the Retry function
type Effector func(context.Context) error

// Retry wraps the effector so that failed calls are repeated with an exponential backoff.
// The effector is called at most Count+1 times. No further attempt is made once ctx is done.
func Retry(effector Effector, rc RetryConfig) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		log := logger.FromContext(ctx)
		for attempt := 1; ; attempt++ {
			err := effector(ctx)
			if err == nil || attempt > rc.Count {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			delay := getExpBackoff(rc.Delay, attempt)
			log.WarnContext(ctx, "Attempt failed, retrying", "attempt", attempt, "of", rc.Count+1, "delay", delay, "error", err)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}

// getExpBackoff returns the delay before the next attempt.
// The first iteration is 1 and waits initialDelay.
func getExpBackoff(initialDelay time.Duration, iteration int) time.Duration {
	iteration = max(iteration, 1)
	d := float64(initialDelay) * math.Pow(2, float64(iteration-1))
	if d > float64(maxBackoff) {
		return maxBackoff
	}
	return time.Duration(d)
}
