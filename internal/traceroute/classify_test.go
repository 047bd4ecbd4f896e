// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/telekom/hopcheck/internal/probe"
)

var (
	success  = probe.Succeeded(time.Millisecond)
	refused  = probe.Refused(time.Millisecond)
	expired  = probe.Errored(fmt.Errorf("%w: no route to host", probe.ErrTTLExceeded))
	noRoute  = probe.Unreachable()
	timedOut = probe.TimedOut()
	failed   = probe.Errored(errors.New("boom"))
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		attempts [AttemptsPerHop]probe.Outcome
		want     Classification
	}{
		{name: "all timeouts", attempts: [3]probe.Outcome{timedOut, timedOut, timedOut}, want: Timeout},
		{name: "all refused", attempts: [3]probe.Outcome{refused, refused, refused}, want: DestinationReachedPortClosed},
		{name: "single success", attempts: [3]probe.Outcome{timedOut, success, timedOut}, want: DestinationReached},
		{name: "success beats refused", attempts: [3]probe.Outcome{refused, refused, success}, want: DestinationReached},
		{name: "refused beats expired", attempts: [3]probe.Outcome{expired, refused, expired}, want: DestinationReachedPortClosed},
		{name: "expired beats unreachable", attempts: [3]probe.Outcome{noRoute, expired, noRoute}, want: IntermediateHop},
		{name: "unreachable", attempts: [3]probe.Outcome{noRoute, timedOut, timedOut}, want: HostUnreachable},
		{name: "other errors", attempts: [3]probe.Outcome{failed, failed, timedOut}, want: Timeout},
		{name: "zero outcomes", want: Timeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.attempts))
		})
	}
}
