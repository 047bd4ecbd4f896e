// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import "github.com/telekom/hopcheck/internal/probe"

// classify derives the verdict on a hop from the outcomes of its attempts.
// The strongest evidence wins: a completed handshake over a refused one,
// over an expired TTL, over an unreachable network. A hop without any of
// these timed out.
func classify(attempts [AttemptsPerHop]probe.Outcome) Classification {
	var seen [DestinationReached + 1]bool
	for _, a := range attempts {
		switch {
		case a.Kind() == probe.Success:
			seen[DestinationReached] = true
		case a.Kind() == probe.ConnectionRefused:
			seen[DestinationReachedPortClosed] = true
		case probe.IsTTLExceeded(a):
			seen[IntermediateHop] = true
		case a.Kind() == probe.HostUnreachable:
			seen[HostUnreachable] = true
		}
	}

	for c := DestinationReached; c > Timeout; c-- {
		if seen[c] {
			return c
		}
	}
	return Timeout
}
