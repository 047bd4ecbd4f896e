// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/telekom/hopcheck/internal/logger"
)

// nameLookup performs a reverse DNS lookup. [*net.Resolver.LookupAddr] satisfies it.
type nameLookup func(ctx context.Context, addr string) ([]string, error)

// resolveName performs a reverse DNS lookup for the given IP address.
// If the lookup fails or returns no names, it returns an empty string.
func resolveName(ctx context.Context, lookup nameLookup, ip net.IP) string {
	if ip == nil || lookup == nil {
		return ""
	}

	names, err := lookup(ctx, ip.String())
	if err != nil || len(names) == 0 {
		logger.FromContext(ctx).DebugContext(ctx, "No reverse DNS name found", "addr", ip.String(), "error", err)
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

// logHops logs the given hops.
func logHops(ctx context.Context, hops []Hop) {
	log := logger.FromContext(ctx)
	for _, hop := range hops {
		log.DebugContext(ctx, hop.String())
	}
}

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("traceroute interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}
