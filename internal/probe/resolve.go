// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"net"

	"github.com/telekom/hopcheck/internal/helper"
	"github.com/telekom/hopcheck/internal/logger"
)

// Resolver looks up the IP addresses of a host. [*net.Resolver] satisfies it.
//
//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// Resolve resolves host to a single IPv4 address. Literal addresses are
// returned without a lookup. Temporary resolver errors are retried as
// configured by rc, a failure is returned as [*ResolutionError].
func Resolve(ctx context.Context, r Resolver, host string, rc helper.RetryConfig) (net.IP, error) {
	log := logger.FromContext(ctx).With("host", host)

	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
		return nil, &ResolutionError{Host: host, Err: errors.New("not an IPv4 address")}
	}

	var (
		ips     []net.IP
		lastErr error
	)
	err := helper.Retry(func(ctx context.Context) error {
		var err error
		ips, err = r.LookupIP(ctx, "ip4", host)
		lastErr = err
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			// NXDOMAIN won't go away by asking again
			return nil
		}
		return err
	}, rc)(ctx)
	if err == nil {
		err = lastErr
	}
	if err != nil {
		log.DebugContext(ctx, "Failed to resolve host", "error", err)
		return nil, &ResolutionError{Host: host, Err: err}
	}

	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, &ResolutionError{Host: host, Err: errors.New("no IPv4 address found")}
}
