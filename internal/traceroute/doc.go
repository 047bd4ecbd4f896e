// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package traceroute provides a TCP based traceroute that works without
// elevated privileges.
//
// It exposes a [Client] that dials TCP connections with an incrementing TTL,
// probing every distance exactly three times. Each hop is classified from the
// outcomes of its three attempts alone; no ICMP time exceeded messages are
// captured. As a consequence intermediate hops are identified by their
// distance only, their addresses stay unknown.
//
// The trace ends as soon as the destination completes or refuses the
// handshake. Running out of hops is an expected result, not an error.
//
// Typical usage:
//
//	client := traceroute.NewClient()
//	opts := traceroute.DefaultOptions()
//	res, err := client.Run(ctx, traceroute.Target{Address: "example.com", Port: 443}, &opts, func(h traceroute.Hop) {
//		fmt.Println(h)
//	})
package traceroute
