// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package probe implements single reachability probes against an IPv4 host.
//
// Two probe kinds are provided: an ICMP echo probe, which needs a raw socket
// and therefore elevated privileges (CAP_NET_RAW), and a TCP connect probe,
// which works unprivileged and can optionally be scoped to a TTL.
// Both produce an [Outcome]. Platform specific socket errors are translated
// into an [Outcome] exactly once, inside this package.
package probe
