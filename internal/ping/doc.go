// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package ping repeatedly probes a host and aggregates the round-trip times.
//
// The [Engine] decides once per run whether ICMP echo can be used. If the raw
// socket cannot be opened, or the first echo fails with an error, every
// attempt of the run falls back to a TCP connect probe.
package ping
