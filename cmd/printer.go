// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/telekom/hopcheck/internal/ping"
	"github.com/telekom/hopcheck/internal/probe"
	"github.com/telekom/hopcheck/internal/traceroute"
)

// printer renders ping and trace events as console lines
type printer struct {
	w      io.Writer
	header bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

// attempt prints a single ping attempt. The header is printed
// with the first attempt, once the address and the mode are known.
func (p *printer) attempt(host string, a ping.Attempt) {
	if !p.header {
		p.header = true
		if a.Mode == ping.ModeTCP {
			p.printf("Using TCP ping\n")
		}
		p.printf("Pinging %s [%s]\n", host, a.Addr)
	}

	o := a.Outcome
	switch o.Kind() {
	case probe.Success, probe.ConnectionRefused:
		p.printf("Reply from %s: time=%.2fms\n", a.Addr, millis(o.RTT()))
	case probe.HostUnreachable:
		p.printf("Destination host unreachable.\n")
	case probe.Failed:
		p.printf("Request failed: %v\n", o.Err())
	default:
		p.printf("Request timed out.\n")
	}
}

// statistics prints the summary of a ping run
func (p *printer) statistics(r ping.Report) {
	s := r.Statistics
	if s.Sent() == 0 {
		return
	}
	p.printf("\nPing statistics for %s:\n", r.Addr)
	p.printf("    Packets: Sent = %d, Received = %d, Lost = %d (%.0f%% loss)\n", s.Sent(), s.Received(), s.Lost(), s.Loss())

	minRTT, ok := s.Min()
	if !ok {
		return
	}
	maxRTT, _ := s.Max()
	avgRTT, _ := s.Avg()
	p.printf("Approximate round trip times in milliseconds:\n")
	p.printf("    Minimum = %.2fms, Maximum = %.2fms, Average = %.2fms\n", minRTT, maxRTT, avgRTT)
}

// traceStart prints the header of a trace
func (p *printer) traceStart(host string, addr net.IP, maxHops int) {
	p.printf("Tracing route to %s [%s]\n", host, addr)
	p.printf("over a maximum of %d hops:\n\n", maxHops)
}

// hop prints a classified hop
func (p *printer) hop(h traceroute.Hop) {
	p.printf("%s\n", h)
}

// traceEnd prints the closing line of a trace
func (p *printer) traceEnd(r traceroute.Result, maxHops int) {
	if r.Exhausted {
		p.printf("\nTrace complete - maximum hops (%d) reached\n", maxHops)
		return
	}
	p.printf("\nTrace complete.\n")
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
