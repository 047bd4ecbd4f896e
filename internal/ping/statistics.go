// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"encoding/json"
	"math"
	"slices"
)

// Statistics summarize a finished ping run. Round-trip times are in milliseconds.
// A Statistics value is immutable once built.
type Statistics struct {
	sent     uint32
	received uint32
	rtts     []float64
}

// NewStatistics builds the statistics of a run.
func NewStatistics(sent, received uint32, rtts []float64) Statistics {
	return Statistics{
		sent:     sent,
		received: received,
		rtts:     slices.Clone(rtts),
	}
}

// Sent returns the number of probes sent.
func (s Statistics) Sent() uint32 { return s.sent }

// Received returns the number of probes that proved reachability.
func (s Statistics) Received() uint32 { return s.received }

// Lost returns the number of probes without a reply.
func (s Statistics) Lost() uint32 {
	if s.received > s.sent {
		return 0
	}
	return s.sent - s.received
}

// RTTs returns a copy of the recorded round-trip times.
func (s Statistics) RTTs() []float64 { return slices.Clone(s.rtts) }

// Loss returns the packet loss in percent.
func (s Statistics) Loss() float64 {
	if s.sent == 0 {
		return 0
	}
	return float64(s.Lost()) * 100 / float64(s.sent)
}

// Min returns the smallest round-trip time. ok is false if nothing was received.
func (s Statistics) Min() (float64, bool) {
	if !s.defined() {
		return 0, false
	}
	return slices.Min(s.rtts), true
}

// Max returns the largest round-trip time. ok is false if nothing was received.
func (s Statistics) Max() (float64, bool) {
	if !s.defined() {
		return 0, false
	}
	return slices.Max(s.rtts), true
}

// Avg returns the mean round-trip time. ok is false if nothing was received.
func (s Statistics) Avg() (float64, bool) {
	if !s.defined() {
		return 0, false
	}
	var sum float64
	for _, rtt := range s.rtts {
		sum += rtt
	}
	return sum / float64(len(s.rtts)), true
}

// StdDev returns the population standard deviation of the round-trip times.
func (s Statistics) StdDev() (float64, bool) {
	avg, ok := s.Avg()
	if !ok {
		return 0, false
	}
	var sq float64
	for _, rtt := range s.rtts {
		sq += (rtt - avg) * (rtt - avg)
	}
	return math.Sqrt(sq / float64(len(s.rtts))), true
}

func (s Statistics) defined() bool {
	return s.received > 0 && len(s.rtts) > 0
}

func (s Statistics) MarshalJSON() ([]byte, error) {
	type summary struct {
		Sent     uint32   `json:"sent"`
		Received uint32   `json:"received"`
		Lost     uint32   `json:"lost"`
		Loss     float64  `json:"loss"`
		Min      *float64 `json:"min,omitempty"`
		Max      *float64 `json:"max,omitempty"`
		Avg      *float64 `json:"avg,omitempty"`
		StdDev   *float64 `json:"stddev,omitempty"`
	}
	out := summary{
		Sent:     s.sent,
		Received: s.received,
		Lost:     s.Lost(),
		Loss:     s.Loss(),
	}
	ptr := func(v float64, ok bool) *float64 {
		if !ok {
			return nil
		}
		return &v
	}
	out.Min = ptr(s.Min())
	out.Max = ptr(s.Max())
	out.Avg = ptr(s.Avg())
	out.StdDev = ptr(s.StdDev())
	return json.Marshal(out)
}
