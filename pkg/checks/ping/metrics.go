// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/hopcheck/pkg/checks"
)

// metrics defines the metric collectors of the ping check
type metrics struct {
	rtt       *prometheus.GaugeVec
	loss      *prometheus.GaugeVec
	count     *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// newMetrics initializes metric collectors of the ping check
func newMetrics() metrics {
	return metrics{
		rtt: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hopcheck_ping_rtt_seconds",
				Help: "Average round-trip time of the last ping run in seconds.",
			},
			[]string{"target", "mode"},
		),
		loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hopcheck_ping_loss_ratio",
				Help: "Ratio of probes without a reply in the last ping run.",
			},
			[]string{"target"},
		),
		count: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hopcheck_ping_probes_total",
				Help: "Total number of probes sent to the target and whether they got a reply.",
			},
			[]string{"target", "received"},
		),
		histogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "hopcheck_ping_rtt",
				Help: "Histogram of the round-trip times of single probes in seconds.",
			},
			[]string{"target"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.rtt,
		m.loss,
		m.count,
		m.histogram,
	}
}

// Set sets the metrics of one ping target result
func (m *metrics) Set(target string, res result) {
	if res.Avg != nil {
		m.rtt.WithLabelValues(target, res.Mode).Set(*res.Avg / 1000)
	}
	for _, rtt := range res.RTTs {
		m.histogram.WithLabelValues(target).Observe(rtt / 1000)
	}
	m.loss.WithLabelValues(target).Set(res.Loss / 100)
	m.count.WithLabelValues(target, "true").Add(float64(res.Received))
	m.count.WithLabelValues(target, "false").Add(float64(res.Sent - res.Received))
}

// Remove removes the metrics of one ping target
func (m *metrics) Remove(target string) error {
	if !m.loss.DeleteLabelValues(target) {
		return checks.ErrMetricNotFound{Label: target}
	}

	m.rtt.DeletePartialMatch(prometheus.Labels{"target": target})
	m.count.DeletePartialMatch(prometheus.Labels{"target": target})
	m.histogram.DeleteLabelValues(target)
	return nil
}
