// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/hopcheck/pkg/checks"
)

// metrics defines the metric collectors of the traceroute check
type metrics struct {
	minHops *prometheus.GaugeVec
	reached *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of the traceroute check
func newMetrics() metrics {
	return metrics{
		minHops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hopcheck_traceroute_check_hops",
				Help: "Number of hops needed to reach the target. Unset while the target is not reached.",
			},
			[]string{"target"},
		),
		reached: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hopcheck_traceroute_reached",
				Help: "Specifies if the target answered the last traceroute.",
			},
			[]string{"target"},
		),
	}
}

// List returns all metric collectors
func (m *metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.minHops,
		m.reached,
	}
}

// Set sets the metrics of all traced targets
func (m *metrics) Set(res result) {
	for target, r := range res {
		if r.Error != "" && len(r.Hops) == 0 {
			continue
		}
		if !r.Reached {
			m.minHops.DeleteLabelValues(target)
			m.reached.WithLabelValues(target).Set(0)
			continue
		}
		m.minHops.WithLabelValues(target).Set(float64(r.Hops[len(r.Hops)-1].TTL))
		m.reached.WithLabelValues(target).Set(1)
	}
}

// Remove removes the metrics of one target
func (m *metrics) Remove(target string) error {
	if !m.reached.DeleteLabelValues(target) {
		return checks.ErrMetricNotFound{Label: target}
	}
	m.minHops.DeleteLabelValues(target)
	return nil
}
