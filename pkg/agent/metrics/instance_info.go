// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"maps"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	instanceInfoMetricName = "hopcheck_instance_info"
	instanceInfoHelp       = "Metadata of this hopcheck instance. Emitted once per instance to correlate probe metrics with their origin."
	instanceNameLabel      = "instance_name"
)

// RegisterInstanceInfo registers the hopcheck_instance_info metric on the given registry.
// The gauge is set to 1 and carries the instance name plus one label per metadata entry.
func RegisterInstanceInfo(registry *prometheus.Registry, instanceName string, metadata map[string]string) error {
	keys := slices.Sorted(maps.Keys(metadata))
	keys = slices.DeleteFunc(keys, func(k string) bool { return k == instanceNameLabel })

	labels := append([]string{instanceNameLabel}, keys...)
	values := make([]string, 0, len(labels))
	values = append(values, instanceName)
	for _, k := range keys {
		values = append(values, metadata[k])
	}

	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: instanceInfoMetricName,
			Help: instanceInfoHelp,
		},
		labels,
	)
	info.WithLabelValues(values...).Set(1)
	return registry.Register(info)
}
