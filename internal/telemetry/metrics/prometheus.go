package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the service registry with the runtime collectors, a
// version info gauge and any extra collectors. Nil collectors are skipped.
func SetupPrometheus(namespace, version string, extraCollectors ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	if version == "" {
		version = "unknown"
	}
	versionInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "version_info",
		Help:        "Version of the running service, always 1",
		ConstLabels: prometheus.Labels{"version": version},
	})
	versionInfo.Set(1)

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versionInfo,
	)

	for _, c := range extraCollectors {
		if c == nil {
			continue
		}
		promRegistry.MustRegister(c)
	}

	return promRegistry
}
