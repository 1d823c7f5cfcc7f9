package driver

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	ticks         prometheus.Counter
	tickDuration  prometheus.Histogram
	phaseDuration *prometheus.HistogramVec
	errors        *prometheus.CounterVec
	components    prometheus.Gauge
}

// register adds c to reg, or returns the collector already registered under
// the same descriptor so several Steppers can share one registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		ticks: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridflow_ticks_total",
			Help: "Total ticks completed",
		})),
		tickDuration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridflow_tick_duration_seconds",
			Help:    "Duration of a whole tick in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		})),
		phaseDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridflow_phase_duration_seconds",
			Help:    "Duration of one phase across all components in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}, []string{"phase"})),
		errors: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridflow_component_errors_total",
			Help: "Component failures by phase",
		}, []string{"phase"})),
		components: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridflow_components",
			Help: "Number of components stepped per tick",
		})),
	}
}
