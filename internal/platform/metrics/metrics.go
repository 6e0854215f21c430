package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrcomp"

type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
	bonuses         *prometheus.CounterVec
	bonusDuration   prometheus.Histogram
	defaulted       prometheus.Counter
}

// New registers the collectors on a private registry so tests can build as many as they like.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by status code.",
		}, []string{"code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		bonuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compensation",
			Name:      "bonus_calculations_total",
			Help:      "Bonus calculations by resulting status.",
		}, []string{"status"}),
		bonusDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "compensation",
			Name:      "bonus_calculation_seconds",
			Help:      "Time spent loading objectives and computing one bonus.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		defaulted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compensation",
			Name:      "seniority_defaulted_total",
			Help:      "Calculations that fell back to the default seniority category.",
		}),
	}
	c.registry.MustRegister(c.requests, c.requestDuration, c.bonuses, c.bonusDuration, c.defaulted)
	return c
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

func (c *Collector) ObserveBonus(status string, defaulted bool, duration time.Duration) {
	c.bonuses.WithLabelValues(status).Inc()
	c.bonusDuration.Observe(duration.Seconds())
	if defaulted {
		c.defaulted.Inc()
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
