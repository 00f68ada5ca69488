package web

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"twittertext/internal/domain"
	"twittertext/pkg/twittertext"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	entities    *prometheus.CounterVec
	weighted    prometheus.Histogram
	rateLimited prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twittertext",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "twittertext",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"route"}),
		entities: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twittertext",
			Name:      "entities_extracted_total",
			Help:      "Entities returned to clients by kind.",
		}, []string{"kind"}),
		weighted: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "twittertext",
			Name:      "weighted_length",
			Help:      "Weighted length of analyzed texts.",
			Buckets:   prometheus.LinearBuckets(0, 40, 14),
		}),
		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: "twittertext",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
}

// Middleware records count and latency of every request.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) observeEntities(ents []twittertext.Entity) {
	for _, e := range ents {
		m.entities.WithLabelValues(string(domain.KindOf(e))).Inc()
	}
}

func (m *Metrics) observeAnalysis(a *domain.Analysis) {
	m.weighted.Observe(float64(a.Results.WeightedLength))
	m.observeEntities(a.Entities)
}
