package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Payments  *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewServerMetrics registers the HTTP and payment collectors on reg.
func NewServerMetrics(reg *prometheus.Registry) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "candleshop",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "candleshop",
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "candleshop",
		Subsystem: "payment",
		Name:      "events_total",
		Help:      "Payment flow outcomes by step.",
	}, []string{"step", "outcome"})

	reg.MustRegister(requests, latency, payments)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, Payments: payments, gatherer: reg}
}

// Middleware records request counts and latency labelled by route pattern.
func (m *ServerMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}

// PaymentEvent counts one outcome of a payment step; safe on a nil receiver.
func (m *ServerMetrics) PaymentEvent(step, outcome string) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(step, outcome).Inc()
}

func (m *ServerMetrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
