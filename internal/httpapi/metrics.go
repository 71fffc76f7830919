package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MetricRequestsTotal   = "comicstudio_http_requests_total"
	MetricRequestDuration = "comicstudio_http_request_duration_seconds"
	MetricUploadBytes     = "comicstudio_image_upload_bytes"
)

// Metrics holds the collectors for the JSON API. They are registered on a
// registry owned by the router, never on the global default.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	uploadBytes prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRequestsTotal,
				Help: "HTTP requests served, by route and status.",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRequestDuration,
				Help:    "HTTP request duration in seconds.",
				Buckets: []float64{0.005, 0.05, 0.25, 1, 5},
			},
			[]string{"method", "route"},
		),
		uploadBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricUploadBytes,
				Help:    "Size of uploaded image files before compression.",
				Buckets: prometheus.ExponentialBuckets(1<<10, 4, 8),
			},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.requests, m.duration, m.uploadBytes} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) observeUpload(size int64) {
	m.uploadBytes.Observe(float64(size))
}

// metricsHandler serves m together with the Go runtime collectors from a
// registry of its own.
func metricsHandler(m *Metrics) (gin.HandlerFunc, error) {
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	return gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})), nil
}
