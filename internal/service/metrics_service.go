package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the referral dispatch pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	dispatchTotal   *prometheus.CounterVec
	batchSize       prometheus.Histogram
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	dispatchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "referral_dispatch_total",
		Help: "Referral notification sends per channel and result",
	}, []string{"channel", "result"})

	batchSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "referral_batch_size",
		Help:    "Number of students per submitted referral batch",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
	})

	registry.MustRegister(requestDuration, requestTotal, dispatchTotal, batchSize)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		dispatchTotal:   dispatchTotal,
		batchSize:       batchSize,
	}
}

// ObserveHTTPRequest records one completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveDispatch records channel delivery counts for one batch.
func (s *MetricsService) ObserveDispatch(channel string, succeeded, failed int) {
	if succeeded > 0 {
		s.dispatchTotal.WithLabelValues(channel, "success").Add(float64(succeeded))
	}
	if failed > 0 {
		s.dispatchTotal.WithLabelValues(channel, "failure").Add(float64(failed))
	}
}

// ObserveBatch records the size of one accepted referral batch.
func (s *MetricsService) ObserveBatch(size int) {
	s.batchSize.Observe(float64(size))
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}
