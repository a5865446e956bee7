package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GalleryMetrics holds the service-level Prometheus collectors. A nil
// receiver disables every method, so callers never need to guard.
type GalleryMetrics struct {
	ordersCreated  prometheus.Counter
	ordersRejected *prometheus.CounterVec
	artworksSold   prometheus.Counter

	requestDuration *prometheus.HistogramVec
}

// New creates the metrics set on the default registerer.
func New() *GalleryMetrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

func newWithRegisterer(registerer prometheus.Registerer) *GalleryMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &GalleryMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gallery_orders_created_total",
			Help: "Total number of orders successfully created",
		}),
		ordersRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "gallery_orders_rejected_total",
			Help: "Total number of order requests rejected, by reason",
		}, []string{"reason"}),
		artworksSold: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gallery_artworks_sold_total",
			Help: "Total number of artworks marked as sold",
		}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// OrderCreated counts one successfully persisted order.
func (m *GalleryMetrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// OrderRejected counts one rejected order request.
func (m *GalleryMetrics) OrderRejected(reason string) {
	if m == nil {
		return
	}
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// ArtworkSold counts one sold-marking state change.
func (m *GalleryMetrics) ArtworkSold() {
	if m == nil {
		return
	}
	m.artworksSold.Inc()
}

// ObserveHTTPRequest records one handled request.
func (m *GalleryMetrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	counter := prometheus.NewCounter(opts)
	if err := registerer.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(prometheus.Counter); ok2 {
				return existing
			}
		}
	}
	return counter
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*prometheus.CounterVec); ok2 {
				return existing
			}
		}
	}
	return vec
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*prometheus.HistogramVec); ok2 {
				return existing
			}
		}
	}
	return vec
}
