package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGalleryMetricsCounting(t *testing.T) {
	m := newWithRegisterer(prometheus.NewRegistry())

	m.OrderCreated()
	m.OrderCreated()
	m.OrderRejected("validation")
	m.OrderRejected("artwork_sold")
	m.OrderRejected("artwork_sold")
	m.ArtworkSold()
	m.ObserveHTTPRequest("GET", "/api/artworks", "200", 0.042)

	if got := testutil.ToFloat64(m.ordersCreated); got != 2 {
		t.Errorf("orders created: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ordersRejected.WithLabelValues("validation")); got != 1 {
		t.Errorf("validation rejections: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ordersRejected.WithLabelValues("artwork_sold")); got != 2 {
		t.Errorf("sold rejections: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.artworksSold); got != 1 {
		t.Errorf("artworks sold: got %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.requestDuration); got != 1 {
		t.Errorf("request duration series: got %d, want 1", got)
	}
}

func TestGalleryMetricsNilReceiver(t *testing.T) {
	var m *GalleryMetrics

	// None of these may panic.
	m.OrderCreated()
	m.OrderRejected("validation")
	m.ArtworkSold()
	m.ObserveHTTPRequest("GET", "/api/artworks", "200", 0.01)
}

func TestGalleryMetricsDoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newWithRegisterer(registry)
	second := newWithRegisterer(registry)

	second.OrderCreated()
	if got := testutil.ToFloat64(first.ordersCreated); got != 1 {
		t.Errorf("expected both instances to share one collector, got %v", got)
	}
}
