package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit-io/schemaregistry/v1/observability"
)

func TestObserveOperation_CountsByStatus(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: "register",
		Duration:  5 * time.Millisecond,
		Size:      128,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "registry",
		Operation: "register",
		Duration:  time.Millisecond,
		Error:     errors.New("boom"),
	})

	success := testutil.ToFloat64(m.operationsTotal.WithLabelValues("registry", "register", "success"))
	failure := testutil.ToFloat64(m.operationsTotal.WithLabelValues("registry", "register", "error"))
	assert.Equal(t, 1.0, success)
	assert.Equal(t, 1.0, failure)
}

func TestObserveOperation_SkipsZeroSize(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "serializer",
		Operation: "decode",
		Duration:  time.Millisecond,
	})

	count := testutil.CollectAndCount(m.payloadBytes)
	assert.Zero(t, count, "zero-size operations should not create payload observations")
}

func TestMetricsEndpoint_ServesObservations(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})
	m.ObserveOperation(observability.OperationContext{
		Component: "serializer",
		Operation: "encode",
		Duration:  time.Millisecond,
		Size:      64,
	})

	server := httptest.NewServer(m.Server.Handler)
	defer server.Close()

	body := fetchBody(t, server.URL)
	assert.Contains(t, body, "schemaregistry_operations_total")
	assert.Contains(t, body, `service="test"`)
}

func TestCreateCustomMetrics(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	counter := m.CreateCounter("custom_total", "custom counter", []string{"kind"})
	counter.WithLabelValues("a").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("a")))

	gauge := m.CreateGauge("custom_gauge", "custom gauge", []string{"kind"})
	gauge.WithLabelValues("a").Set(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(gauge.WithLabelValues("a")))

	hist := m.CreateHistogram("custom_seconds", "custom histogram", []string{"kind"}, nil)
	hist.WithLabelValues("a").Observe(0.25)
	require.Equal(t, 1, testutil.CollectAndCount(hist))
}

func TestMetrics_SatisfiesCollectorAndObserver(t *testing.T) {
	var _ MetricsCollector = (*Metrics)(nil)
	var _ observability.Observer = (*Metrics)(nil)
}

func fetchBody(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
