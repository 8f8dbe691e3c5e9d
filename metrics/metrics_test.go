package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsVectorsCanBeScraped(t *testing.T) {
	reg := prometheus.NewRegistry()

	// vectors will only be exposed after a label has been set/incremented
	reg.MustRegister(
		VFSOperations,
		StreamedBytes,
		DispatchResponses,
	)

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	testServer := httptest.NewServer(handler)
	defer testServer.Close()

	VFSOperations.WithLabelValues("local", "Stat", "true").Inc()
	StreamedBytes.WithLabelValues("upload").Add(5)
	DispatchResponses.WithLabelValues("GET", "200").Inc()

	c, err := StreamedBytes.GetMetricWithLabelValues("upload")
	require.NoError(t, err)
	require.Equal(t, float64(5), testutil.ToFloat64(c))

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, metricFamilies, 3)

	res, err := http.Get(testServer.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	require.Contains(t, string(body), `remotefs_vfs_operations_total{operation="Stat",success="true",vfs_name="local"} 1`)
	require.Contains(t, string(body), `remotefs_stream_bytes_total{direction="upload"} 5`)
	require.Contains(t, string(body), `remotefs_dispatch_responses_total{method="GET",status_code="200"} 1`)
}
