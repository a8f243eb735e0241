package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/attendees/{id}/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "9" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	handler := m.Middleware(mux)

	for _, p := range []string{"/api/attendees/1/", "/api/attendees/2/", "/api/attendees/9/"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /api/attendees/{id}/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /api/attendees/{id}/", "404")))

	n, err := testutil.GatherAndCount(reg, "conferencego_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_UnmatchedPathsShareOneLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/locations/", func(w http.ResponseWriter, r *http.Request) {})
	handler := m.Middleware(mux)

	for i := 0; i < 5; i++ {
		p := fmt.Sprintf("/wp-admin/%d/setup-%x.php", i, i*7919)
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 5.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	n, err := testutil.GatherAndCount(reg, "conferencego_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "scanner paths must not create a series each")
}
