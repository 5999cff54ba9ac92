package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := New("daoquery")
	m.ObserveQuery("info", "ok", 20*time.Millisecond)
	m.IncPages("list_sub_daos")
	m.SetConnectionState("ready", []string{"connecting", "ready"})
	m.SetLatestHeight("http://lcd", 42)
	m.ObserveRequest("/api/info", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `daoquery_smart_queries_total{outcome="ok",query="info"} 1`)
	assert.Contains(t, text, `daoquery_pages_fetched_total{query="list_sub_daos"} 1`)
	assert.Contains(t, text, `daoquery_connection_state{state="ready"} 1`)
	assert.Contains(t, text, `daoquery_connection_state{state="connecting"} 0`)
	assert.Contains(t, text, `daoquery_endpoint_latest_height{endpoint="http://lcd"} 42`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuery("info", "ok", time.Millisecond)
		m.IncPages("list_sub_daos")
		m.SetConnectionState("ready", []string{"ready"})
		m.SetLatestHeight("x", 1)
		m.ObserveRequest("/", 200, time.Millisecond)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
