package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/returns_management_app/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsCounters(t *testing.T) {
	m := metrics.New()

	m.RecordReturnMutation("create", true)
	m.RecordReturnMutation("create", false)
	m.RecordReconciliation("applied", 10*time.Millisecond)
	m.RecordSagaRollback("update", "reconcile_purchase_order:po-1", []string{"write_return"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReturnMutations.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReturnMutations.WithLabelValues("create", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reconciliations.WithLabelValues("applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompensationFailures.WithLabelValues("update", "write_return")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordReturnMutation("delete", true)
		m.RecordReconciliation("skipped", time.Millisecond)
		m.RecordSagaRollback("delete", "write_return", nil)
		m.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
		m.RecordBreakerTransition("store", "open")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.RecordHTTPRequest("GET", "/api/v1/returns/:returnID", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "returns_http_requests_total")
}
